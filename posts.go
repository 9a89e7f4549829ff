package main

import (
	"database/sql"
	"errors"
	"time"
)

type postStatus string

const (
	statusScheduled postStatus = "scheduled"
	statusPosted    postStatus = "posted"
)

var errPostNotFound = errors.New("post not found")

type post struct {
	ID          int        `json:"id"`
	Content     string     `json:"content"`
	ScheduledAt string     `json:"scheduledAt"`
	Status      postStatus `json:"status"`
	CreatedAt   string     `json:"createdAt"`
}

func (p *post) scheduledTime() (time.Time, error) {
	return parseUTCTime(p.ScheduledAt)
}

// createPost inserts a new scheduled post and returns its assigned id.
// Ids are assigned by sqlite and increase monotonically.
func (db *database) createPost(content string, scheduledAt time.Time) (int, error) {
	res, err := db.exec(
		"insert into posts (content, scheduled_at, status, created_at) values (@content, @scheduled, @status, @created)",
		sql.Named("content", content),
		sql.Named("scheduled", toUTCString(scheduledAt)),
		sql.Named("status", statusScheduled),
		sql.Named("created", utcNowString()),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (db *database) getPost(id int) (*post, error) {
	row, err := db.queryRow(
		"select id, content, scheduled_at, status, created_at from posts where id = @id",
		sql.Named("id", id),
	)
	if err != nil {
		return nil, err
	}
	p := &post{}
	if err = row.Scan(&p.ID, &p.Content, &p.ScheduledAt, &p.Status, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errPostNotFound
		}
		return nil, err
	}
	return p, nil
}

// markPostPosted flips a post to posted. A post that is already posted
// stays untouched, an unknown id returns errPostNotFound.
func (db *database) markPostPosted(id int) error {
	res, err := db.exec(
		"update posts set status = @posted where id = @id and status = @scheduled",
		sql.Named("posted", statusPosted),
		sql.Named("id", id),
		sql.Named("scheduled", statusScheduled),
	)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err != nil {
		return err
	} else if affected == 0 {
		if _, err := db.getPost(id); err != nil {
			return err
		}
	}
	return nil
}

func (db *database) getPosts() ([]*post, error) {
	rows, err := db.query("select id, content, scheduled_at, status, created_at from posts order by scheduled_at desc, id desc")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	posts := []*post{}
	for rows.Next() {
		p := &post{}
		if err = rows.Scan(&p.ID, &p.Content, &p.ScheduledAt, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// getScheduledPosts returns all posts that still wait for execution,
// due ones included.
func (db *database) getScheduledPosts() ([]*post, error) {
	rows, err := db.query(
		"select id, content, scheduled_at, status, created_at from posts where status = @status order by scheduled_at asc",
		sql.Named("status", statusScheduled),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	posts := []*post{}
	for rows.Next() {
		p := &post{}
		if err = rows.Scan(&p.ID, &p.Content, &p.ScheduledAt, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (db *database) countPosts(status postStatus) (count int, err error) {
	row, err := db.queryRow(
		"select count(*) from posts where status = @status",
		sql.Named("status", status),
	)
	if err != nil {
		return 0, err
	}
	err = row.Scan(&count)
	return count, err
}
