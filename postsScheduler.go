package main

import (
	"errors"
	"sync"
	"time"
)

// schedulePost persists a new post and registers its one-shot execution
// timer. It is the only place that creates timers for posts.
func (a *postPilot) schedulePost(content string, runAt time.Time) (int, error) {
	id, err := a.db.createPost(content, runAt)
	if err != nil {
		return 0, err
	}
	a.sched.scheduleOnce(runAt, func() {
		a.executePost(id)
	})
	a.debug("Scheduled post", "id", id, "runAt", toUTCString(runAt))
	return id, nil
}

// executePost publishes a post and marks it posted. It re-reads the post
// first and does nothing when it is gone or already posted, so firing
// twice for the same id publishes at most once. A per-post lock closes
// the window between the status check and the write; the lock entry is
// dropped once the post is terminal, since posted is forward-only and a
// late waiter re-reads before acting.
func (a *postPilot) executePost(id int) {
	lock, _ := a.executeLocks.LoadOrStore(id, &sync.Mutex{})
	lock.(*sync.Mutex).Lock()
	defer lock.(*sync.Mutex).Unlock()
	p, err := a.db.getPost(id)
	if err != nil {
		if errors.Is(err, errPostNotFound) {
			a.executeLocks.Delete(id)
		} else {
			a.error("Failed to read post for execution", "id", id, "err", err)
		}
		return
	}
	if p.Status == statusPosted {
		a.executeLocks.Delete(id)
		return
	}
	a.publishPost(p)
	if err = a.db.markPostPosted(id); err != nil {
		a.error("Failed to mark post as posted", "id", id, "err", err)
		return
	}
	a.executeLocks.Delete(id)
	a.info("Published scheduled post", "id", id)
}

// publishPost performs the external publish side effect. Without a
// configured publisher it only simulates the publish latency.
func (a *postPilot) publishPost(p *post) {
	if tg := a.cfg.Telegram; tg.enabled() {
		if err := a.sendTelegramMessage(p.Content, tg.BotToken, tg.ChatID); err != nil {
			// Best effort, single attempt
			a.error("Failed to publish post via Telegram", "id", p.ID, "err", err)
		}
		return
	}
	time.Sleep(time.Second)
}

// recoverScheduledPosts re-registers all posts that were still scheduled
// when the process last stopped. Overdue posts fire immediately.
func (a *postPilot) recoverScheduledPosts() error {
	posts, err := a.db.getScheduledPosts()
	if err != nil {
		return err
	}
	for _, p := range posts {
		runAt, err := p.scheduledTime()
		if err != nil {
			a.error("Failed to parse scheduled time", "id", p.ID, "err", err)
			continue
		}
		id := p.ID
		a.sched.scheduleOnce(runAt, func() {
			a.executePost(id)
		})
	}
	if len(posts) > 0 {
		a.info("Recovered scheduled posts", "count", len(posts))
	}
	return nil
}
