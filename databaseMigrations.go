package main

import (
	"database/sql"

	"github.com/lopezator/migrator"
)

func migrateDb(db *sql.DB) error {
	m, err := migrator.New(
		migrator.Migrations(
			&migrator.Migration{
				Name: "00001",
				Func: func(tx *sql.Tx) error {
					_, err := tx.Exec(`
					create table posts (id integer primary key autoincrement, content text, scheduled_at text not null, status text not null default 'scheduled', created_at text not null);
					create index index_posts_status on posts (status, scheduled_at);
					`)
					return err
				},
			},
		),
	)
	if err != nil {
		return err
	}
	return m.Migrate(db)
}
