package main

import (
	"database/sql"
	"os"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/schollz/sqlite3dump"
	"golang.org/x/sync/singleflight"
)

type database struct {
	a     *postPilot
	db    *sql.DB
	stmts map[string]*sql.Stmt
	sg    singleflight.Group
	sm    sync.Mutex
	debug bool
}

func (a *postPilot) initDatabase() (err error) {
	if a.db != nil {
		return nil
	}
	db, err := a.openDatabase(a.cfg.Db.File)
	if err != nil {
		return err
	}
	a.db = db
	a.shutdown.Add(func() {
		_ = db.close()
		a.info("Closed database")
	})
	if a.cfg.Db.DumpFile != "" {
		db.dump(a.cfg.Db.DumpFile)
	}
	a.info("Initialized database")
	return nil
}

func (a *postPilot) openDatabase(file string) (*database, error) {
	db, err := sql.Open("sqlite3", file+"?mode=rwc&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	// Serialize all writers through a single connection
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err = migrateDb(db); err != nil {
		return nil, err
	}
	return &database{
		a:     a,
		db:    db,
		stmts: map[string]*sql.Stmt{},
		debug: a.cfg.Db.Debug,
	}, nil
}

func (db *database) dump(file string) {
	f, err := os.Create(file)
	if err != nil {
		db.a.error("Failed to dump database", "err", err)
		return
	}
	defer f.Close()
	if err = sqlite3dump.DumpDB(db.db, f); err != nil {
		db.a.error("Failed to dump database", "err", err)
	}
}

func (db *database) close() error {
	db.vacuum()
	return db.db.Close()
}

func (db *database) vacuum() {
	_, _ = db.db.Exec("vacuum")
}

func (db *database) prepare(query string) (*sql.Stmt, error) {
	stmt, err, _ := db.sg.Do(query, func() (any, error) {
		db.sm.Lock()
		defer db.sm.Unlock()
		if stmt, ok := db.stmts[query]; ok && stmt != nil {
			return stmt, nil
		}
		stmt, err := db.db.Prepare(query)
		if err != nil {
			return nil, err
		}
		db.stmts[query] = stmt
		return stmt, nil
	})
	if err != nil {
		return nil, err
	}
	return stmt.(*sql.Stmt), nil
}

func (db *database) exec(query string, args ...any) (sql.Result, error) {
	if db.debug {
		db.a.debug("exec", "query", query)
	}
	stmt, err := db.prepare(query)
	if err != nil {
		return nil, err
	}
	return stmt.Exec(args...)
}

func (db *database) query(query string, args ...any) (*sql.Rows, error) {
	if db.debug {
		db.a.debug("query", "query", query)
	}
	stmt, err := db.prepare(query)
	if err != nil {
		return nil, err
	}
	return stmt.Query(args...)
}

func (db *database) queryRow(query string, args ...any) (*sql.Row, error) {
	if db.debug {
		db.a.debug("queryRow", "query", query)
	}
	stmt, err := db.prepare(query)
	if err != nil {
		return nil, err
	}
	return stmt.QueryRow(args...), nil
}
