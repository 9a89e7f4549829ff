package main

import (
	"log/slog"
	"net/http"
	"sync"

	shutdowner "git.jlel.se/jlelse/go-shutdowner"
)

type postPilot struct {
	// Config
	cfg *config
	// Database
	db *database
	// HTTP client
	httpClient *http.Client
	// HTTP router
	d http.Handler
	// Logging
	logger      *slog.Logger
	logLevel    *slog.LevelVar
	initLogOnce sync.Once
	// Scheduler
	sched *scheduler
	// Per-post execution locks, keyed by post id
	executeLocks sync.Map
	// Shutdown
	shutdown shutdowner.Shutdowner
}
