package main

import (
	"log/slog"
	"os"
)

func (a *postPilot) initLog() {
	a.initLogOnce.Do(func() {
		a.logLevel = new(slog.LevelVar)
		a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: a.logLevel,
		}))
	})
}

func (a *postPilot) updateLogLevel() {
	a.initLog()
	if a.cfg.Debug {
		a.logLevel.Set(slog.LevelDebug)
	}
}

func (a *postPilot) debug(msg string, args ...any) {
	a.initLog()
	a.logger.Debug(msg, args...)
}

func (a *postPilot) info(msg string, args ...any) {
	a.initLog()
	a.logger.Info(msg, args...)
}

func (a *postPilot) error(msg string, args ...any) {
	a.initLog()
	a.logger.Error(msg, args...)
}
