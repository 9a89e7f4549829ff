package main

import (
	"time"

	"github.com/araddon/dateparse"
)

// All timestamps are stored and compared in UTC, at second precision.
// The fixed-width format keeps the stored strings lexicographically
// ordered by time, which the post listing's ordering relies on.

func toUTCString(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func utcNowString() string {
	return toUTCString(time.Now())
}

// parseUTCTime accepts anything dateparse understands and interprets
// zoneless timestamps as UTC.
func parseUTCTime(s string) (time.Time, error) {
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func defaultIfEmpty(str, defaultStr string) string {
	if str != "" {
		return str
	}
	return defaultStr
}
