package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_timeHelpers(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	local := time.Date(2026, 8, 28, 12, 0, 0, 0, loc)
	assert.Equal(t, "2026-08-28T10:00:00Z", toUTCString(local))

	// Zoneless timestamps are read as UTC
	parsed, err := parseUTCTime("2026-08-28T10:00:00")
	require.NoError(t, err)
	assert.Equal(t, local.UTC(), parsed)

	parsed, err = parseUTCTime("2026-08-28 10:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC), parsed)

	_, err = parseUTCTime("definitely not a time")
	assert.Error(t, err)
}

func Test_defaultIfEmpty(t *testing.T) {
	assert.Equal(t, "a", defaultIfEmpty("a", "b"))
	assert.Equal(t, "b", defaultIfEmpty("", "b"))
}
