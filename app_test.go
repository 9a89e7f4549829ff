package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func createTestApp(t *testing.T) *postPilot {
	a := &postPilot{
		cfg:        createDefaultTestConfig(t),
		httpClient: newHttpClient(),
	}
	require.NoError(t, a.initConfig())
	require.NoError(t, a.initDatabase())
	a.initScheduler()
	t.Cleanup(a.shutdown.ShutdownAndWait)
	return a
}
