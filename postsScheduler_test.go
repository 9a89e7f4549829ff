package main

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enableFakeTelegram(app *postPilot) *fakeHttpClient {
	fc := newFakeHttpClient()
	fc.setFakeResponse(http.StatusOK, `{"ok":true}`)
	app.httpClient = fc.Client
	app.cfg.Telegram = &configTelegram{
		Enabled:  true,
		BotToken: "bottoken",
		ChatID:   "chatid",
	}
	return fc
}

func postedEventually(t *testing.T, app *postPilot, id int) {
	assert.Eventually(t, func() bool {
		p, err := app.db.getPost(id)
		return err == nil && p.Status == statusPosted
	}, 3*time.Second, 10*time.Millisecond)
}

func Test_schedulePost(t *testing.T) {
	app := createTestApp(t)
	fc := enableFakeTelegram(app)

	t.Run("Future post stays scheduled until due", func(t *testing.T) {
		id, err := app.schedulePost("Hello", time.Now().Add(300*time.Millisecond))
		require.NoError(t, err)

		p, err := app.db.getPost(id)
		require.NoError(t, err)
		assert.Equal(t, statusScheduled, p.Status)
		assert.Equal(t, "Hello", p.Content)

		postedEventually(t, app, id)
	})

	t.Run("Overdue post fires immediately", func(t *testing.T) {
		fc.setFakeResponse(http.StatusOK, `{"ok":true}`)
		id, err := app.schedulePost("Hello again", time.Now().Add(-time.Second))
		require.NoError(t, err)
		postedEventually(t, app, id)
	})

	t.Run("Posts sharing a run time all get posted", func(t *testing.T) {
		fc.setFakeResponse(http.StatusOK, `{"ok":true}`)
		runAt := time.Now().Add(100 * time.Millisecond)
		id1, err := app.schedulePost("One", runAt)
		require.NoError(t, err)
		id2, err := app.schedulePost("Two", runAt)
		require.NoError(t, err)
		postedEventually(t, app, id1)
		postedEventually(t, app, id2)
	})
}

func Test_executePost(t *testing.T) {
	app := createTestApp(t)
	fc := enableFakeTelegram(app)

	t.Run("Second execution is a no-op", func(t *testing.T) {
		id, err := app.db.createPost("Once only", time.Now())
		require.NoError(t, err)

		app.executePost(id)
		app.executePost(id)

		p, err := app.db.getPost(id)
		require.NoError(t, err)
		assert.Equal(t, statusPosted, p.Status)
		// Published exactly once
		assert.Equal(t, 1, fc.requestCount())

		// The per-post lock is released once the post is terminal
		_, held := app.executeLocks.Load(id)
		assert.False(t, held)
	})

	t.Run("Unknown id is silently ignored", func(t *testing.T) {
		assert.NotPanics(t, func() {
			app.executePost(12345)
		})
		_, held := app.executeLocks.Load(12345)
		assert.False(t, held)
	})

	t.Run("Publish failure still marks posted", func(t *testing.T) {
		fc.setFakeResponse(http.StatusInternalServerError, `{"ok":false}`)
		id, err := app.db.createPost("Best effort", time.Now())
		require.NoError(t, err)
		app.executePost(id)
		p, err := app.db.getPost(id)
		require.NoError(t, err)
		assert.Equal(t, statusPosted, p.Status)
	})
}

func Test_recoverScheduledPosts(t *testing.T) {
	app := createTestApp(t)
	enableFakeTelegram(app)

	overdue, err := app.db.createPost("Missed while down", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	upcoming, err := app.db.createPost("Still pending", time.Now().Add(200*time.Millisecond))
	require.NoError(t, err)
	posted, err := app.db.createPost("Already done", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.NoError(t, app.db.markPostPosted(posted))

	require.NoError(t, app.recoverScheduledPosts())

	postedEventually(t, app, overdue)
	postedEventually(t, app, upcoming)
}
