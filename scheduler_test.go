package main

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_scheduler(t *testing.T) {
	app := createTestApp(t)

	t.Run("Past instant fires promptly", func(t *testing.T) {
		var fired atomic.Int32
		app.sched.scheduleOnce(time.Now().Add(-time.Second), func() {
			fired.Add(1)
		})
		assert.Eventually(t, func() bool {
			return fired.Load() == 1
		}, 3*time.Second, 10*time.Millisecond)
	})

	t.Run("Same instant registrations all fire", func(t *testing.T) {
		var fired atomic.Int32
		runAt := time.Now().Add(50 * time.Millisecond)
		for i := 0; i < 3; i++ {
			app.sched.scheduleOnce(runAt, func() {
				fired.Add(1)
			})
		}
		assert.Eventually(t, func() bool {
			return fired.Load() == 3
		}, 3*time.Second, 10*time.Millisecond)
	})

	t.Run("Cancel prevents firing", func(t *testing.T) {
		var fired atomic.Int32
		handle := app.sched.scheduleOnce(time.Now().Add(100*time.Millisecond), func() {
			fired.Add(1)
		})
		app.sched.cancel(handle)
		time.Sleep(300 * time.Millisecond)
		assert.EqualValues(t, 0, fired.Load())
		assert.Zero(t, app.sched.pending())
	})

	t.Run("Panicking callback does not kill the facility", func(t *testing.T) {
		var fired atomic.Int32
		app.sched.scheduleOnce(time.Now(), func() {
			panic("boom")
		})
		app.sched.scheduleOnce(time.Now().Add(50*time.Millisecond), func() {
			fired.Add(1)
		})
		assert.Eventually(t, func() bool {
			return fired.Load() == 1
		}, 3*time.Second, 10*time.Millisecond)
	})
}

func Test_schedulerStopped(t *testing.T) {
	app := createTestApp(t)
	app.sched.stop()
	var fired atomic.Int32
	handle := app.sched.scheduleOnce(time.Now(), func() {
		fired.Add(1)
	})
	assert.Empty(t, handle)
	time.Sleep(100 * time.Millisecond)
	assert.EqualValues(t, 0, fired.Load())
}
