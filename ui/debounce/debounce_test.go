package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTriggerCoalesces(t *testing.T) {
	d := New(20 * time.Millisecond)
	var calls, last atomic.Int32

	for i := int32(1); i <= 5; i++ {
		i := i
		d.Trigger(func() {
			calls.Add(1)
			last.Store(i)
		})
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(5), last.Load())
	assert.False(t, d.Pending())
}

func TestFlushRunsImmediately(t *testing.T) {
	d := New(time.Hour)
	ran := false
	d.Trigger(func() { ran = true })
	assert.True(t, d.Pending())

	assert.True(t, d.Flush())
	assert.True(t, ran)
	assert.False(t, d.Flush())
}

func TestCancel(t *testing.T) {
	d := New(10 * time.Millisecond)
	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Cancel()

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
	assert.False(t, d.Pending())
}

func TestStaleTimerDoesNotRunNewerCallback(t *testing.T) {
	d := New(time.Hour)
	d.Trigger(func() {})
	d.mu.Lock()
	stale := d.gen
	d.mu.Unlock()

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })

	// An old timer that fired before the second Trigger stopped it.
	d.fire(stale)
	assert.Equal(t, int32(0), calls.Load())
	assert.True(t, d.Pending())

	assert.True(t, d.Flush())
	assert.Equal(t, int32(1), calls.Load())
}

func TestFlushWaitsForRunningCallback(t *testing.T) {
	d := New(time.Millisecond)
	started := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool
	d.Trigger(func() {
		close(started)
		<-release
		finished.Store(true)
	})
	<-started

	flushed := make(chan bool)
	go func() { flushed <- d.Flush() }()

	select {
	case <-flushed:
		t.Fatal("Flush returned while the callback was still running")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	assert.False(t, <-flushed)
	assert.True(t, finished.Load())
}
