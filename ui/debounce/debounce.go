// Package debounce coalesces bursts of calls into one delayed call.
package debounce

import (
	"sync"
	"time"
)

// Debouncer runs the most recently triggered callback once input has been
// quiet for the configured delay.
type Debouncer struct {
	mu sync.Mutex
	// run is held while a callback executes so Flush can wait for it.
	run   sync.Mutex
	delay time.Duration
	timer *time.Timer
	// gen identifies the latest Trigger. A timer from an older one is stale.
	gen     uint64
	pending func()
}

// New creates a debouncer with the given delay.
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the delay, replacing any callback not yet run.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = fn
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// take removes the pending callback. A non-zero gen only matches the latest
// Trigger.
func (d *Debouncer) take(gen uint64) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if gen != 0 && gen != d.gen {
		return nil
	}
	fn := d.pending
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	return fn
}

func (d *Debouncer) fire(gen uint64) {
	d.run.Lock()
	defer d.run.Unlock()
	if fn := d.take(gen); fn != nil {
		fn()
	}
}

// Flush runs the pending callback now, if any, after waiting for a callback
// that is already running. It reports whether it ran one. fn must not call
// Flush.
func (d *Debouncer) Flush() bool {
	d.run.Lock()
	defer d.run.Unlock()

	fn := d.take(0)
	if fn == nil {
		return false
	}
	fn()
	return true
}

// Cancel drops the pending callback without running it.
func (d *Debouncer) Cancel() {
	d.take(0)
}

// Pending reports whether a callback is waiting to run.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}
