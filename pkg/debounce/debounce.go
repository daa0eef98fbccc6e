// Package debounce provides a cancellable timer: scheduling a new call always
// cancels the pending one, so only the last call of a burst ever runs.
package debounce

import (
	"sync"
	"time"
)

type Timer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	fn    func()
	seq   uint64
}

func New(delay time.Duration) *Timer {
	return &Timer{delay: delay}
}

func (t *Timer) Delay() time.Duration {
	return t.delay
}

// Schedule cancels any pending call and arms fn to run after the delay.
func (t *Timer) Schedule(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.seq++
	seq := t.seq
	t.fn = fn
	t.timer = time.AfterFunc(t.delay, func() {
		t.mu.Lock()
		if seq != t.seq || t.fn == nil {
			t.mu.Unlock()
			return
		}
		run := t.fn
		t.fn = nil
		t.timer = nil
		t.mu.Unlock()
		run()
	})
}

// Cancel drops the pending call. It reports whether one was pending.
func (t *Timer) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	pending := t.fn != nil
	t.stopLocked()
	t.seq++
	return pending
}

// Flush runs the pending call now, on the caller's goroutine.
func (t *Timer) Flush() bool {
	t.mu.Lock()
	run := t.fn
	t.stopLocked()
	t.seq++
	t.mu.Unlock()

	if run == nil {
		return false
	}
	run()
	return true
}

func (t *Timer) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fn != nil
}

func (t *Timer) stopLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.fn = nil
}
