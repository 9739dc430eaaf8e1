// Package search holds the client-side query pacing: keystrokes are
// debounced, and each fired query carries a monotonically increasing
// sequence token so responses that arrive after a newer query has fired can
// be discarded instead of clobbering fresher results.
package search

import (
	"sync"
	"time"
)

const DefaultDelay = 300 * time.Millisecond

type Debouncer struct {
	Delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{Delay: delay}
}

// Submit schedules fire for the query after the quiet window. A newer Submit
// restarts the window, so only the last query within it fires. fire receives
// the sequence token it must pass back to Stale when its response arrives.
func (d *Debouncer) Submit(query string, fire func(seq uint64, query string)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.Delay, func() {
		fire(seq, query)
	})
}

// Stale reports whether a response belongs to a superseded query. In-flight
// requests are not cancelled; their responses are dropped here instead.
func (d *Debouncer) Stale(seq uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return seq != d.seq
}

// Stop cancels any pending fire.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
