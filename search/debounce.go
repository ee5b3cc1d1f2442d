package search

import (
	"context"
	"sync"
	"time"
)

// Debouncer serializes user-triggered search operations. Each call cancels
// any pending or in-flight predecessor, waits out the debounce delay, runs,
// and delivers its result only if no newer call has superseded it. At most
// one call's result is ever delivered per burst, and a slow stale run can
// never overwrite a newer one.
type Debouncer[T any] struct {
	delay time.Duration

	mu     sync.Mutex
	seq    uint64
	timer  *time.Timer
	cancel context.CancelFunc
}

// NewDebouncer creates a debouncer with the given delay. A zero delay still
// provides the cancellation discipline without the typing pause.
func NewDebouncer[T any](delay time.Duration) *Debouncer[T] {
	return &Debouncer[T]{delay: delay}
}

// Do schedules run after the debounce delay. run receives a context that is
// cancelled as soon as a newer Do call arrives (or the parent context ends);
// deliver is invoked with run's result only when it is still the latest.
func (d *Debouncer[T]) Do(ctx context.Context, run func(context.Context) (T, error), deliver func(T, error)) {
	d.mu.Lock()
	d.seq++
	mine := d.seq

	if d.cancel != nil {
		d.cancel()
	}
	if d.timer != nil {
		d.timer.Stop()
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	d.timer = time.AfterFunc(d.delay, func() {
		result, err := run(runCtx)

		d.mu.Lock()
		current := d.seq == mine && runCtx.Err() == nil
		d.mu.Unlock()

		if current && deliver != nil {
			deliver(result, err)
		}
	})
	d.mu.Unlock()
}

// Stop cancels any pending or in-flight run. No result is delivered for it.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++ // anything still running is now stale
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
