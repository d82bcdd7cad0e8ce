// Package search backs the portal's search boxes: keystrokes are debounced
// and only the answer to the latest query is ever delivered.
package search

import (
	"context"
	"sync"
	"time"
)

const DefaultDelay = 300 * time.Millisecond

// Func runs one query. It should give up when ctx is cancelled.
type Func func(ctx context.Context, q string) (interface{}, error)

type Result struct {
	Query string      `json:"query"`
	Value interface{} `json:"results,omitempty"`
	Err   error       `json:"-"`
}

// Debouncer waits for input to settle before running a query. Every Input
// bumps the generation; a timer or request that belongs to an older
// generation is cancelled and whatever it returns is dropped.
type Debouncer struct {
	delay   time.Duration
	fn      Func
	deliver func(Result)

	mux     sync.Mutex
	gen     uint64
	timer   *time.Timer
	cancel  context.CancelFunc
	stopped bool
}

// NewDebouncer returns a debouncer that hands results to deliver. deliver is
// called with the debouncer locked and must not call back into it.
func NewDebouncer(delay time.Duration, fn Func, deliver func(Result)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay, fn: fn, deliver: deliver}
}

// Input records the latest query and restarts the timer.
func (d *Debouncer) Input(q string) {
	d.mux.Lock()
	defer d.mux.Unlock()
	if d.stopped {
		return
	}

	d.gen++
	d.reset()
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen, q) })
}

// Stop cancels the pending timer and any request in flight. Nothing is
// delivered after Stop returns.
func (d *Debouncer) Stop() {
	d.mux.Lock()
	d.stopped = true
	d.reset()
	d.mux.Unlock()
}

// Generation is the number of inputs seen so far.
func (d *Debouncer) Generation() uint64 {
	d.mux.Lock()
	defer d.mux.Unlock()
	return d.gen
}

// reset needs the lock held.
func (d *Debouncer) reset() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

func (d *Debouncer) fire(gen uint64, q string) {
	d.mux.Lock()
	if d.stopped || gen != d.gen {
		d.mux.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.mux.Unlock()

	v, err := d.fn(ctx, q)
	cancel()

	d.mux.Lock()
	defer d.mux.Unlock()
	if d.stopped || gen != d.gen {
		return
	}
	d.deliver(Result{Query: q, Value: v, Err: err})
}
