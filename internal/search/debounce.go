// Package search holds the invoice search URL contract and the debounced
// synchronizer that keeps a search box and the page URL in step.
package search

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DebounceState is the state of a Debouncer.
type DebounceState int

const (
	Idle DebounceState = iota
	PendingFire
)

func (s DebounceState) String() string {
	switch s {
	case Idle:
		return "idle"
	case PendingFire:
		return "pending-fire"
	default:
		return "unknown"
	}
}

// Debouncer delays fn until wait has passed without a new Trigger. Every Trigger
// resets the timer and replaces the pending value, so the last value wins.
type Debouncer[T any] struct {
	clock clockwork.Clock
	wait  time.Duration
	fn    func(T)

	mu      sync.Mutex
	state   DebounceState
	timer   clockwork.Timer
	pending T
	gen     uint64
}

func NewDebouncer[T any](clock clockwork.Clock, wait time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{clock: clock, wait: wait, fn: fn}
}

// Trigger records v and restarts the quiet period.
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = v
	d.state = PendingFire
	d.timer = d.clock.AfterFunc(d.wait, func() { d.fire(gen) })
}

// Cancel drops a pending call, if any.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.state = Idle
}

func (d *Debouncer[T]) State() DebounceState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	// A timer that expired while Trigger or Cancel held the lock is stale.
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	v := d.pending
	d.state = Idle
	d.timer = nil
	d.mu.Unlock()

	d.fn(v)
}
