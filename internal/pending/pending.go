// Package pending holds values computed in the background that must be
// available before a shared deadline.
package pending

import (
	"sync"
	"time"
)

// Deadline is the instant after which pending values are treated as
// unavailable. The zero Deadline never expires.
type Deadline struct {
	at      time.Time
	set     bool
	expired bool
}

// NoDeadline returns a deadline that never expires.
func NoDeadline() Deadline {
	return Deadline{}
}

// After returns a deadline timeout from now. A zero or negative timeout
// gives an already expired deadline: values waiting on it are never read.
func After(timeout time.Duration) Deadline {
	if timeout <= 0 {
		return Deadline{set: true, expired: true}
	}
	return Deadline{at: time.Now().Add(timeout), set: true}
}

// FromTimeout builds a deadline from an optional timeout. A nil timeout
// means no deadline.
func FromTimeout(timeout *time.Duration) Deadline {
	if timeout == nil {
		return NoDeadline()
	}
	return After(*timeout)
}

// IsSet reports whether the deadline can expire.
func (d Deadline) IsSet() bool {
	return d.set
}

// Remaining returns the time left before the deadline. The boolean is
// false when there is no deadline.
func (d Deadline) Remaining() (time.Duration, bool) {
	if !d.set {
		return 0, false
	}
	if d.expired {
		return 0, true
	}
	return time.Until(d.at), true
}

type state uint8

const (
	stateIdle state = iota
	stateWaiting
	stateResolved
)

// Value is a result delivered once through a channel. The first Get
// waits for it, bounded by the deadline; the outcome of that wait is
// cached and returned by every later Get.
type Value[T any] struct {
	mu       sync.Mutex
	state    state
	ch       <-chan T
	deadline Deadline
	value    T
	ok       bool
}

// NewValue returns a Value waiting on ch until deadline.
func NewValue[T any](ch <-chan T, deadline Deadline) *Value[T] {
	return &Value[T]{state: stateWaiting, ch: ch, deadline: deadline}
}

// Resolved returns a Value already holding v.
func Resolved[T any](v T) *Value[T] {
	return &Value[T]{state: stateResolved, value: v, ok: true}
}

// Get returns the value, or false if it was not delivered before the
// deadline. An idle Value (the zero Value) is always unavailable.
func (v *Value[T]) Get() (T, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch v.state {
	case stateResolved:
		return v.value, v.ok
	case stateIdle:
		var zero T
		return zero, false
	}

	v.value, v.ok = v.wait()
	v.state = stateResolved
	v.ch = nil
	return v.value, v.ok
}

func (v *Value[T]) wait() (T, bool) {
	var zero T

	remaining, hasDeadline := v.deadline.Remaining()
	switch {
	case !hasDeadline:
		val, ok := <-v.ch
		return val, ok

	case v.deadline.expired:
		return zero, false

	case remaining <= 0:
		// Past the deadline: take the value only if it is already there.
		select {
		case val, ok := <-v.ch:
			return val, ok
		default:
			return zero, false
		}
	}

	timer := time.NewTimer(remaining)
	defer timer.Stop()

	select {
	case val, ok := <-v.ch:
		return val, ok
	case <-timer.C:
		return zero, false
	}
}
