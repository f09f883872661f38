package gridsel

import "time"

// StateScheduler coalesces state updates. Only the latest scheduled value is
// kept; it is applied on the next frame, with an immediate fallback so the
// last value of a burst lands even when frames are delayed or skipped.
type StateScheduler[T any] struct {
	host  Host
	apply func(T)

	pending    T
	hasPending bool
	frame      Handle
	tick       Handle
}

// NewStateScheduler creates a scheduler applying values with apply.
func NewStateScheduler[T any](host Host, apply func(T)) *StateScheduler[T] {
	return &StateScheduler[T]{host: host, apply: apply}
}

// Schedule replaces any pending value with v.
func (s *StateScheduler[T]) Schedule(v T) {
	s.pending = v
	s.hasPending = true
	if s.frame == nil {
		s.frame = s.host.RequestFrame(s.flush)
	}
	if s.tick == nil {
		s.tick = s.host.RequestImmediate(s.flush)
	}
}

// Pending reports whether a value is waiting to be applied.
func (s *StateScheduler[T]) Pending() bool {
	return s.hasPending
}

// Flush applies the pending value now, if any.
func (s *StateScheduler[T]) Flush() {
	s.flush()
}

// Cancel drops the pending value and any outstanding requests.
func (s *StateScheduler[T]) Cancel() {
	s.release()
	var zero T
	s.pending = zero
	s.hasPending = false
}

func (s *StateScheduler[T]) flush() {
	s.release()
	if !s.hasPending {
		return
	}
	v := s.pending
	var zero T
	s.pending = zero
	s.hasPending = false
	s.apply(v)
}

func (s *StateScheduler[T]) release() {
	if s.frame != nil {
		s.frame.Cancel()
		s.frame = nil
	}
	if s.tick != nil {
		s.tick.Cancel()
		s.tick = nil
	}
}

// Priority orders overlay requests.
type Priority uint8

const (
	// PriorityUserBlocking runs on the next immediate callback.
	PriorityUserBlocking Priority = iota
	// PriorityBackground runs when idle, bounded by the idle timeout.
	PriorityBackground
)

func (p Priority) String() string {
	if p == PriorityUserBlocking {
		return "user-blocking"
	}
	return "background"
}

// OverlayScheduler coalesces overlay recompute requests into at most one
// pending callback.
type OverlayScheduler struct {
	host    Host
	run     func()
	timeout time.Duration

	pending  Handle
	priority Priority
}

// NewOverlayScheduler creates a scheduler calling run once per coalesced batch.
// A non-positive timeout uses the default idle timeout.
func NewOverlayScheduler(host Host, timeout time.Duration, run func()) *OverlayScheduler {
	if timeout <= 0 {
		timeout = DefaultConfig().IdleTimeout
	}
	return &OverlayScheduler{host: host, run: run, timeout: timeout}
}

// Request asks for a recompute at priority p. A pending user-blocking request
// absorbs everything; a pending background request is upgraded by a
// user-blocking one.
func (s *OverlayScheduler) Request(p Priority) {
	if s.pending != nil {
		if s.priority == PriorityUserBlocking || p == PriorityBackground {
			return
		}
		s.pending.Cancel()
		s.pending = nil
	}
	s.priority = p
	if p == PriorityUserBlocking {
		s.pending = s.host.RequestImmediate(s.fire)
		return
	}
	s.pending = s.host.RequestIdle(s.timeout, s.fire)
}

// Pending reports the priority of the outstanding request, if any.
func (s *OverlayScheduler) Pending() (Priority, bool) {
	return s.priority, s.pending != nil
}

// Cancel drops the outstanding request.
func (s *OverlayScheduler) Cancel() {
	if s.pending != nil {
		s.pending.Cancel()
		s.pending = nil
	}
}

func (s *OverlayScheduler) fire() {
	s.pending = nil
	s.run()
}
