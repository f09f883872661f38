package gridsel

import "time"

// Handle cancels a scheduled callback. Cancel is idempotent and safe to call
// after the callback has already run.
type Handle interface {
	Cancel()
}

// Host is the loop the engine runs on. The engine assumes nothing about it
// beyond these three primitives.
type Host interface {
	// RequestFrame runs fn once, aligned with the next rendered frame.
	RequestFrame(fn func()) Handle

	// RequestImmediate runs fn before control returns to the event loop.
	RequestImmediate(fn func()) Handle

	// RequestIdle runs fn when the loop is idle, or after timeout at the latest.
	RequestIdle(timeout time.Duration, fn func()) Handle
}

type task struct {
	fn        func()
	deadline  time.Time
	cancelled bool
}

func (t *task) Cancel() { t.cancelled = true }

// ManualHost is a Host whose queues are drained explicitly by the caller.
// Tests drive it step by step; terminal programs drain it from their own
// event loop. It is not safe for concurrent use.
type ManualHost struct {
	frames     []*task
	immediates []*task
	idles      []*task

	// Now returns the current time for idle deadlines. Defaults to time.Now.
	Now func() time.Time
}

// NewManualHost creates an empty host.
func NewManualHost() *ManualHost {
	return &ManualHost{Now: time.Now}
}

// RequestFrame implements Host.
func (h *ManualHost) RequestFrame(fn func()) Handle {
	t := &task{fn: fn}
	h.frames = append(h.frames, t)
	return t
}

// RequestImmediate implements Host.
func (h *ManualHost) RequestImmediate(fn func()) Handle {
	t := &task{fn: fn}
	h.immediates = append(h.immediates, t)
	return t
}

// RequestIdle implements Host.
func (h *ManualHost) RequestIdle(timeout time.Duration, fn func()) Handle {
	t := &task{fn: fn, deadline: h.now().Add(timeout)}
	h.idles = append(h.idles, t)
	return t
}

// RunImmediate drains the immediate queue, including callbacks queued while
// draining. It returns how many callbacks ran.
func (h *ManualHost) RunImmediate() int {
	ran := 0
	for len(h.immediates) > 0 {
		t := h.immediates[0]
		h.immediates = h.immediates[1:]
		if t.cancelled {
			continue
		}
		t.cancelled = true
		t.fn()
		ran++
	}
	return ran
}

// RunFrame runs the frame callbacks queued before the call, then drains
// immediates. Frames requested during the frame wait for the next one.
func (h *ManualHost) RunFrame() int {
	batch := h.frames
	h.frames = nil
	ran := 0
	for _, t := range batch {
		if t.cancelled {
			continue
		}
		t.cancelled = true
		t.fn()
		ran++
		ran += h.RunImmediate()
	}
	return ran
}

// RunIdle runs every pending idle callback, as if the loop went idle.
func (h *ManualHost) RunIdle() int {
	return h.runIdle(func(*task) bool { return true })
}

// RunExpired runs only the idle callbacks whose timeout has passed.
func (h *ManualHost) RunExpired() int {
	now := h.now()
	return h.runIdle(func(t *task) bool { return !now.Before(t.deadline) })
}

func (h *ManualHost) runIdle(due func(*task) bool) int {
	var keep []*task
	var run []*task
	for _, t := range h.idles {
		switch {
		case t.cancelled:
		case due(t):
			run = append(run, t)
		default:
			keep = append(keep, t)
		}
	}
	h.idles = keep
	ran := 0
	for _, t := range run {
		if t.cancelled {
			continue
		}
		t.cancelled = true
		t.fn()
		ran++
		ran += h.RunImmediate()
	}
	return ran
}

// Pending returns the number of live callbacks in each queue.
func (h *ManualHost) Pending() (frames, immediates, idles int) {
	return live(h.frames), live(h.immediates), live(h.idles)
}

func (h *ManualHost) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

func live(ts []*task) int {
	n := 0
	for _, t := range ts {
		if !t.cancelled {
			n++
		}
	}
	return n
}
