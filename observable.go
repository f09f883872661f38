package gridsel

// observers is a list of listeners notified in registration order.
type observers[T any] struct {
	listeners []func(T)
}

// Subscribe adds a listener and returns an unsubscribe function. Calling the
// returned function more than once is harmless.
func (o *observers[T]) Subscribe(fn func(T)) func() {
	o.listeners = append(o.listeners, fn)
	idx := len(o.listeners) - 1
	return func() {
		// Zero out, don't reorder: other unsubscribe funcs hold indexes.
		o.listeners[idx] = nil
	}
}

// Len returns the number of live listeners.
func (o *observers[T]) Len() int {
	n := 0
	for _, fn := range o.listeners {
		if fn != nil {
			n++
		}
	}
	return n
}

func (o *observers[T]) notify(v T) {
	for _, fn := range o.listeners {
		if fn != nil {
			fn(v)
		}
	}
}

func (o *observers[T]) clear() {
	for i := range o.listeners {
		o.listeners[i] = nil
	}
}
