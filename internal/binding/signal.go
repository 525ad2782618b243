// Package binding provides explicit observer registration and two-way
// property synchronization for the shell's widgets and models.
package binding

// Disposer releases a registration. Calling it more than once is a no-op.
type Disposer func()

type handler[T any] struct {
	fn     func(T)
	active bool
}

// Signal is a list of observers notified synchronously on Emit.
type Signal[T any] struct {
	handlers []*handler[T]
}

// Connect registers fn and returns the disposer that removes it.
func (s *Signal[T]) Connect(fn func(T)) Disposer {
	h := &handler[T]{fn: fn, active: true}
	s.handlers = append(s.handlers, h)

	return func() {
		if !h.active {
			return
		}
		h.active = false
		for i, cur := range s.handlers {
			if cur == h {
				s.handlers = append(s.handlers[:i], s.handlers[i+1:]...)
				break
			}
		}
	}
}

// Emit calls every handler connected at the time of the call, in
// registration order. Handlers disposed during emission are skipped.
func (s *Signal[T]) Emit(v T) {
	snapshot := make([]*handler[T], len(s.handlers))
	copy(snapshot, s.handlers)

	for _, h := range snapshot {
		if h.active {
			h.fn(v)
		}
	}
}

// Len returns the number of live handlers.
func (s *Signal[T]) Len() int {
	return len(s.handlers)
}
