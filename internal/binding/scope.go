package binding

// Scope collects disposers and releases all of them exactly once.
type Scope struct {
	disposers []Disposer
	closed    bool
}

// Add registers d for release on Close. If the scope is already closed,
// d is invoked immediately.
func (s *Scope) Add(d Disposer) {
	if d == nil {
		return
	}
	if s.closed {
		d()
		return
	}
	s.disposers = append(s.disposers, d)
}

// Close invokes every collected disposer in reverse registration order.
// Subsequent calls do nothing.
func (s *Scope) Close() {
	if s.closed {
		return
	}
	s.closed = true

	for i := len(s.disposers) - 1; i >= 0; i-- {
		s.disposers[i]()
	}
	s.disposers = nil
}

// Closed reports whether Close has run.
func (s *Scope) Closed() bool {
	return s.closed
}

// Len returns the number of pending disposers.
func (s *Scope) Len() int {
	return len(s.disposers)
}
