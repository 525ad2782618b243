package binding

// Property is an observable, settable value.
type Property[T comparable] interface {
	Get() T
	Set(v T)
	Observe(fn func(T)) Disposer
}

// Cell is the basic Property implementation. Set always notifies, even when
// the value did not change; loop prevention is the binder's job.
type Cell[T comparable] struct {
	value   T
	changed Signal[T]
}

// NewCell returns a cell holding v.
func NewCell[T comparable](v T) *Cell[T] {
	return &Cell[T]{value: v}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	return c.value
}

// Set stores v and notifies observers.
func (c *Cell[T]) Set(v T) {
	c.value = v
	c.changed.Emit(v)
}

// Observe registers fn for change notifications.
func (c *Cell[T]) Observe(fn func(T)) Disposer {
	return c.changed.Connect(fn)
}

// Observers returns the number of live observers.
func (c *Cell[T]) Observers() int {
	return c.changed.Len()
}
