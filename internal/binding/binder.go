package binding

import "log/slog"

type link struct {
	target any
	key    string
}

// Binder keeps at most one two-way link per (target, key) pair.
type Binder[T comparable] struct {
	logger *slog.Logger
	links  map[link]Disposer
}

// NewBinder creates an empty binder. A nil logger uses slog.Default().
func NewBinder[T comparable](logger *slog.Logger) *Binder[T] {
	if logger == nil {
		logger = slog.Default()
	}

	return &Binder[T]{
		logger: logger,
		links:  make(map[link]Disposer),
	}
}

// Bind synchronizes target with source in both directions. The target takes
// the source value first. Each direction writes only when the receiving side
// holds a different value, so a change echoed back by the other side stops
// after one hop. An existing link for the same (target, key) is released
// before the new one is created.
func (b *Binder[T]) Bind(target Property[T], key string, source Property[T]) {
	id := link{target: target, key: key}
	if prev, ok := b.links[id]; ok {
		prev()
		delete(b.links, id)
		b.logger.Debug("released previous binding", slog.String("key", key))
	}

	if v := source.Get(); target.Get() != v {
		target.Set(v)
	}

	fromSource := source.Observe(func(v T) {
		if target.Get() != v {
			target.Set(v)
		}
	})
	fromTarget := target.Observe(func(v T) {
		if source.Get() != v {
			source.Set(v)
		}
	})

	b.links[id] = func() {
		fromSource()
		fromTarget()
	}
}

// Unbind releases the link for (target, key), if any.
func (b *Binder[T]) Unbind(target Property[T], key string) {
	id := link{target: target, key: key}
	if d, ok := b.links[id]; ok {
		d()
		delete(b.links, id)
	}
}

// Len returns the number of live links.
func (b *Binder[T]) Len() int {
	return len(b.links)
}

// Close releases every link.
func (b *Binder[T]) Close() {
	for id, d := range b.links {
		d()
		delete(b.links, id)
	}
}

// Watch calls fn with the current value of src and again on every change.
func Watch[T comparable](src Property[T], fn func(T)) Disposer {
	fn(src.Get())
	return src.Observe(fn)
}
