package rtcore

// Lifetime holds at most one value of type T in storage owned by the
// Lifetime itself (a struct field, not the heap, once the caller puts
// the Lifetime in static or stack storage). It is the Go rendering of
// the specification's "lifetime cell": explicit construct/destroy of
// a single optional value, with panic-on-misuse guards matching the
// original's double-emplace and empty-destroy-or-panic conditions.
type Lifetime[T any] struct {
	panicOn PanicHandler
	value   T
	exists  bool
}

// NewLifetime returns an empty Lifetime using handler for contract
// violations (nil defaults to the package default, a real panic).
func NewLifetime[T any](handler PanicHandler) *Lifetime[T] {
	if handler == nil {
		handler = defaultPanicHandler
	}
	return &Lifetime[T]{panicOn: handler}
}

// HasValue reports whether a T is currently constructed.
func (l *Lifetime[T]) HasValue() bool {
	return l.exists
}

// Get returns a pointer to the held value. Panics (TagMemory) if
// empty.
func (l *Lifetime[T]) Get() *T {
	if !l.exists {
		l.panicOn(newFault(TagMemory, "lifetime: get on empty cell"))
		return nil
	}
	return &l.value
}

// Emplace constructs value in the cell. Panics (TagMemory) if a value
// is already present; use Force to replace unconditionally.
func (l *Lifetime[T]) Emplace(value T) {
	if l.exists {
		l.panicOn(newFault(TagMemory, "lifetime: emplace on occupied cell"))
		return
	}
	l.value = value
	l.exists = true
}

// Force destroys any existing value, then constructs value.
func (l *Lifetime[T]) Force(value T) {
	l.Destroy()
	l.value = value
	l.exists = true
}

// Singleton constructs value only if the cell is currently empty, and
// returns a pointer to whichever value (new or pre-existing) now
// occupies the cell.
func (l *Lifetime[T]) Singleton(value T) *T {
	if !l.exists {
		l.value = value
		l.exists = true
	}
	return &l.value
}

// Destroy clears the cell if occupied; a no-op otherwise.
func (l *Lifetime[T]) Destroy() {
	if !l.exists {
		return
	}
	var zero T
	l.value = zero
	l.exists = false
}

// DestroyOrPanic clears the cell, or invokes the panic handler with
// TagMemory if it was already empty.
func (l *Lifetime[T]) DestroyOrPanic() {
	if !l.exists {
		l.panicOn(newFault(TagMemory, "lifetime: destroy-or-panic on empty cell"))
		return
	}
	l.Destroy()
}

// WithLifetime emplaces value into l, runs body with the constructed
// pointer, and destroys it on every exit path from body (including a
// panic unwinding through body), via defer — the Go rendering of the
// specification's scoped-activation macro, implemented as an ordinary
// higher-order function instead of the source's loop trick.
func WithLifetime[T any](l *Lifetime[T], value T, body func(*T)) {
	l.Emplace(value)
	defer l.Destroy()
	body(l.Get())
}
