package caption

// Opt is a value that may be absent.
type Opt[T any] struct {
	v  T
	ok bool
}

// Some returns a present value.
func Some[T any](v T) Opt[T] {
	return Opt[T]{v: v, ok: true}
}

// None returns an absent value.
func None[T any]() Opt[T] {
	return Opt[T]{}
}

// Get returns the value and whether it is present.
func (o Opt[T]) Get() (T, bool) {
	return o.v, o.ok
}

// OK reports whether the value is present.
func (o Opt[T]) OK() bool {
	return o.ok
}

// Or returns the value, or def if absent.
func (o Opt[T]) Or(def T) T {
	if !o.ok {
		return def
	}
	return o.v
}

// text returns s when present and non-empty.
func text(o Opt[string]) (string, bool) {
	s, ok := o.Get()
	return s, ok && s != ""
}
