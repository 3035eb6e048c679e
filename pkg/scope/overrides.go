package scope

// Overrides computes the keys a scope sets for its descendants.
type Overrides[V any] interface {
	// resolve returns the override mapping given the current effective
	// configuration. The argument is a private copy.
	resolve(current Map[V]) Map[V]
}

type literal[V any] struct {
	m Map[V]
}

func (l *literal[V]) resolve(Map[V]) Map[V] {
	return l.m
}

// Literal returns overrides that set exactly the keys in m.
// m is copied, so the caller may reuse it.
func Literal[V any](m Map[V]) Overrides[V] {
	return &literal[V]{m: m.Clone()}
}

type transform[V any] struct {
	fn func(Map[V]) Map[V]
}

func (t *transform[V]) resolve(current Map[V]) Map[V] {
	return t.fn(current)
}

// Transform returns overrides computed from the current effective
// configuration each time they are applied. fn must be pure. A nil result
// sets nothing.
//
// Transform panics with an E001 error if fn is nil.
func Transform[V any](fn func(Map[V]) Map[V]) Overrides[V] {
	if fn == nil {
		panic(invalid("Transform called with a nil function"))
	}
	return &transform[V]{fn: fn}
}

// Set is shorthand for Literal with a single key.
func Set[V any](key string, value V) Overrides[V] {
	return &literal[V]{m: Map[V]{key: value}}
}
