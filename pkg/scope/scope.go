package scope

import (
	"maps"

	"github.com/vango-dev/docsite/internal/errors"
)

// Map is a configuration mapping from option name to value.
type Map[V any] map[string]V

// Clone returns a shallow copy of m. Cloning a nil Map yields an empty one.
func (m Map[V]) Clone() Map[V] {
	out := make(Map[V], len(m))
	maps.Copy(out, m)
	return out
}

// Merge returns a new Map holding base overlaid with over.
// Keys in over win. Neither argument is modified.
func Merge[V any](base, over Map[V]) Map[V] {
	out := make(Map[V], len(base)+len(over))
	maps.Copy(out, base)
	maps.Copy(out, over)
	return out
}

// Context owns the defaults for one kind of configuration.
type Context[V any] struct {
	root *Scope[V]
}

// New creates a Context whose defaults are a private copy of defaults.
// Later changes to the caller's map are not observed.
func New[V any](defaults Map[V]) *Context[V] {
	c := &Context[V]{}
	c.root = &Scope[V]{ctx: c, value: defaults.Clone()}
	return c
}

// Root returns the scope that sees only the defaults.
func (c *Context[V]) Root() *Scope[V] {
	return c.root
}

// Defaults returns a copy of the default configuration.
func (c *Context[V]) Defaults() Map[V] {
	return c.root.value.Clone()
}

// Scope is one node of the configuration tree. It is immutable and safe to
// share between goroutines.
type Scope[V any] struct {
	ctx    *Context[V]
	parent *Scope[V]
	value  Map[V]
	depth  int
}

// Read returns the effective configuration of s. The result is a copy.
func (s *Scope[V]) Read() Map[V] {
	return s.value.Clone()
}

// Lookup returns the effective value for key.
func (s *Scope[V]) Lookup(key string) (V, bool) {
	v, ok := s.value[key]
	return v, ok
}

// Len returns the number of keys in the effective configuration.
func (s *Scope[V]) Len() int {
	return len(s.value)
}

// Parent returns the enclosing scope, or nil for the root.
func (s *Scope[V]) Parent() *Scope[V] {
	return s.parent
}

// Depth returns how many Provide calls separate s from the root.
func (s *Scope[V]) Depth() int {
	return s.depth
}

// Context returns the Context s belongs to.
func (s *Scope[V]) Context() *Context[V] {
	return s.ctx
}

// Provide returns a child scope whose effective configuration is s overlaid
// with o. A nil o yields a child equal to s.
//
// Provide panics with an E001 error if o is malformed.
func (s *Scope[V]) Provide(o Overrides[V]) *Scope[V] {
	return s.derive(s.value, o)
}

// ProvideIsolated is like Provide but ignores every ancestor: o is resolved
// against, and merged over, the defaults only.
func (s *Scope[V]) ProvideIsolated(o Overrides[V]) *Scope[V] {
	return s.derive(s.ctx.root.value, o)
}

func (s *Scope[V]) derive(base Map[V], o Overrides[V]) *Scope[V] {
	var over Map[V]
	if o != nil {
		over = o.resolve(base.Clone())
	}
	return &Scope[V]{
		ctx:    s.ctx,
		parent: s,
		value:  Merge(base, over),
		depth:  s.depth + 1,
	}
}

// invalid builds the panic value for malformed overrides.
func invalid(detail string) *errors.DocsiteError {
	return errors.New("E001").WithDetail(detail)
}
