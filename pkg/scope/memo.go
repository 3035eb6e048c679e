package scope

import "sync"

// DefaultMemoLimit is the number of parents a Memo remembers.
const DefaultMemoLimit = 32

// Memo caches the child scope derived for each parent scope.
//
// It is meant to live next to a declared set of overrides: the first time
// the overrides are applied under a given parent the result is stored, and
// later applications under the same parent reuse it. Entries are keyed on
// parent identity, so a Memo must only ever be used with one Overrides value.
//
// At most DefaultMemoLimit parents are kept; the oldest entry is evicted
// first. Callers that derive a fresh parent for every render still get
// correct results, only without reuse. Memo is safe for concurrent use.
type Memo[V any] struct {
	overrides Overrides[V]
	isolated  bool

	mu       sync.Mutex
	children map[*Scope[V]]*Scope[V]
	order    []*Scope[V]
	limit    int
	hits     uint64
}

// NewMemo creates a Memo for o. When isolated is set, children are derived
// with ProvideIsolated.
func NewMemo[V any](o Overrides[V], isolated bool) *Memo[V] {
	return &Memo[V]{
		overrides: o,
		isolated:  isolated,
		children:  make(map[*Scope[V]]*Scope[V]),
		limit:     DefaultMemoLimit,
	}
}

// Apply returns the child of parent for the memoized overrides.
func (m *Memo[V]) Apply(parent *Scope[V]) *Scope[V] {
	m.mu.Lock()
	defer m.mu.Unlock()

	if child, ok := m.children[parent]; ok {
		m.hits++
		return child
	}

	var child *Scope[V]
	if m.isolated {
		child = parent.ProvideIsolated(m.overrides)
	} else {
		child = parent.Provide(m.overrides)
	}

	if len(m.order) == m.limit {
		delete(m.children, m.order[0])
		m.order[0] = nil
		m.order = m.order[1:]
	}
	m.children[parent] = child
	m.order = append(m.order, parent)
	return child
}

// Hits returns how many Apply calls were served from the cache.
func (m *Memo[V]) Hits() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits
}

// Len returns the number of cached parents.
func (m *Memo[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.children)
}
