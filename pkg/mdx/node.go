package mdx

import (
	"github.com/vango-dev/docsite/pkg/scope"
	"github.com/vango-dev/docsite/pkg/vdom"
)

// Node is a content tree node. The set of node types is closed.
type Node interface {
	isNode()
}

// Element is a content element identified by its tag name ("h2", "pre",
// "wrapper", or any custom name a Components mapping knows about).
type Element struct {
	Tag      string
	Props    vdom.Props
	Children []Node
}

// Text is literal text.
type Text struct {
	Value string
}

// Fragment groups nodes without producing an element.
type Fragment struct {
	Children []Node
}

// Provider establishes component overrides for its children.
//
// Overrides are resolved against the scope the Provider is rendered in, not
// the one it was built in, so the same Provider composes correctly wherever
// it is placed. The child scope derived for each parent is memoized.
type Provider struct {
	Children []Node
	memo     *scope.Memo[Renderer]
}

func (*Element) isNode()  {}
func (*Text) isNode()     {}
func (*Fragment) isNode() {}
func (*Provider) isNode() {}

// El creates an Element. Props may be nil.
func El(tag string, props vdom.Props, children ...Node) *Element {
	return &Element{Tag: tag, Props: props, Children: children}
}

// T creates a Text node.
func T(value string) *Text {
	return &Text{Value: value}
}

// Group creates a Fragment.
func Group(children ...Node) *Fragment {
	return &Fragment{Children: children}
}

// Provide creates a Provider that overlays o on the enclosing components.
func Provide(o scope.Overrides[Renderer], children ...Node) *Provider {
	return &Provider{Children: children, memo: scope.NewMemo(o, false)}
}

// ProvideIsolated creates a Provider that ignores enclosing providers and
// overlays o on the default components only.
func ProvideIsolated(o scope.Overrides[Renderer], children ...Node) *Provider {
	return &Provider{Children: children, memo: scope.NewMemo(o, true)}
}

// Walk calls fn for n and each of its descendants in depth-first order.
// Returning false from fn skips the node's children.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range children(n) {
		Walk(c, fn)
	}
}

// TextOf returns the concatenated text of n and its descendants.
func TextOf(n Node) string {
	var out []byte
	Walk(n, func(c Node) bool {
		if t, ok := c.(*Text); ok {
			out = append(out, t.Value...)
		}
		return true
	})
	return string(out)
}

func children(n Node) []Node {
	switch v := n.(type) {
	case *Element:
		return v.Children
	case *Fragment:
		return v.Children
	case *Provider:
		return v.Children
	}
	return nil
}
