package mdx

import (
	"maps"

	"github.com/vango-dev/docsite/pkg/scope"
	"github.com/vango-dev/docsite/pkg/vdom"
)

// Render renders n in scope s.
//
// Each Element is dispatched by tag to the renderer in effect at its
// position; children are rendered first, in the same scope. A Provider
// derives its child scope from s when it is reached, so overrides never leak
// to siblings or ancestors.
func Render(s *Scope, n Node) *vdom.VNode {
	switch v := n.(type) {
	case nil:
		return nil
	case *Text:
		if v != nil {
			return vdom.Text(v.Value)
		}
	case *Fragment:
		if v != nil {
			return vdom.Fragment(renderChildren(s, v.Children))
		}
	case *Provider:
		if v != nil {
			return vdom.Fragment(renderChildren(v.memo.Apply(s), v.Children))
		}
	case *Element:
		if v != nil {
			return renderElement(s, v)
		}
	}
	return nil
}

func renderElement(s *Scope, el *Element) *vdom.VNode {
	r, ok := s.Lookup(el.Tag)
	if !ok || r == nil {
		r = DefaultRenderer
	}
	attrs := maps.Clone(el.Props)
	if attrs == nil {
		attrs = vdom.Props{}
	}
	return r.Render(Props{
		Tag:      el.Tag,
		Attrs:    attrs,
		Children: renderChildren(s, el.Children),
		Scope:    s,
	})
}

func renderChildren(s *Scope, nodes []Node) []*vdom.VNode {
	out := make([]*vdom.VNode, 0, len(nodes))
	for _, n := range nodes {
		if v := Render(s, n); v != nil {
			out = append(out, v)
		}
	}
	return out
}

// Overlay is a set of per-document overrides that remembers the scopes
// derived from it. Keep one Overlay per document and pass it on every render
// so the document's scope, and the Providers inside it, are reused.
type Overlay struct {
	memo *scope.Memo[Renderer]
}

// NewOverlay creates an Overlay for o.
func NewOverlay(o scope.Overrides[Renderer]) *Overlay {
	return &Overlay{memo: scope.NewMemo(o, false)}
}

// DocumentOptions control RenderDocument.
type DocumentOptions struct {
	// Overlay holds the document's own overrides. It applies on top of
	// every enclosing provider.
	Overlay *Overlay

	// Components are one-off overrides applied after Overlay. A fresh scope
	// is derived on every call, so documents rendered repeatedly should use
	// Overlay instead.
	Components scope.Overrides[Renderer]

	// Attrs are passed to the wrapper component, if any.
	Attrs vdom.Props
}

// RenderDocument renders a whole document body in s.
//
// When a "wrapper" component is in effect, the rendered body is passed to it
// as its only child and the wrapper's output is returned.
func RenderDocument(s *Scope, body Node, opts DocumentOptions) *vdom.VNode {
	if opts.Overlay != nil {
		s = opts.Overlay.memo.Apply(s)
	}
	if opts.Components != nil {
		s = s.Provide(opts.Components)
	}
	content := Render(s, body)

	wrapper, ok := s.Lookup(WrapperTag)
	if !ok || wrapper == nil {
		return content
	}
	attrs := maps.Clone(opts.Attrs)
	if attrs == nil {
		attrs = vdom.Props{}
	}
	var children []*vdom.VNode
	if content != nil {
		children = []*vdom.VNode{content}
	}
	return wrapper.Render(Props{Tag: WrapperTag, Attrs: attrs, Children: children, Scope: s})
}
