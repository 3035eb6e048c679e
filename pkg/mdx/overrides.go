package mdx

import (
	"maps"
	"slices"

	"github.com/vango-dev/docsite/pkg/scope"
	"github.com/vango-dev/docsite/pkg/vdom"
)

// Map returns literal overrides for the given components.
func Map(c Components) scope.Overrides[Renderer] {
	return scope.Literal(c)
}

// With returns overrides computed from the components currently in effect.
func With(fn func(current Components) Components) scope.Overrides[Renderer] {
	return scope.Transform(fn)
}

// AddClass returns overrides that decorate the current renderer of each tag
// in classes with an extra CSS class. Tags with no current renderer
// decorate DefaultRenderer.
func AddClass(classes map[string]string) scope.Overrides[Renderer] {
	tags := slices.Sorted(maps.Keys(classes))
	return With(func(current Components) Components {
		out := make(Components, len(tags))
		for _, tag := range tags {
			out[tag] = withClass(lookup(current, tag), classes[tag])
		}
		return out
	})
}

// Wrap returns overrides that set the document wrapper.
func Wrap(fn func(p Props) *vdom.VNode) scope.Overrides[Renderer] {
	return scope.Set[Renderer](WrapperTag, RendererFunc(fn))
}

// WrapperClass returns overrides that add class to the document wrapper.
// Without a current wrapper the document is wrapped in a div with class.
func WrapperClass(class string) scope.Overrides[Renderer] {
	return With(func(current Components) Components {
		if w, ok := current[WrapperTag]; ok && w != nil {
			return Components{WrapperTag: withClass(w, class)}
		}
		return Components{WrapperTag: RendererFunc(func(p Props) *vdom.VNode {
			return vdom.Div(vdom.Class(class), p.Children)
		})}
	})
}

func withClass(next Renderer, class string) Renderer {
	return RendererFunc(func(p Props) *vdom.VNode {
		node := next.Render(p)
		if node == nil || node.Kind != vdom.KindElement {
			return node
		}
		if node.Props == nil {
			node.Props = vdom.Props{}
		}
		existing := attrString(node.Props, "class")
		if existing == "" {
			existing = attrString(node.Props, "className")
			delete(node.Props, "className")
		}
		node.Props["class"] = joinClass(existing, class)
		return node
	})
}

func lookup(c Components, tag string) Renderer {
	if r, ok := c[tag]; ok && r != nil {
		return r
	}
	return DefaultRenderer
}

func attrString(p vdom.Props, key string) string {
	s, _ := p[key].(string)
	return s
}

func joinClass(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " " + b
}
