package mdx

import (
	"strings"

	"github.com/vango-dev/docsite/pkg/scope"
	"github.com/vango-dev/docsite/pkg/vdom"
)

// Props is what a Renderer receives for one element.
type Props struct {
	// Tag is the content tag name being rendered.
	Tag string

	// Attrs are the element's attributes. Renderers own this copy.
	Attrs vdom.Props

	// Children are the element's children, already rendered in Scope.
	Children []*vdom.VNode

	// Scope holds the components in effect for this element.
	Scope *Scope
}

// Attr returns the string attribute key, or "".
func (p Props) Attr(key string) string {
	s, _ := p.Attrs[key].(string)
	return s
}

// Renderer renders one content element.
type Renderer interface {
	Render(p Props) *vdom.VNode
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(p Props) *vdom.VNode

// Render implements Renderer.
func (f RendererFunc) Render(p Props) *vdom.VNode {
	return f(p)
}

// Components maps content tag names to renderers.
type Components = scope.Map[Renderer]

// Scope is a position in the rendering tree with its effective Components.
type Scope = scope.Scope[Renderer]

// WrapperTag is the component that, when present, wraps a whole document.
const WrapperTag = "wrapper"

// DefaultRenderer renders an element as the HTML element of the same name.
// It is used for every tag missing from the effective Components.
var DefaultRenderer Renderer = RendererFunc(func(p Props) *vdom.VNode {
	return vdom.El(p.Tag, p.Attrs, p.Children)
})

// Tag returns a Renderer that always emits tag, whatever it is mapped from.
func Tag(tag string) Renderer {
	return RendererFunc(func(p Props) *vdom.VNode {
		return vdom.El(tag, p.Attrs, p.Children)
	})
}

// headingRenderer renders hN with an anchor link to its id.
func headingRenderer(p Props) *vdom.VNode {
	id := p.Attr("id")
	node := vdom.El(p.Tag, p.Attrs, p.Children)
	if id != "" {
		node.Children = append(node.Children, vdom.A(
			vdom.Class("hash-link"),
			vdom.Href("#"+id),
			vdom.AriaLabel("Direct link to "+node.TextContent()),
			vdom.TitleAttr("Direct link to "+node.TextContent()),
			"\u200b",
		))
	}
	return node
}

// codeRenderer renders code, marking fenced blocks with their language.
// The language comes from a "language" prop or a "language-*" class.
func codeRenderer(p Props) *vdom.VNode {
	attrs := p.Attrs
	class := p.Attr("className")
	if lang := p.Attr("language"); lang != "" {
		delete(attrs, "language")
		if languageOf(class) == "" {
			class = joinClass(class, "language-"+lang)
			attrs["className"] = class
		}
	}
	if lang := languageOf(class); lang != "" {
		attrs["data-lang"] = lang
	}
	return vdom.El("code", attrs, p.Children)
}

func languageOf(class string) string {
	for _, c := range strings.Fields(class) {
		if lang, ok := strings.CutPrefix(c, "language-"); ok && lang != "" {
			return lang
		}
	}
	return ""
}

// linkRenderer renders links, opening absolute URLs in a new tab.
func linkRenderer(p Props) *vdom.VNode {
	node := vdom.El("a", p.Attrs, p.Children)
	href := p.Attr("href")
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		node.Props["target"] = "_blank"
		node.Props["rel"] = "noopener noreferrer"
	}
	return node
}

// tableRenderer wraps tables so wide command tables scroll horizontally.
func tableRenderer(p Props) *vdom.VNode {
	return vdom.Div(vdom.Class("table-wrapper"), vdom.El("table", p.Attrs, p.Children))
}

// DefaultComponents returns the built-in component set. Each call returns a
// new map.
func DefaultComponents() Components {
	heading := RendererFunc(headingRenderer)
	return Components{
		"h1":         heading,
		"h2":         heading,
		"h3":         heading,
		"h4":         heading,
		"h5":         heading,
		"h6":         heading,
		"p":          Tag("p"),
		"pre":        Tag("pre"),
		"code":       RendererFunc(codeRenderer),
		"inlineCode": Tag("code"),
		"a":          RendererFunc(linkRenderer),
		"ul":         Tag("ul"),
		"ol":         Tag("ol"),
		"li":         Tag("li"),
		"blockquote": Tag("blockquote"),
		"table":      RendererFunc(tableRenderer),
		"thead":      Tag("thead"),
		"tbody":      Tag("tbody"),
		"tr":         Tag("tr"),
		"th":         Tag("th"),
		"td":         Tag("td"),
		"hr":         Tag("hr"),
		"strong":     Tag("strong"),
		"em":         Tag("em"),
		"img":        Tag("img"),
		"br":         Tag("br"),
	}
}

// NewContext creates the component context for a site: the built-in
// components overlaid with site, which may be nil.
func NewContext(site Components) *scope.Context[Renderer] {
	return scope.New(scope.Merge(DefaultComponents(), site))
}
