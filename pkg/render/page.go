package render

import (
	"io"

	"github.com/vango-dev/docsite/pkg/vdom"
)

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the root VNode for the page content.
	Body *vdom.VNode

	// Title is the page title.
	Title string

	// Description becomes the meta description.
	Description string

	// Canonical is the absolute URL of the page, if known.
	Canonical string

	// Meta contains additional meta tags.
	Meta []MetaTag

	// StyleSheets contains paths to external stylesheets.
	StyleSheets []string

	// Styles contains inline CSS.
	Styles []string

	// Scripts are appended to the end of the body.
	Scripts []ScriptTag

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name     string // name attribute
	Property string // property attribute (for OpenGraph)
	Content  string // content attribute
}

// ScriptTag represents a script element.
type ScriptTag struct {
	Src    string // src attribute
	Defer  bool   // defer attribute
	Inline string // inline script content, written unescaped
}

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	return r.renderPage(w, page, nil)
}

// renderPage writes the document, calling flush (if set) once the head is out.
func (r *Renderer) renderPage(w io.Writer, page PageData, flush func()) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	ew := &errWriter{w: w}
	ew.WriteString("<!DOCTYPE html>\n")
	ew.WriteString(`<html lang="` + escapeAttr(lang) + `">` + "\n")
	r.renderNode(ew, headNode(page), 0)
	ew.WriteString("\n")
	if ew.err != nil {
		return ew.err
	}
	if flush != nil {
		flush()
	}

	body := vdom.Body(page.Body, vdom.Range(page.Scripts, func(s ScriptTag, _ int) *vdom.VNode {
		return scriptNode(s)
	}))
	r.renderNode(ew, body, 0)
	ew.WriteString("\n</html>\n")
	return ew.err
}

// headNode builds the document head.
func headNode(page PageData) *vdom.VNode {
	head := vdom.Head(
		vdom.Meta(vdom.Charset("utf-8")),
		vdom.Meta(vdom.Name("viewport"), vdom.Content("width=device-width, initial-scale=1")),
	)
	add := func(n *vdom.VNode) { head.Children = append(head.Children, n) }

	if page.Title != "" {
		add(vdom.Title(page.Title))
	}
	if page.Description != "" {
		add(vdom.Meta(vdom.Name("description"), vdom.Content(page.Description)))
	}
	for _, m := range page.Meta {
		add(vdom.Meta(
			optional("name", m.Name),
			optional("property", m.Property),
			optional("content", m.Content),
		))
	}
	if page.Canonical != "" {
		add(vdom.Link(vdom.Rel("canonical"), vdom.Href(page.Canonical)))
	}
	for _, href := range page.StyleSheets {
		add(vdom.Link(vdom.Rel("stylesheet"), vdom.Href(href)))
	}
	for _, css := range page.Styles {
		add(vdom.Style(vdom.Raw(css)))
	}
	return head
}

func scriptNode(s ScriptTag) *vdom.VNode {
	n := vdom.Script(optional("src", s.Src))
	if s.Defer {
		n.Props["defer"] = true
	}
	if s.Inline != "" {
		n.Children = append(n.Children, vdom.Raw(s.Inline))
	}
	return n
}

// optional returns an attribute only when value is set.
func optional(key, value string) any {
	if value == "" {
		return nil
	}
	return vdom.Attribute(key, value)
}
