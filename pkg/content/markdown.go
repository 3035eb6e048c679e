package content

import (
	"strconv"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/vango-dev/docsite/pkg/mdx"
	"github.com/vango-dev/docsite/pkg/vdom"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// setURL sets props[key] unless url uses a scheme that can run script, such
// as javascript:. The attribute is left out entirely in that case, as
// goldmark's own HTML renderer does.
func setURL(props vdom.Props, key string, url []byte) {
	if !html.IsDangerousURL(url) {
		props[key] = string(url)
	}
}

// heading is collected while converting so metadata can be derived without a
// second pass.
type heading struct {
	level int
	id    string
	text  string
}

type converter struct {
	src       []byte
	slugger   *Slugger
	headings  []heading
	firstPara string
}

// convert parses markdown source into a content tree.
func convert(src []byte) (mdx.Node, *converter) {
	c := &converter{src: src, slugger: NewSlugger()}
	doc := markdown.Parser().Parse(text.NewReader(src))
	return mdx.Group(c.children(doc)...), c
}

func (c *converter) children(n ast.Node) []mdx.Node {
	var out []mdx.Node
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		out = append(out, c.node(child)...)
	}
	return out
}

func (c *converter) node(n ast.Node) []mdx.Node {
	switch v := n.(type) {
	case *ast.Heading:
		kids := c.children(v)
		value := mdx.TextOf(mdx.Group(kids...))
		id := c.slugger.Slug(value)
		c.headings = append(c.headings, heading{level: v.Level, id: id, text: value})
		return one(mdx.El("h"+strconv.Itoa(v.Level), vdom.Props{"id": id}, kids...))

	case *ast.Paragraph:
		kids := c.children(v)
		if c.firstPara == "" {
			c.firstPara = mdx.TextOf(mdx.Group(kids...))
		}
		return one(mdx.El("p", nil, kids...))

	case *ast.TextBlock:
		return c.children(v)

	case *ast.Text:
		value := v.Segment.Value(c.src)
		if !v.IsRaw() {
			value = unescape(value)
		}
		out := []mdx.Node{mdx.T(string(value))}
		switch {
		case v.HardLineBreak():
			out = append(out, mdx.El("br", nil))
		case v.SoftLineBreak():
			out = append(out, mdx.T("\n"))
		}
		return out

	case *ast.String:
		value := v.Value
		if !v.IsRaw() {
			value = unescape(value)
		}
		return one(mdx.T(string(value)))

	case *ast.CodeSpan:
		return one(mdx.El("inlineCode", nil, mdx.T(c.rawText(v))))

	case *ast.Emphasis:
		tag := "em"
		if v.Level == 2 {
			tag = "strong"
		}
		return one(mdx.El(tag, nil, c.children(v)...))

	case *ast.Link:
		props := vdom.Props{}
		setURL(props, "href", v.Destination)
		if len(v.Title) > 0 {
			props["title"] = string(v.Title)
		}
		return one(mdx.El("a", props, c.children(v)...))

	case *ast.AutoLink:
		props := vdom.Props{}
		setURL(props, "href", v.URL(c.src))
		return one(mdx.El("a", props, mdx.T(string(v.Label(c.src)))))

	case *ast.Image:
		props := vdom.Props{"alt": mdx.TextOf(mdx.Group(c.children(v)...))}
		setURL(props, "src", v.Destination)
		if len(v.Title) > 0 {
			props["title"] = string(v.Title)
		}
		return one(mdx.El("img", props))

	case *ast.FencedCodeBlock:
		var props vdom.Props
		if lang := v.Language(c.src); len(lang) > 0 {
			props = vdom.Props{"className": "language-" + string(lang)}
		}
		return one(mdx.El("pre", nil, mdx.El("code", props, mdx.T(c.lines(v)))))

	case *ast.CodeBlock:
		return one(mdx.El("pre", nil, mdx.El("code", nil, mdx.T(c.lines(v)))))

	case *ast.Blockquote:
		return one(mdx.El("blockquote", nil, c.children(v)...))

	case *ast.List:
		if !v.IsOrdered() {
			return one(mdx.El("ul", nil, c.children(v)...))
		}
		var props vdom.Props
		if v.Start != 1 {
			props = vdom.Props{"start": v.Start}
		}
		return one(mdx.El("ol", props, c.children(v)...))

	case *ast.ListItem:
		return one(mdx.El("li", nil, c.children(v)...))

	case *ast.ThematicBreak:
		return one(mdx.El("hr", nil))

	case *east.Table:
		return c.table(v)

	case *east.Strikethrough:
		return one(mdx.El("del", nil, c.children(v)...))

	case *east.TaskCheckBox:
		return one(mdx.El("input", vdom.Props{"type": "checkbox", "disabled": true, "checked": v.IsChecked}))

	case *ast.HTMLBlock, *ast.RawHTML:
		// Embedded HTML and JSX are not rendered.
		return nil
	}

	return c.children(n)
}

func (c *converter) table(t *east.Table) []mdx.Node {
	var head, body []mdx.Node
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		switch r := row.(type) {
		case *east.TableHeader:
			head = append(head, mdx.El("tr", nil, c.cells(r, "th")...))
		case *east.TableRow:
			body = append(body, mdx.El("tr", nil, c.cells(r, "td")...))
		}
	}
	kids := []mdx.Node{mdx.El("thead", nil, head...)}
	if len(body) > 0 {
		kids = append(kids, mdx.El("tbody", nil, body...))
	}
	return one(mdx.El("table", nil, kids...))
}

func (c *converter) cells(row ast.Node, tag string) []mdx.Node {
	var out []mdx.Node
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		var props vdom.Props
		if tc, ok := cell.(*east.TableCell); ok && tc.Alignment != east.AlignNone {
			props = vdom.Props{"style": "text-align:" + tc.Alignment.String()}
		}
		out = append(out, mdx.El(tag, props, c.children(cell)...))
	}
	return out
}

// lines returns the verbatim content of a code block.
func (c *converter) lines(n ast.Node) string {
	var buf []byte
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf = append(buf, seg.Value(c.src)...)
	}
	return string(buf)
}

// rawText returns the unprocessed text of an inline node's children.
func (c *converter) rawText(n ast.Node) string {
	var buf []byte
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch v := child.(type) {
		case *ast.Text:
			buf = append(buf, v.Segment.Value(c.src)...)
		case *ast.String:
			buf = append(buf, v.Value...)
		}
	}
	return string(buf)
}

func unescape(b []byte) []byte {
	b = util.UnescapePunctuations(b)
	b = util.ResolveNumericReferences(b)
	return util.ResolveEntityNames(b)
}

func one(n mdx.Node) []mdx.Node {
	return []mdx.Node{n}
}
