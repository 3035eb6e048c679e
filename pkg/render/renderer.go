package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/vango-dev/docsite/internal/errors"
	"github.com/vango-dev/docsite/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty indents block elements one per line. Useful for debugging
	// output; production builds leave it off.
	Pretty bool

	// Indent is one level of pretty indentation. Defaults to two spaces.
	Indent string
}

// Renderer turns VNode trees into HTML. It holds no per-render state and is
// safe for concurrent use.
type Renderer struct {
	config RendererConfig
}

func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	ew := &errWriter{w: w}
	r.renderNode(ew, node, 0)
	return ew.err
}

// errWriter remembers the first write error so the tree walk does not have
// to check after every write.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) WriteString(s string) {
	if e.err != nil {
		return
	}
	if _, err := io.WriteString(e.w, s); err != nil {
		e.err = errors.New("E003").Wrap(err)
	}
}

func (e *errWriter) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

func (r *Renderer) renderNode(w *errWriter, node *vdom.VNode, depth int) {
	if node == nil || w.err != nil {
		return
	}

	switch node.Kind {
	case vdom.KindElement:
		r.renderElement(w, node, depth)
	case vdom.KindText:
		w.WriteString(escapeHTML(node.Text))
	case vdom.KindFragment:
		for _, child := range node.Children {
			r.renderNode(w, child, depth)
		}
	case vdom.KindRaw:
		w.WriteString(node.Text)
	default:
		w.fail(errors.New("E002").WithDetail(fmt.Sprintf("unknown node kind: %d", node.Kind)))
	}
}

// renderElement writes node and its subtree. In pretty mode block elements
// put each child on its own line and line elements end with a newline.
func (r *Renderer) renderElement(w *errWriter, node *vdom.VNode, depth int) {
	tag := node.Tag
	block := r.config.Pretty && isBlockElement(tag)
	line := r.config.Pretty && (block || isLineElement(tag))

	if line && depth > 0 {
		r.writeIndent(w, depth)
	}

	w.WriteString("<")
	w.WriteString(tag)
	r.renderAttributes(w, node)
	w.WriteString(">")

	if isVoidElement(tag) {
		if line {
			w.WriteString("\n")
		}
		return
	}

	if block && len(node.Children) > 0 {
		w.WriteString("\n")
	}
	for _, child := range node.Children {
		r.renderNode(w, child, depth+1)
	}
	if block && len(node.Children) > 0 {
		r.writeIndent(w, depth)
	}

	w.WriteString("</")
	w.WriteString(tag)
	w.WriteString(">")
	if line {
		w.WriteString("\n")
	}
}

// renderAttributes writes attributes sorted by name. Keys starting with
// "_" carry data for components and are skipped. React-style className and
// htmlFor are accepted as aliases.
func (r *Renderer) renderAttributes(w *errWriter, node *vdom.VNode) {
	keys := make([]string, 0, len(node.Props))
	for key := range node.Props {
		if !strings.HasPrefix(key, "_") {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := node.Props[key]
		name := key
		switch key {
		case "className":
			name = "class"
		case "htmlFor":
			name = "for"
		}

		if on, ok := value.(bool); ok && isBooleanAttr(name) {
			if on {
				w.WriteString(" " + name)
			}
			continue
		}
		if s := attrString(value); s != "" {
			w.WriteString(" " + name + `="` + escapeAttr(s) + `"`)
		}
	}
}

func attrString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func (r *Renderer) writeIndent(w *errWriter, depth int) {
	w.WriteString(strings.Repeat(r.config.Indent, depth))
}
