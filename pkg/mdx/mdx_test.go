package mdx

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/docsite/pkg/render"
	"github.com/vango-dev/docsite/pkg/scope"
	"github.com/vango-dev/docsite/pkg/vdom"
)

func html(t *testing.T, node *vdom.VNode) string {
	t.Helper()
	out, err := render.NewRenderer(render.RendererConfig{}).RenderToString(node)
	require.NoError(t, err)
	return out
}

func renderRoot(t *testing.T, n Node) string {
	t.Helper()
	return html(t, Render(NewContext(nil).Root(), n))
}

func TestRender_Defaults(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"paragraph", El("p", nil, T("Glossary")), "<p>Glossary</p>"},
		{"unknown tag falls back", El("kbd", nil, T("Ctrl")), "<kbd>Ctrl</kbd>"},
		{"inline code", El("inlineCode", nil, T("kubectl")), "<code>kubectl</code>"},
		{"fenced code", El("pre", nil, El("code", vdom.Props{"language": "bash"}, T("ls"))),
			`<pre><code class="language-bash" data-lang="bash">ls</code></pre>`},
		{"fenced code by class", El("code", vdom.Props{"className": "language-yaml"}, T("a: 1")),
			`<code class="language-yaml" data-lang="yaml">a: 1</code>`},
		{"internal link", El("a", vdom.Props{"href": "/docs/etcd"}, T("etcd")), `<a href="/docs/etcd">etcd</a>`},
		{"external link", El("a", vdom.Props{"href": "https://etcd.io"}, T("etcd")),
			`<a href="https://etcd.io" rel="noopener noreferrer" target="_blank">etcd</a>`},
		{"table", El("table", nil, El("tr", nil, El("td", nil, T("1")))),
			`<div class="table-wrapper"><table><tr><td>1</td></tr></table></div>`},
		{"text escaped", T("a < b"), "a &lt; b"},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderRoot(t, tt.node))
		})
	}
}

func TestRender_HeadingAnchor(t *testing.T) {
	out := renderRoot(t, El("h2", vdom.Props{"id": "etcd"}, T("etcd")))

	assert.Contains(t, out, `<h2 id="etcd">etcd<a aria-label="Direct link to etcd" class="hash-link" href="#etcd"`)

	plain := renderRoot(t, El("h2", nil, T("etcd")))
	assert.Equal(t, "<h2>etcd</h2>", plain)
}

func TestRender_ProviderScopesSubtree(t *testing.T) {
	tree := Group(
		El("p", nil, T("a")),
		Provide(Map(Components{"p": Tag("section")}),
			El("p", nil, T("b")),
		),
		El("p", nil, T("c")),
	)

	assert.Equal(t, "<p>a</p><section>b</section><p>c</p>", renderRoot(t, tree))
}

func TestRender_SiblingProvidersIsolated(t *testing.T) {
	tree := Group(
		Provide(Map(Components{"em": Tag("i")}), El("em", nil, T("left")), El("strong", nil, T("l"))),
		Provide(Map(Components{"strong": Tag("b")}), El("em", nil, T("right")), El("strong", nil, T("r"))),
	)

	assert.Equal(t,
		"<i>left</i><strong>l</strong><em>right</em><b>r</b>",
		renderRoot(t, tree))
}

func TestRender_NestedTransformSeesEnclosing(t *testing.T) {
	tree := Provide(Map(Components{"strong": Tag("b")}),
		Provide(With(func(cur Components) Components {
			return Components{"em": cur["strong"]}
		}),
			El("em", nil, T("x")),
		),
	)

	assert.Equal(t, "<b>x</b>", renderRoot(t, tree))
}

func TestRender_ProviderResolvedWherePlaced(t *testing.T) {
	shared := Provide(With(func(cur Components) Components {
		return Components{"p": cur["strong"]}
	}), El("p", nil, T("x")))

	tree := Group(
		shared,
		Provide(Map(Components{"strong": Tag("b")}), shared),
	)

	assert.Equal(t, "<strong>x</strong><b>x</b>", renderRoot(t, tree))
	assert.Equal(t, 2, shared.memo.Len())
}

func TestRender_ProviderMemoized(t *testing.T) {
	calls := 0
	p := Provide(With(func(cur Components) Components {
		calls++
		return nil
	}), El("p", nil, T("x")))

	root := NewContext(nil).Root()
	Render(root, p)
	Render(root, p)

	assert.Equal(t, 1, calls)
}

func TestRender_IsolatedProvider(t *testing.T) {
	tree := Provide(Map(Components{"p": Tag("section"), "em": Tag("i")}),
		ProvideIsolated(Map(Components{"em": Tag("u")}),
			El("p", nil, T("a")),
			El("em", nil, T("b")),
		),
	)

	assert.Equal(t, "<p>a</p><u>b</u>", renderRoot(t, tree))
}

func TestRender_DoesNotMutateContent(t *testing.T) {
	code := El("code", vdom.Props{"language": "yaml"}, T("a: 1"))
	renderRoot(t, code)

	assert.Equal(t, vdom.Props{"language": "yaml"}, code.Props)
}

func TestRender_RendererSeesScope(t *testing.T) {
	marker := RendererFunc(func(p Props) *vdom.VNode { return vdom.Span("marked") })
	probe := RendererFunc(func(p Props) *vdom.VNode {
		if r, ok := p.Scope.Lookup("marker"); ok {
			return r.Render(p)
		}
		return vdom.Span("plain")
	})

	tree := Provide(Map(Components{"probe": probe}),
		El("probe", nil),
		Provide(Map(Components{"marker": marker}), El("probe", nil)),
	)

	assert.Equal(t, "<span>plain</span><span>marked</span>", renderRoot(t, tree))
}

func TestAddClass(t *testing.T) {
	tree := Provide(AddClass(map[string]string{"pre": "shiki", "kbd": "key", "code": "mono"}),
		El("pre", vdom.Props{"className": "theme"},
			El("code", vdom.Props{"language": "sh"}, T("ls")),
		),
		El("kbd", nil, T("K")),
	)

	assert.Equal(t,
		`<pre class="theme shiki"><code class="language-sh mono" data-lang="sh">ls</code></pre><kbd class="key">K</kbd>`,
		renderRoot(t, tree))
}

func TestNewContext_SiteOverrides(t *testing.T) {
	ctx := NewContext(Components{"hr": Tag("div")})

	assert.Equal(t, "<div></div>", html(t, Render(ctx.Root(), El("hr", nil))))
	assert.Equal(t, "<hr>", html(t, Render(NewContext(nil).Root(), El("hr", nil))))
}

func TestRenderDocument(t *testing.T) {
	body := Group(El("p", nil, T("x")))
	root := NewContext(nil).Root()

	t.Run("no wrapper", func(t *testing.T) {
		assert.Equal(t, "<p>x</p>", html(t, RenderDocument(root, body, DocumentOptions{})))
	})

	t.Run("wrapper from options", func(t *testing.T) {
		node := RenderDocument(root, body, DocumentOptions{
			Components: Wrap(func(p Props) *vdom.VNode {
				return vdom.Article(vdom.Class(p.Attr("theme")), p.Children)
			}),
			Attrs: vdom.Props{"theme": "markdown"},
		})
		assert.Equal(t, `<article class="markdown"><p>x</p></article>`, html(t, node))
	})

	t.Run("options override enclosing wrapper", func(t *testing.T) {
		outer := root.Provide(Wrap(func(p Props) *vdom.VNode { return vdom.Main(p.Children) }))
		inner := RenderDocument(outer, body, DocumentOptions{
			Components: Wrap(func(p Props) *vdom.VNode { return vdom.Div(p.Children) }),
		})
		assert.Equal(t, "<div><p>x</p></div>", html(t, inner))
		assert.Equal(t, "<main><p>x</p></main>", html(t, RenderDocument(outer, body, DocumentOptions{})))
	})
}

func TestRenderDocument_OverlayReusesScope(t *testing.T) {
	root := NewContext(nil).Root()
	inner := Provide(AddClass(map[string]string{"p": "lead"}), El("p", nil, T("x")))
	overlay := NewOverlay(WrapperClass("markdown"))

	for i := 0; i < 100; i++ {
		node := RenderDocument(root, inner, DocumentOptions{Overlay: overlay})
		require.Equal(t, `<div class="markdown"><p class="lead">x</p></div>`, html(t, node))
	}
	assert.Equal(t, 1, overlay.memo.Len())
	assert.Equal(t, 1, inner.memo.Len())
	assert.Equal(t, uint64(99), inner.memo.Hits())
}

func TestRenderDocument_OneOffComponentsBounded(t *testing.T) {
	root := NewContext(nil).Root()
	inner := Provide(Map(Components{"em": Tag("i")}), El("em", nil, T("x")))

	for i := 0; i < 1000; i++ {
		RenderDocument(root, inner, DocumentOptions{Components: AddClass(map[string]string{"i": "x"})})
	}
	assert.LessOrEqual(t, inner.memo.Len(), scope.DefaultMemoLimit)
}

func TestWrapperClass(t *testing.T) {
	root := NewContext(nil).Root()
	body := El("p", nil, T("x"))

	plain := RenderDocument(root, body, DocumentOptions{Components: WrapperClass("wide")})
	assert.Equal(t, `<div class="wide"><p>x</p></div>`, html(t, plain))

	site := root.Provide(Wrap(func(p Props) *vdom.VNode { return vdom.Main(vdom.Class("docs"), p.Children) }))
	decorated := RenderDocument(site, body, DocumentOptions{Components: WrapperClass("wide")})
	assert.Equal(t, `<main class="docs wide"><p>x</p></main>`, html(t, decorated))
}

func TestRender_NilNodes(t *testing.T) {
	root := NewContext(nil).Root()
	var el *Element
	var txt *Text
	var frag *Fragment
	var prov *Provider

	for _, n := range []Node{el, txt, frag, prov} {
		assert.Nil(t, Render(root, n))
	}
	assert.Equal(t, "<p>x</p>", html(t, Render(root, El("p", nil, el, T("x"), txt))))
}

func TestAddClass_RendererWithoutProps(t *testing.T) {
	bare := RendererFunc(func(p Props) *vdom.VNode {
		return &vdom.VNode{Kind: vdom.KindElement, Tag: "hr"}
	})
	tree := Provide(Map(Components{"hr": bare}),
		Provide(AddClass(map[string]string{"hr": "rule"}), El("hr", nil)),
	)

	assert.Equal(t, `<hr class="rule">`, renderRoot(t, tree))
}

func TestRender_Concurrent(t *testing.T) {
	root := NewContext(nil).Root()
	tree := Group(
		El("h2", vdom.Props{"id": "a"}, T("A")),
		Provide(AddClass(map[string]string{"p": "lead"}), El("p", nil, T("x"))),
	)
	want := html(t, Render(root, tree))

	var wg sync.WaitGroup
	got := make([]string, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := render.NewRenderer(render.RendererConfig{}).RenderToString(Render(root, tree))
			if err == nil {
				got[i] = out
			}
		}(i)
	}
	wg.Wait()

	for _, g := range got {
		assert.Equal(t, want, g)
	}
}

func TestWalkAndTextOf(t *testing.T) {
	tree := Group(
		El("h1", nil, T("RKE2 "), El("em", nil, T("Config"))),
		Provide(nil, El("p", nil, T("body"))),
	)

	assert.Equal(t, "RKE2 Configbody", TextOf(tree))

	var tags []string
	Walk(tree, func(n Node) bool {
		if el, ok := n.(*Element); ok {
			tags = append(tags, el.Tag)
			return el.Tag != "h1"
		}
		return true
	})
	assert.Equal(t, []string{"h1", "p"}, tags)
}
