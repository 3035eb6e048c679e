package site

import (
	"strconv"

	"github.com/vango-dev/docsite/pkg/content"
	"github.com/vango-dev/docsite/pkg/vdom"
)

// layout places the rendered body next to the page's table of contents. p is
// nil for pages that are not docs, such as the 404 page.
func (r *Renderer) layout(p *content.Page, body *vdom.VNode) *vdom.VNode {
	return vdom.Div(vdom.Class("docsite"),
		vdom.Header(vdom.Class("navbar"),
			vdom.A(vdom.Class("navbar-brand"), vdom.Href(r.cfg.BaseURL), r.cfg.Title),
		),
		vdom.Div(vdom.Class("docs-wrapper"),
			vdom.Main(vdom.Class("docs-main"),
				vdom.Article(vdom.Class("doc"), body),
				vdom.When(p != nil, func() *vdom.VNode { return docFooter(p) }),
			),
			vdom.When(p != nil && len(p.TOC) > 0, func() *vdom.VNode { return toc(p.TOC) }),
		),
	)
}

func toc(entries []content.TOCEntry) *vdom.VNode {
	return vdom.Nav(vdom.Class("toc"), vdom.AriaLabel("On this page"),
		vdom.Ul(
			vdom.Range(entries, func(e content.TOCEntry, _ int) *vdom.VNode {
				return vdom.Li(vdom.Data("level", strconv.Itoa(e.Level)),
					vdom.A(vdom.Href("#"+e.ID), e.Value),
				)
			}),
		),
	)
}

func docFooter(p *content.Page) *vdom.VNode {
	return vdom.Footer(vdom.Class("doc-footer"),
		vdom.When(p.EditURL != "", func() *vdom.VNode {
			return vdom.A(vdom.Class("edit-link"), vdom.Href(p.EditURL), "Edit this page")
		}),
		vdom.When(p.Previous != nil || p.Next != nil, func() *vdom.VNode {
			return vdom.Nav(vdom.Class("pagination"), vdom.AriaLabel("Docs pages"),
				vdom.When(p.Previous != nil, func() *vdom.VNode {
					return vdom.A(vdom.Class("pagination-prev"), vdom.Href(p.Previous.Permalink), p.Previous.Title)
				}),
				vdom.When(p.Next != nil, func() *vdom.VNode {
					return vdom.A(vdom.Class("pagination-next"), vdom.Href(p.Next.Permalink), p.Next.Title)
				}),
			)
		}),
	)
}

