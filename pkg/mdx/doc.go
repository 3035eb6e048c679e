// Package mdx renders documentation content trees through overridable
// components.
//
// A content tree is built from Element, Text, Fragment and Provider nodes.
// Elements are rendered by the Renderer mapped to their tag in the scope they
// appear in, falling back to DefaultRenderer. Provider nodes change that
// mapping for their subtree only:
//
//	ctx := mdx.NewContext(nil)
//	tree := mdx.Group(
//		mdx.El("h1", nil, mdx.T("Install")),
//		mdx.Provide(mdx.Map(mdx.Components{"h1": mdx.Tag("h2")}),
//			mdx.El("h1", nil, mdx.T("Demoted")),
//		),
//	)
//	node := mdx.Render(ctx.Root(), tree)
//
// Overrides may be literal (Map) or computed from the components currently
// in effect (With, AddClass). Rendering never mutates a scope, so a single
// Context can be shared by concurrent renders.
package mdx
