// Package site renders loaded docs pages into complete HTML documents.
//
// A Renderer owns the root component scope for a site: the built-in
// components, any components supplied with WithComponents, and the
// class and wrapper overrides from docsite.json. Each page body is
// rendered under that scope and placed in the shared layout with the
// table of contents, edit link and pagination.
//
//	r := site.New(cfg, site.WithMetrics(m))
//	s, err := r.Load(ctx)
//	p, _ := s.Page("intro")
//	err = r.Render(ctx, w, p)
package site
