// Package render turns vdom trees into HTML.
//
// Rendering covers:
//
//   - Text and attribute escaping
//   - Void elements (br, hr, img, meta, ...)
//   - Boolean attributes (defer, hidden, ...)
//   - Deterministic, sorted attribute output
//   - Optional indentation that leaves pre blocks untouched
//   - Full documents with DOCTYPE, head and body
//
// # Basic Usage
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(node)
//
// # Full Page Rendering
//
//	err := r.RenderPage(w, render.PageData{
//	    Title:       page.Title,
//	    Description: page.Description,
//	    Body:        body,
//	})
//
// StreamingRenderer does the same for an http.ResponseWriter and flushes
// the head before writing the body.
//
// # Security
//
// Text content is always escaped. Raw nodes and inline styles/scripts are
// written as-is and must only carry trusted content.
package render
