package render

import "net/http"

// StreamingRenderer writes pages to an http.ResponseWriter and flushes as
// soon as the head is complete, so browsers can fetch stylesheets while the
// body is still rendering.
type StreamingRenderer struct {
	*Renderer
	w  http.ResponseWriter
	rc *http.ResponseController
}

// NewStreamingRenderer wraps w. Writers that cannot flush, including ones
// wrapped by middleware without an Unwrap method, simply buffer.
func NewStreamingRenderer(w http.ResponseWriter, renderer *Renderer) *StreamingRenderer {
	return &StreamingRenderer{Renderer: renderer, w: w, rc: http.NewResponseController(w)}
}

// RenderPage writes page as a complete document.
func (s *StreamingRenderer) RenderPage(page PageData) error {
	if h := s.w.Header(); h.Get("Content-Type") == "" {
		h.Set("Content-Type", "text/html; charset=utf-8")
	}
	return s.renderPage(s.w, page, func() { _ = s.rc.Flush() })
}
