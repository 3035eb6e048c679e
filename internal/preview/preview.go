// Package preview renders pages for the terminal.
package preview

import (
	"io"

	"github.com/charmbracelet/glamour"

	"github.com/vango-dev/docsite/internal/errors"
	"github.com/vango-dev/docsite/pkg/content"
)

// DefaultWidth is the word wrap width when Options.Width is zero.
const DefaultWidth = 100

// Options configures terminal rendering.
type Options struct {
	// Style is a glamour standard style ("dark", "light", "notty", ...).
	// Empty picks one from the terminal background.
	Style string

	// Width wraps text at this many columns.
	Width int
}

// Render writes p's markdown to w, styled for a terminal.
func Render(w io.Writer, p *content.Page, opts Options) error {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	style := glamour.WithAutoStyle()
	if opts.Style != "" {
		style = glamour.WithStandardStyle(opts.Style)
	}

	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(opts.Width))
	if err != nil {
		return errors.New("E003").Wrap(err)
	}
	out, err := r.RenderBytes(p.Markdown)
	if err != nil {
		return errors.New("E003").WithFile(p.Source).Wrap(err)
	}
	if _, err := w.Write(out); err != nil {
		return errors.New("E003").Wrap(err)
	}
	return nil
}
