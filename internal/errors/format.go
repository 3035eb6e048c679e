package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	codeStyle  = lipgloss.NewStyle().Bold(true)
	placeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	faintStyle = lipgloss.NewStyle().Faint(true)
	markStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	linkStyle  = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("4"))
)

// plain turns styling off regardless of the terminal.
var plain bool

// DisableColors makes Format emit unstyled text.
func DisableColors() { plain = true }

// EnableColors restores styling. lipgloss still drops it when the output is
// not a terminal.
func EnableColors() { plain = false }

func paint(s lipgloss.Style, text string) string {
	if plain {
		return text
	}
	return s.Render(text)
}

const wrapWidth = 70

// Format renders the error for a terminal: a header, the location with a
// source excerpt, then detail, cause, hint and documentation link.
func (e *DocsiteError) Format() string {
	var b strings.Builder

	head := "ERROR: "
	if e.Code != "" {
		head = "ERROR " + e.Code + ": "
	}
	fmt.Fprintf(&b, "\n%s%s\n\n", paint(headStyle, head), paint(codeStyle, e.Message))

	if e.Location != nil {
		fmt.Fprintf(&b, "  %s\n\n", paint(placeStyle, e.Location.String()))
		if len(e.Context) > 0 {
			e.writeExcerpt(&b)
			b.WriteString("\n")
		}
	}

	if e.Detail != "" {
		for _, line := range wrapText(e.Detail, wrapWidth) {
			fmt.Fprintf(&b, "  %s\n", line)
		}
		b.WriteString("\n")
	}
	if e.Wrapped != nil {
		fmt.Fprintf(&b, "  %s%s\n\n", paint(faintStyle, "Cause: "), e.Wrapped.Error())
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "  %s%s\n\n", paint(placeStyle, "Hint: "), e.Suggestion)
	}
	if e.DocURL != "" {
		fmt.Fprintf(&b, "  %s%s\n", paint(faintStyle, "Learn more: "), paint(linkStyle, e.DocURL))
	}
	return b.String()
}

func (e *DocsiteError) writeExcerpt(b *strings.Builder) {
	for i, line := range e.Context {
		n := e.ContextStart + i
		marker := "  "
		if n == e.Location.Line {
			marker = paint(markStyle, "> ")
		}
		fmt.Fprintf(b, "  %s%4d %s %s\n", marker, n, paint(faintStyle, "|"), line)
	}
}

// FormatCompact is the one-line form used in logs and the dev overlay.
func (e *DocsiteError) FormatCompact() string {
	var parts []string
	if e.Location != nil {
		parts = append(parts, e.Location.String())
	}
	if e.Code != "" {
		parts = append(parts, e.Code)
	}
	return strings.Join(append(parts, e.Message), ": ")
}

type jsonLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

type jsonError struct {
	Code       string        `json:"code,omitempty"`
	Category   Category      `json:"category"`
	Message    string        `json:"message"`
	Detail     string        `json:"detail,omitempty"`
	Location   *jsonLocation `json:"location,omitempty"`
	Suggestion string        `json:"suggestion,omitempty"`
	DocURL     string        `json:"docUrl,omitempty"`
	Cause      string        `json:"cause,omitempty"`
}

// FormatJSON renders the error as a single JSON object.
func (e *DocsiteError) FormatJSON() string {
	out := jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Suggestion: e.Suggestion,
		DocURL:     e.DocURL,
	}
	if l := e.Location; l != nil {
		out.Location = &jsonLocation{File: l.File, Line: l.Line, Column: l.Column}
	}
	if e.Wrapped != nil {
		out.Cause = e.Wrapped.Error()
	}
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Sprintf(`{"message":%q}`, e.Message)
	}
	return string(data)
}

// wrapText breaks text into lines of at most width bytes at word
// boundaries. Longer words get a line of their own.
func wrapText(text string, width int) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// Fprint writes err to w, using Format when err wraps a DocsiteError.
func Fprint(w io.Writer, err error) {
	var de *DocsiteError
	if stderrors.As(err, &de) {
		fmt.Fprint(w, de.Format())
		return
	}
	fmt.Fprintf(w, "\n%s%s\n\n", paint(headStyle, "ERROR: "), err)
}
