package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"
)

// Category groups error codes by the subsystem that raises them.
type Category string

const (
	CategoryRender  Category = "render"
	CategoryContent Category = "content"
	CategoryConfig  Category = "config"
	CategoryBuild   Category = "build"
	CategoryPublish Category = "publish"
	CategoryCLI     Category = "cli"
)

// Location is a position in a docs page or config file. Line and Column
// are 1-based; zero means unknown.
type Location struct {
	File   string
	Line   int
	Column int
}

func (l *Location) String() string {
	switch {
	case l == nil:
		return ""
	case l.Line == 0:
		return l.File
	case l.Column == 0:
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
}

// DocsiteError is a coded error. Registered codes fill Category, Message,
// Detail and DocURL; callers attach a Location, a Suggestion and the
// underlying cause.
type DocsiteError struct {
	Code     string
	Category Category
	Message  string
	Detail   string
	DocURL   string

	Location *Location

	// Context holds source lines around Location.Line, the first of which
	// is line ContextStart.
	Context      []string
	ContextStart int

	Suggestion string
	Wrapped    error
}

func (e *DocsiteError) Error() string {
	var b strings.Builder
	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Wrapped != nil {
		b.WriteString(": ")
		b.WriteString(e.Wrapped.Error())
	}
	return b.String()
}

func (e *DocsiteError) Unwrap() error { return e.Wrapped }

// Is matches another DocsiteError with the same non-empty code, so
// errors.Is(err, New("E203")) works.
func (e *DocsiteError) Is(target error) bool {
	t, ok := target.(*DocsiteError)
	return ok && t.Code != "" && t.Code == e.Code
}

// contextRadius is the number of lines shown on each side of an error line.
const contextRadius = 2

// WithLocation points the error at file:line:column and reads the
// surrounding lines from disk.
func (e *DocsiteError) WithLocation(file string, line, column int) *DocsiteError {
	e.Location = &Location{File: file, Line: line, Column: column}
	if line > 0 {
		if data, err := os.ReadFile(file); err == nil {
			e.setContext(data, line)
		}
	}
	return e
}

// WithSource is WithLocation for content already in memory.
func (e *DocsiteError) WithSource(file string, line int, src []byte) *DocsiteError {
	e.Location = &Location{File: file, Line: line}
	if line > 0 {
		e.setContext(src, line)
	}
	return e
}

func (e *DocsiteError) setContext(src []byte, line int) {
	lines := strings.Split(strings.ReplaceAll(string(src), "\r\n", "\n"), "\n")
	first := max(line-contextRadius, 1)
	last := min(line+contextRadius, len(lines))
	if first > last {
		return
	}
	e.Context = lines[first-1 : last]
	e.ContextStart = first
}

// WithFile records the file an error belongs to without a line position.
func (e *DocsiteError) WithFile(file string) *DocsiteError {
	e.Location = &Location{File: file}
	return e
}

func (e *DocsiteError) WithSuggestion(s string) *DocsiteError {
	e.Suggestion = s
	return e
}

func (e *DocsiteError) WithDetail(d string) *DocsiteError {
	e.Detail = d
	return e
}

// Wrap records err as the cause.
func (e *DocsiteError) Wrap(err error) *DocsiteError {
	e.Wrapped = err
	return e
}

// New returns an error for a registered code. Unknown codes produce an
// "Unknown error" with the code preserved.
func New(code string) *DocsiteError {
	t, ok := registry[code]
	if !ok {
		return &DocsiteError{Code: code, Message: "Unknown error"}
	}
	return &DocsiteError{
		Code:     code,
		Category: t.Category,
		Message:  t.Message,
		Detail:   t.Detail,
		DocURL:   t.DocURL,
	}
}

// Newf returns an uncoded error.
func Newf(category Category, format string, args ...any) *DocsiteError {
	return &DocsiteError{Category: category, Message: fmt.Sprintf(format, args...)}
}

// FromError returns err if it already is a DocsiteError and otherwise
// wraps it under code.
func FromError(err error, code string) *DocsiteError {
	if err == nil {
		return nil
	}
	if de, ok := err.(*DocsiteError); ok {
		return de
	}
	return New(code).Wrap(err)
}

// Code returns the code of the first DocsiteError in err's chain, or "".
func Code(err error) string {
	var de *DocsiteError
	if stderrors.As(err, &de) {
		return de.Code
	}
	return ""
}
