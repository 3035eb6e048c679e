package content

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// FrontMatter is the YAML header of a page.
type FrontMatter map[string]any

// String returns the string value of key, or "".
func (fm FrontMatter) String(key string) string {
	switch v := fm[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Int returns the integer value of key.
func (fm FrontMatter) Int(key string) (int, bool) {
	switch v := fm[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	}
	return 0, false
}

// Bool returns the boolean value of key.
func (fm FrontMatter) Bool(key string) bool {
	b, _ := fm[key].(bool)
	return b
}

// StringMap returns key as a map of strings. Non-string values are
// formatted; a missing or non-mapping key yields nil.
func (fm FrontMatter) StringMap(key string) map[string]string {
	m, ok := fm[key].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(m))
	for k := range m {
		out[k] = FrontMatter(m).String(k)
	}
	return out
}

var fence = []byte("---")

// splitFrontMatter separates a leading "---" delimited YAML block from the
// body.
func splitFrontMatter(data []byte) (fm FrontMatter, body []byte, err error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	first, rest, ok := cutLine(data)
	if !ok || !bytes.Equal(bytes.TrimRight(first, " \t"), fence) {
		return FrontMatter{}, data, nil
	}

	var header []byte
	for {
		line, next, more := cutLine(rest)
		if bytes.Equal(bytes.TrimRight(line, " \t"), fence) {
			body = next
			break
		}
		if !more {
			return nil, nil, fmt.Errorf("front matter is not terminated")
		}
		header = append(header, line...)
		header = append(header, '\n')
		rest = next
	}

	fm = FrontMatter{}
	if err := yaml.Unmarshal(header, &fm); err != nil {
		return nil, nil, newFrontMatterError(err)
	}
	if fm == nil {
		fm = FrontMatter{}
	}
	return fm, body, nil
}

// cutLine returns the first line of data without its terminator. more
// reports whether a terminator was found.
func cutLine(data []byte) (line, rest []byte, more bool) {
	line, rest, more = bytes.Cut(data, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r")), rest, more
}

// frontMatterError is a YAML error with the page line it refers to, or 0.
type frontMatterError struct {
	line int
	err  error
}

var yamlLine = regexp.MustCompile(`line (\d+)`)

func newFrontMatterError(err error) *frontMatterError {
	fe := &frontMatterError{err: err}
	if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
		n, _ := strconv.Atoi(m[1])
		// YAML counts from the line after the opening fence.
		fe.line = n + 1
	}
	return fe
}

func (e *frontMatterError) Error() string { return "front matter: " + e.err.Error() }
func (e *frontMatterError) Unwrap() error { return e.err }
