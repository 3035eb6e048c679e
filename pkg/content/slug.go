package content

import (
	"strconv"
	"strings"
	"unicode"
)

// Slugger generates heading anchors. Repeated headings in one document get
// numbered suffixes: "pods", "pods-1", "pods-2".
type Slugger struct {
	seen map[string]int
}

// NewSlugger returns an empty Slugger.
func NewSlugger() *Slugger {
	return &Slugger{seen: make(map[string]int)}
}

// Slug returns a unique anchor for heading text.
func (s *Slugger) Slug(text string) string {
	base := Slugify(text)
	slug := base
	for {
		if _, taken := s.seen[slug]; !taken {
			break
		}
		s.seen[base]++
		slug = base + "-" + strconv.Itoa(s.seen[base])
	}
	s.seen[slug] = 0
	return slug
}

// Slugify lowercases text, turns spaces into hyphens and drops punctuation.
// Runs of spaces are not collapsed.
func Slugify(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r == ' ':
			b.WriteByte('-')
		case r == '-' || r == '_':
			b.WriteRune(r)
		case unicode.IsLetter(r), unicode.IsNumber(r), unicode.IsMark(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}
