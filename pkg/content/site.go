package content

import (
	"cmp"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/vango-dev/docsite/internal/errors"
)

// Site is an ordered, indexed set of pages.
type Site struct {
	pages  []*Page
	byID   map[string]*Page
	bySlug map[string]*Page
}

// NewSite orders pages by sidebar position, then ID, indexes them and links
// each to its neighbours. Pages without a sidebar position sort last.
// Duplicate IDs or slugs are rejected with E202.
func NewSite(pages []*Page) (*Site, error) {
	ordered := slices.Clone(pages)
	slices.SortStableFunc(ordered, func(a, b *Page) int {
		if a.hasPosition != b.hasPosition {
			if a.hasPosition {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(a.SidebarPosition, b.SidebarPosition); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	s := &Site{
		pages:  ordered,
		byID:   make(map[string]*Page, len(ordered)),
		bySlug: make(map[string]*Page, len(ordered)),
	}
	for i, p := range ordered {
		if prev, dup := s.byID[p.ID]; dup {
			return nil, errors.New("E202").WithFile(p.Source).
				WithDetail("id " + p.ID + " is also used by " + prev.Source)
		}
		if prev, dup := s.bySlug[p.Slug]; dup {
			return nil, errors.New("E202").WithFile(p.Source).
				WithDetail("slug " + p.Slug + " is also used by " + prev.Source)
		}
		s.byID[p.ID] = p
		s.bySlug[p.Slug] = p

		p.Previous, p.Next = nil, nil
		if i > 0 {
			p.Previous = ordered[i-1].Link()
		}
		if i < len(ordered)-1 {
			p.Next = ordered[i+1].Link()
		}
	}
	return s, nil
}

// Pages returns the pages in order.
func (s *Site) Pages() []*Page {
	return slices.Clone(s.pages)
}

// Len returns the number of pages.
func (s *Site) Len() int {
	return len(s.pages)
}

// Page returns the page with the given ID or an E203 error.
func (s *Site) Page(id string) (*Page, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, errors.New("E203").WithDetail("no page with id " + id)
}

// BySlug returns the page served at slug.
func (s *Site) BySlug(slug string) (*Page, bool) {
	p, ok := s.bySlug[path.Clean("/"+slug)]
	return p, ok
}

// LoadDir parses every markdown page in fsys. Files and directories whose
// name starts with "_" or "." are skipped, as are drafts unless
// opts.IncludeDrafts is set.
func LoadDir(fsys fs.FS, opts Options) (*Site, error) {
	var pages []*Page
	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if name != "." && hidden(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !isMarkdown(name) {
			return nil
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return errors.New("E201").WithFile(name).Wrap(err)
		}
		p, err := Parse(name, data, opts)
		if err != nil {
			return err
		}
		if p.Draft && !opts.IncludeDrafts {
			return nil
		}
		pages = append(pages, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewSite(pages)
}

func hidden(name string) bool {
	return strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")
}

func isMarkdown(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".mdx":
		return true
	}
	return false
}
