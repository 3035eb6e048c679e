package content

import (
	"path"
	"strings"

	"github.com/vango-dev/docsite/internal/errors"
	"github.com/vango-dev/docsite/pkg/mdx"
)

// TOCEntry is one table of contents item.
type TOCEntry struct {
	Value string `json:"value"`
	ID    string `json:"id"`
	Level int    `json:"level"`
}

// PageLink points at a neighbouring page.
type PageLink struct {
	Title     string `json:"title"`
	Permalink string `json:"permalink"`
}

// Page is a parsed documentation page.
type Page struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Slug            string      `json:"slug"`
	Permalink       string      `json:"permalink"`
	Source          string      `json:"source"`
	SourceDir       string      `json:"sourceDirName"`
	EditURL         string      `json:"editUrl,omitempty"`
	Draft           bool        `json:"draft"`
	SidebarPosition int         `json:"sidebarPosition,omitempty"`
	FrontMatter     FrontMatter `json:"frontMatter"`
	TOC             []TOCEntry  `json:"toc"`
	Previous        *PageLink   `json:"previous,omitempty"`
	Next            *PageLink   `json:"next,omitempty"`

	// Body is the page content, without front matter.
	Body mdx.Node `json:"-"`

	// Markdown is the raw page body, without front matter.
	Markdown []byte `json:"-"`

	// Overlay holds the page's own component overrides, set from the
	// wrapper_class front matter key. Nil when the page has none.
	Overlay *mdx.Overlay `json:"-"`

	hasPosition bool
}

// Options control how sources become pages.
type Options struct {
	// BaseURL is the path the site is served under, e.g. "/support-tools".
	BaseURL string

	// RouteBasePath is the docs route under BaseURL. Defaults to "docs".
	RouteBasePath string

	// EditURL, when set, is joined with the source path to form Page.EditURL.
	EditURL string

	// IncludeDrafts keeps pages marked draft when loading a directory.
	IncludeDrafts bool
}

const (
	defaultTOCMin = 2
	defaultTOCMax = 3
)

// Parse parses a markdown page. source is the slash-separated path of the
// file relative to the docs root, e.g. "commands/as-cheat-sheet.md".
func Parse(source string, data []byte, opts Options) (*Page, error) {
	fm, body, err := splitFrontMatter(data)
	if err != nil {
		de := errors.New("E201").Wrap(err)
		if fe, ok := err.(*frontMatterError); ok && fe.line > 0 {
			return nil, de.WithSource(source, fe.line, data)
		}
		return nil, de.WithFile(source)
	}

	tree, conv := convert(body)
	if classes := fm.StringMap("classes"); len(classes) > 0 {
		tree = mdx.Provide(mdx.AddClass(classes), tree)
	}

	p := &Page{
		Source:      source,
		SourceDir:   path.Dir(source),
		FrontMatter: fm,
		Body:        tree,
		Markdown:    body,
		Draft:       fm.Bool("draft"),
	}
	if class := fm.String("wrapper_class"); class != "" {
		p.Overlay = mdx.NewOverlay(mdx.WrapperClass(class))
	}
	p.ID = pageID(source, fm.String("id"))
	p.Slug = pageSlug(source, p.SourceDir, fm.String("slug"))
	p.Permalink = permalink(opts, p.Slug)
	if opts.EditURL != "" {
		p.EditURL = strings.TrimRight(opts.EditURL, "/") + "/" + source
	}
	if pos, ok := fm.Int("sidebar_position"); ok {
		p.SidebarPosition = pos
		p.hasPosition = true
	}

	p.Title = fm.String("title")
	if p.Title == "" {
		for _, h := range conv.headings {
			if h.level == 1 {
				p.Title = h.text
				break
			}
		}
	}
	if p.Title == "" {
		p.Title = path.Base(p.ID)
	}

	p.Description = fm.String("description")
	if p.Description == "" {
		p.Description = conv.firstPara
	}

	minLevel, maxLevel := defaultTOCMin, defaultTOCMax
	if v, ok := fm.Int("toc_min_heading_level"); ok {
		minLevel = v
	}
	if v, ok := fm.Int("toc_max_heading_level"); ok {
		maxLevel = v
	}
	p.TOC = []TOCEntry{}
	if !fm.Bool("hide_table_of_contents") {
		for _, h := range conv.headings {
			if h.level >= minLevel && h.level <= maxLevel {
				p.TOC = append(p.TOC, TOCEntry{Value: h.text, ID: h.id, Level: h.level})
			}
		}
	}

	return p, nil
}

// Link returns a PageLink to p.
func (p *Page) Link() *PageLink {
	return &PageLink{Title: p.Title, Permalink: p.Permalink}
}

// pageID strips the extension from source. A front matter id replaces the
// file name but keeps the directory.
func pageID(source, override string) string {
	dir := path.Dir(source)
	name := strings.TrimSuffix(path.Base(source), path.Ext(source))
	if override != "" {
		name = override
	}
	if dir == "." {
		return name
	}
	return dir + "/" + name
}

// pageSlug derives the URL path of a page. Index pages take their
// directory's slug. A relative front matter slug is resolved against the
// page's directory.
func pageSlug(source, dir, override string) string {
	if override != "" {
		if strings.HasPrefix(override, "/") {
			return path.Clean(override)
		}
		return path.Clean("/" + dir + "/" + override)
	}
	name := strings.TrimSuffix(path.Base(source), path.Ext(source))
	switch strings.ToLower(name) {
	case "index", "readme":
		return path.Clean("/" + dir)
	}
	return path.Clean("/" + dir + "/" + name)
}

// Prefix returns the URL path every permalink starts with, without a
// trailing slash.
func (o Options) Prefix() string {
	route := strings.Trim(o.RouteBasePath, "/")
	if route == "" {
		route = "docs"
	}
	return strings.TrimRight(o.BaseURL, "/") + "/" + route
}

func permalink(opts Options, slug string) string {
	if slug == "/" {
		return opts.Prefix() + "/"
	}
	return opts.Prefix() + slug
}
