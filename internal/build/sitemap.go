package build

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/vango-dev/docsite/pkg/content"
)

// SitemapFile is written when the site URL is configured.
const SitemapFile = "sitemap.xml"

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

func writeSitemap(w io.Writer, origin string, pages []*content.Page) error {
	origin = strings.TrimRight(origin, "/")
	set := urlset{XMLNS: sitemapNS, URLs: make([]sitemapURL, 0, len(pages))}
	for _, p := range pages {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        origin + p.Permalink,
			ChangeFreq: "weekly",
			Priority:   "0.5",
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
