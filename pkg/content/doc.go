// Package content loads documentation pages.
//
// A page is a markdown file with optional YAML front matter. Parse turns it
// into a Page whose Body is an mdx content tree with heading anchors, plus
// the metadata a site needs to route and index it (title, description,
// slug, permalink, table of contents). LoadDir loads a whole docs directory
// into an ordered Site.
package content
