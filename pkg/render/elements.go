package render

import "github.com/vango-dev/docsite/pkg/vdom"

// blockElements get their children on separate lines in pretty output.
var blockElements = map[string]bool{
	"article":    true,
	"blockquote": true,
	"body":       true,
	"div":        true,
	"footer":     true,
	"header":     true,
	"main":       true,
	"nav":        true,
	"ol":         true,
	"section":    true,
	"table":      true,
	"tbody":      true,
	"thead":      true,
	"tr":         true,
	"ul":         true,
}

// isBlockElement reports whether pretty printing should break inside tag.
// Everything else, pre in particular, is written inline so whitespace
// inside code blocks is preserved.
func isBlockElement(tag string) bool {
	return blockElements[tag]
}

// lineElements start on their own line in pretty output but keep their
// children inline.
var lineElements = map[string]bool{
	"h1":     true,
	"h2":     true,
	"h3":     true,
	"h4":     true,
	"h5":     true,
	"h6":     true,
	"hr":     true,
	"li":     true,
	"link":   true,
	"meta":   true,
	"p":      true,
	"pre":    true,
	"script": true,
	"td":     true,
	"th":     true,
	"title":  true,
}

func isLineElement(tag string) bool {
	return lineElements[tag]
}

// booleanAttrs are attributes that don't need a value.
// When true, they're rendered as just the attribute name.
var booleanAttrs = map[string]bool{
	"async":    true,
	"checked":  true,
	"defer":    true,
	"disabled": true,
	"hidden":   true,
	"open":     true,
	"reversed": true,
}

// isBooleanAttr returns true if the attribute is a boolean attribute.
func isBooleanAttr(name string) bool {
	return booleanAttrs[name]
}

// isVoidElement returns true if the tag is a void element.
func isVoidElement(tag string) bool {
	return vdom.IsVoidElement(tag)
}
