package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// El creates an element with the given tag.
// Arguments can be: nil, Attr, []Attr, Props, *VNode, []*VNode, string.
func El(tag string, args ...any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case Attr:
			if v.Key != "" {
				node.Props[v.Key] = v.Value
			}
		case []Attr:
			for _, a := range v {
				if a.Key != "" {
					node.Props[a.Key] = a.Value
				}
			}
		case Props:
			for key, value := range v {
				node.Props[key] = value
			}
		default:
			node.Children = appendChild(node.Children, v)
		}
	}

	return node
}

// Document structure elements

func Html(args ...any) *VNode  { return El("html", args...) }
func Head(args ...any) *VNode  { return El("head", args...) }
func Body(args ...any) *VNode  { return El("body", args...) }
func Title(args ...any) *VNode { return El("title", args...) }
func Meta(args ...any) *VNode  { return El("meta", args...) }
func Link(args ...any) *VNode  { return El("link", args...) }

// Content sectioning elements

func Header(args ...any) *VNode  { return El("header", args...) }
func Footer(args ...any) *VNode  { return El("footer", args...) }
func Main(args ...any) *VNode    { return El("main", args...) }
func Nav(args ...any) *VNode     { return El("nav", args...) }
func Article(args ...any) *VNode { return El("article", args...) }
func H1(args ...any) *VNode      { return El("h1", args...) }
func H2(args ...any) *VNode      { return El("h2", args...) }
func H3(args ...any) *VNode      { return El("h3", args...) }

// Text content elements

func Div(args ...any) *VNode        { return El("div", args...) }
func P(args ...any) *VNode          { return El("p", args...) }
func Span(args ...any) *VNode       { return El("span", args...) }
func Pre(args ...any) *VNode        { return El("pre", args...) }
func Blockquote(args ...any) *VNode { return El("blockquote", args...) }
func Ul(args ...any) *VNode         { return El("ul", args...) }
func Ol(args ...any) *VNode         { return El("ol", args...) }
func Li(args ...any) *VNode         { return El("li", args...) }
func Hr(args ...any) *VNode         { return El("hr", args...) }

// Inline text semantics

func A(args ...any) *VNode      { return El("a", args...) }
func Strong(args ...any) *VNode { return El("strong", args...) }
func Em(args ...any) *VNode     { return El("em", args...) }
func Code(args ...any) *VNode   { return El("code", args...) }
func Br(args ...any) *VNode     { return El("br", args...) }

// Table elements

func Table(args ...any) *VNode { return El("table", args...) }
func Thead(args ...any) *VNode { return El("thead", args...) }
func Tbody(args ...any) *VNode { return El("tbody", args...) }
func Tr(args ...any) *VNode    { return El("tr", args...) }
func Th(args ...any) *VNode    { return El("th", args...) }
func Td(args ...any) *VNode    { return El("td", args...) }

// Media and scripting elements

func Img(args ...any) *VNode    { return El("img", args...) }
func Script(args ...any) *VNode { return El("script", args...) }
func Style(args ...any) *VNode  { return El("style", args...) }
