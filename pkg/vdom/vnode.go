package vdom

// VKind says how a VNode renders.
type VKind uint8

const (
	KindElement  VKind = iota
	KindText           // escaped on output
	KindFragment       // children only
	KindRaw            // written verbatim
)

func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is one node of an HTML document tree. Tag, Props and Children
// apply to elements and fragments; Text to text and raw nodes.
type VNode struct {
	Kind     VKind
	Tag      string
	Props    Props
	Children []*VNode
	Text     string
}

// Props maps attribute names to values. Keys starting with "_" are never
// rendered.
type Props map[string]any

// Attr is a single attribute. An Attr with an empty Key is ignored.
type Attr struct {
	Key   string
	Value any
}

// TextContent returns the concatenated text of v and its descendants.
func (v *VNode) TextContent() string {
	if v == nil {
		return ""
	}
	switch v.Kind {
	case KindText:
		return v.Text
	case KindRaw:
		return ""
	}
	var out []byte
	for _, c := range v.Children {
		out = append(out, c.TextContent()...)
	}
	return string(out)
}

// Find returns the first node, in depth-first order, for which match is true.
func (v *VNode) Find(match func(*VNode) bool) *VNode {
	if v == nil {
		return nil
	}
	if match(v) {
		return v
	}
	for _, c := range v.Children {
		if found := c.Find(match); found != nil {
			return found
		}
	}
	return nil
}
