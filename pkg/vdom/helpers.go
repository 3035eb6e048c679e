package vdom

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{Kind: KindText, Text: content}
}

// Raw creates a node whose content is written without escaping. It is meant
// for trusted markup such as inline styles and scripts, never page text.
func Raw(html string) *VNode {
	return &VNode{Kind: KindRaw, Text: html}
}

// Fragment groups children without a wrapper element. It accepts the same
// child forms as El; anything else is ignored.
func Fragment(children ...any) *VNode {
	node := &VNode{Kind: KindFragment, Children: make([]*VNode, 0, len(children))}
	for _, child := range children {
		node.Children = appendChild(node.Children, child)
	}
	return node
}

// appendChild appends child when it is a *VNode, []*VNode or string. Nil nodes
// and other values are dropped.
func appendChild(children []*VNode, child any) []*VNode {
	switch v := child.(type) {
	case *VNode:
		if v != nil {
			children = append(children, v)
		}
	case []*VNode:
		for _, c := range v {
			if c != nil {
				children = append(children, c)
			}
		}
	case string:
		children = append(children, Text(v))
	}
	return children
}

// When calls fn only if cond holds, so optional sections cost nothing when
// absent.
func When(cond bool, fn func() *VNode) *VNode {
	if !cond {
		return nil
	}
	return fn()
}

// Range maps items to nodes, dropping nil results.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	nodes := make([]*VNode, 0, len(items))
	for i, item := range items {
		if n := fn(item, i); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}
