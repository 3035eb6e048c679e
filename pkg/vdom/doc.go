// Package vdom provides the in-memory document tree rendered by docsite.
//
// VNode is the building block: elements, text, fragments and raw HTML.
// Props holds element attributes; Attr values build Props.
//
// Elements are created with variadic factory functions or El for an
// arbitrary tag name:
//
//	Article(Class("markdown"),
//	    H1(ID("etcd"), Text("etcd")),
//	    Pre(Code(Class("language-bash"), Text("etcdctl member list"))),
//	)
//
// Rendering units in package mdx return VNodes; package render turns them
// into HTML.
package vdom
