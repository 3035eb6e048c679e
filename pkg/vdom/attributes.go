package vdom

import "strings"

// Attribute creates an arbitrary attribute. Booleans render as bare
// attributes when true and are omitted when false.
func Attribute(key string, value any) Attr { return Attr{Key: key, Value: value} }

// Class joins the non-empty class names with spaces.
func Class(classes ...string) Attr {
	var b strings.Builder
	for _, c := range classes {
		if c == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c)
	}
	return Attribute("class", b.String())
}

// Data creates a data-* attribute: Data("level", "2") is data-level="2".
func Data(key, value string) Attr { return Attribute("data-"+key, value) }

func ID(id string) Attr           { return Attribute("id", id) }
func Href(url string) Attr        { return Attribute("href", url) }
func Target(target string) Attr   { return Attribute("target", target) }
func Rel(rel string) Attr         { return Attribute("rel", rel) }
func Name(name string) Attr       { return Attribute("name", name) }
func Content(value string) Attr   { return Attribute("content", value) }
func Charset(charset string) Attr { return Attribute("charset", charset) }
func AriaLabel(label string) Attr { return Attribute("aria-label", label) }

// TitleAttr is the title attribute; Title is the element.
func TitleAttr(title string) Attr { return Attribute("title", title) }

// Start is the first number of an ordered list.
func Start(n int) Attr { return Attribute("start", n) }

// Defer marks a script as deferred.
func Defer() Attr { return Attribute("defer", true) }
