// Package parser normalizes raw CMS article HTML and converts it to the
// constrained representations components are built from: a sanitized HTML
// dialect or a Markdown subset.
//
// All parsing is tolerant, malformed markup never aborts the pipeline: the
// DOM parser produces a best-effort tree and broken pieces simply contribute
// nothing.
package parser

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Fragment parses an HTML fragment and returns its top-level nodes. Parse
// errors are suppressed, the result is whatever tree could be recovered.
func Fragment(fragment string) []*html.Node {
	body := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		// best effort only
		return nil
	}
	return nodes
}

// Render serializes a node back to HTML.
func Render(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// RenderAll serializes a node list in order.
func RenderAll(nodes []*html.Node) string {
	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			continue
		}
	}
	return buf.String()
}

// Children returns the element child list as a slice.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// Attr returns the value of the named attribute, empty when absent.
func Attr(n *html.Node, name string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// HasClass reports whether the node carries the class name.
func HasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(Attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// HasClassPrefix reports whether any class on the node starts with prefix
// and returns the remainder of the first one that does.
func HasClassPrefix(n *html.Node, prefix string) (string, bool) {
	for _, c := range strings.Fields(Attr(n, "class")) {
		if strings.HasPrefix(c, prefix) {
			return strings.TrimPrefix(c, prefix), true
		}
	}
	return "", false
}

// Text returns the concatenated visible text of the subtree.
func Text(n *html.Node) string {
	var buf bytes.Buffer
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style) {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return buf.String()
}

// IsEmptyText reports whether s contains nothing but whitespace once
// non-breaking spaces are folded in.
func IsEmptyText(s string) bool {
	return len(strings.TrimSpace(strings.ReplaceAll(s, " ", " "))) == 0
}

// Find returns the first descendant element with the given tag, depth
// first, or nil.
func Find(n *html.Node, tag atom.Atom) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && n.DataAtom == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := Find(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// FindAll collects every descendant element with the given tag in document
// order, including n itself.
func FindAll(n *html.Node, tag atom.Atom) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return out
}

// Detach removes the node from its parent, keeping the node itself usable.
func Detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Clone makes a deep copy of the subtree.
func Clone(n *html.Node) *html.Node {
	cp := &html.Node{
		Type:     n.Type,
		DataAtom: n.DataAtom,
		Data:     n.Data,
		Attr:     append([]html.Attribute(nil), n.Attr...),
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		cp.AppendChild(Clone(c))
	}
	return cp
}
