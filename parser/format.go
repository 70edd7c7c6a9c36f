package parser

import (
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// allowedTags is the sanitized HTML dialect: structural and semantic inline
// tags only. Every allowed tag may keep an id attribute, anchors also keep
// href.
var allowedTags = map[atom.Atom]struct{}{
	atom.A: {}, atom.B: {}, atom.Blockquote: {}, atom.Br: {}, atom.Code: {},
	atom.Del: {}, atom.Em: {}, atom.Footer: {}, atom.I: {}, atom.Li: {},
	atom.Ol: {}, atom.P: {}, atom.Pre: {}, atom.S: {}, atom.Strong: {},
	atom.Sub: {}, atom.Sup: {}, atom.Table: {}, atom.Tbody: {}, atom.Td: {},
	atom.Tfoot: {}, atom.Th: {}, atom.Thead: {}, atom.Tr: {}, atom.Ul: {},
}

// voidTags never count as collapsible even when empty.
var voidTags = map[atom.Atom]struct{}{
	atom.Br: {}, atom.Hr: {}, atom.Img: {},
}

// scriptRe removes script blocks before sanitizing: the generic walker sees
// script payload as text and would leak it into output.
var scriptRe = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)

// FormatHTML reduces a fragment to the sanitized HTML dialect: script
// blocks stripped, tags outside the allow-list unwrapped, attributes other
// than id (and href on anchors) dropped, then empty tag pairs collapsed.
func FormatHTML(fragment string) string {
	fragment = scriptRe.ReplaceAllString(fragment, "")

	nodes := Fragment(fragment)
	for _, n := range nodes {
		sanitizeNode(n)
	}
	out := make([]*html.Node, 0, len(nodes))
	for _, n := range nodes {
		if !collapseEmpty(n) {
			out = append(out, n)
		}
	}
	return strings.TrimSpace(RenderAll(out))
}

func sanitizeNode(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		sanitizeNode(c)
		c = next
	}
	if n.Type != html.ElementNode {
		return
	}
	if _, ok := allowedTags[n.DataAtom]; !ok {
		unwrap(n)
		return
	}
	var kept []html.Attribute
	for _, a := range n.Attr {
		if a.Key == "id" || (a.Key == "href" && n.DataAtom == atom.A) {
			kept = append(kept, a)
		}
	}
	n.Attr = kept
}

// collapseEmpty prunes elements that end up with no content after
// sanitizing. Returns true when the node itself was removed.
func collapseEmpty(n *html.Node) bool {
	if n.Type == html.TextNode {
		return false
	}
	if n.Type != html.ElementNode {
		Detach(n)
		return true
	}
	if _, void := voidTags[n.DataAtom]; void {
		return false
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		collapseEmpty(c)
		c = next
	}
	if n.FirstChild == nil && IsEmptyText(Text(n)) {
		Detach(n)
		return true
	}
	return false
}

// markdownStrip removes constructs the Markdown dialect cannot express
// before conversion. Tables fall back to their plain text.
var markdownDisallowed = map[atom.Atom]struct{}{
	atom.Img: {}, atom.Script: {}, atom.Style: {}, atom.Iframe: {},
}

// FormatMarkdown renders a cleaned fragment to the constrained Markdown
// subset: paragraphs, emphasis, links, lists, code and blockquote markers.
// Ordering follows the source DOM.
func FormatMarkdown(fragment string) (string, error) {
	fragment = scriptRe.ReplaceAllString(fragment, "")

	nodes := Fragment(fragment)
	for _, n := range nodes {
		stripForMarkdown(n)
	}
	fragment = RenderAll(nodes)

	conv := md.NewConverter("", true, nil)
	text, err := conv.ConvertString(fragment)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func stripForMarkdown(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		stripForMarkdown(c)
		c = next
	}
	if n.Type != html.ElementNode {
		return
	}
	if _, bad := markdownDisallowed[n.DataAtom]; bad {
		Detach(n)
	}
}
