package parser

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// allowedProtocols is the href scheme allow-list. Anchors using anything
// else are unwrapped to bare text.
var allowedProtocols = map[string]struct{}{
	"http":   {},
	"https":  {},
	"mailto": {},
	"music":  {},
	"musics": {},
	"stock":  {},
	"webcal": {},
}

// Clean normalizes a raw article body fragment:
//
//   - non-breaking spaces become regular spaces
//   - anchors without visible text are dropped entirely
//   - anchors without a usable href are unwrapped to their text
//   - root-relative hrefs are resolved against the site origin
//   - hrefs with protocols outside the allow-list are unwrapped
//
// The returned fragment is re-serialized from the repaired tree, so tag
// soup comes out balanced.
func Clean(fragment, origin string) string {
	fragment = strings.ReplaceAll(fragment, "&nbsp;", " ")
	fragment = strings.ReplaceAll(fragment, " ", " ")

	nodes := Fragment(fragment)
	for _, n := range nodes {
		cleanAnchors(n, origin)
	}
	return strings.TrimSpace(RenderAll(nodes))
}

func cleanAnchors(n *html.Node, origin string) {
	// children first: unwrapping splices grandchildren into place and they
	// are already clean by then
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		cleanAnchors(c, origin)
		c = next
	}

	if n.Type != html.ElementNode || n.DataAtom != atom.A {
		return
	}

	if IsEmptyText(Text(n)) && Find(n, atom.Img) == nil {
		Detach(n)
		return
	}

	href, ok := resolveHref(Attr(n, "href"), origin)
	if !ok {
		unwrap(n)
		return
	}
	setAttr(n, "href", href)
}

// resolveHref validates and absolutizes an anchor target. Second return is
// false when the anchor cannot keep its tag.
func resolveHref(href, origin string) (string, bool) {
	href = strings.TrimSpace(href)
	if len(href) == 0 {
		return "", false
	}
	// in-page fragment references stay as they are
	if strings.HasPrefix(href, "#") {
		return href, true
	}
	if strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//") {
		if len(origin) == 0 {
			return "", false
		}
		return strings.TrimSuffix(origin, "/") + href, true
	}
	u, err := url.Parse(href)
	if err != nil || len(u.Scheme) == 0 {
		return "", false
	}
	if _, ok := allowedProtocols[strings.ToLower(u.Scheme)]; !ok {
		return "", false
	}
	return href, true
}

func setAttr(n *html.Node, key, value string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

// unwrap replaces the node with its own children.
func unwrap(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
		c = next
	}
	parent.RemoveChild(n)
}
