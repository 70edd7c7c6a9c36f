package component

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"anfc/anf"
	"anfc/parser"
)

// Image matches standalone img elements and figure blocks wrapping one.
type Image struct{}

func (Image) Name() string { return "image" }

func (Image) Matches(n *html.Node) Match {
	if n.Type != html.ElementNode {
		return Match{}
	}
	switch n.DataAtom {
	case atom.Img:
		return Match{Matched: true}
	case atom.Figure:
		if parser.HasClass(n, "wp-block-gallery") || HasClassContains(n, "wp-block-embed") {
			return Match{}
		}
		if parser.Find(n, atom.Img) != nil {
			return Match{Matched: true}
		}
	case atom.Div:
		if parser.HasClass(n, "wp-caption") && parser.Find(n, atom.Img) != nil {
			return Match{Matched: true}
		}
	}
	return Match{}
}

func (Image) Build(b *Builder, n *html.Node) (map[string]any, error) {
	img := parser.Find(n, atom.Img)
	if img == nil {
		return nil, nil
	}
	src := b.resolveURL(parser.Attr(img, "src"))
	if src == "" {
		return nil, nil
	}

	caption := imageCaption(b, n, img)
	values := map[string]any{"url": src}
	specName := "json"
	if caption != "" {
		specName = "json-with-caption"
		values["caption"] = caption
	}
	comp, err := b.ExecuteSpec("image", specName, values)
	if err != nil {
		return nil, err
	}
	comp["identifier"] = b.Identifier(anf.RolePhoto)
	comp["layout"] = b.imageLayout()
	if caption != "" {
		b.captionTextStyle()
	}

	if align := parser.Alignment(n); align == anf.AnchorPositionLeft || align == anf.AnchorPositionRight {
		b.RequestAnchor(comp, align)
	}
	return comp, nil
}

// imageCaption prefers an explicit figcaption over alt text.
func imageCaption(b *Builder, n, img *html.Node) string {
	if fc := parser.Find(n, atom.Figcaption); fc != nil {
		if text := strings.TrimSpace(parser.Text(fc)); !parser.IsEmptyText(text) {
			return text
		}
	}
	return strings.TrimSpace(parser.Attr(img, "alt"))
}

// resolveURL absolutizes a media URL against the site origin. Root-relative
// paths resolve against the origin, plain relative paths are kept verbatim
// for the bundler to pick up, other schemes are dropped.
func (b *Builder) resolveURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	switch {
	case u.Scheme == "http", u.Scheme == "https", u.Scheme == "bundle":
		return raw
	case u.Scheme != "":
		return ""
	case strings.HasPrefix(raw, "//"):
		return "https:" + raw
	case strings.HasPrefix(raw, "/") && b.Origin != "":
		return strings.TrimRight(b.Origin, "/") + raw
	default:
		return raw
	}
}

// HasClassContains reports whether any class token contains the substring.
// Gutenberg emits provider-qualified block classes this way.
func HasClassContains(n *html.Node, sub string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if strings.Contains(c, sub) {
				return true
			}
		}
	}
	return false
}
