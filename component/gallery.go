package component

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"anfc/anf"
	"anfc/parser"
)

// Gallery matches Gutenberg gallery blocks and the legacy shortcode markup.
type Gallery struct{}

func (Gallery) Name() string { return "gallery" }

func (Gallery) Matches(n *html.Node) Match {
	if n.Type != html.ElementNode {
		return Match{}
	}
	switch n.DataAtom {
	case atom.Figure, atom.Ul:
		if parser.HasClass(n, "wp-block-gallery") {
			return Match{Matched: true}
		}
	case atom.Div:
		if parser.HasClass(n, "gallery") {
			return Match{Matched: true}
		}
	}
	return Match{}
}

func (Gallery) Build(b *Builder, n *html.Node) (map[string]any, error) {
	var items []any
	for _, img := range parser.FindAll(n, atom.Img) {
		src := b.resolveURL(parser.Attr(img, "src"))
		if src == "" {
			continue
		}
		item := map[string]any{"URL": src}
		if cap := galleryItemCaption(img); cap != "" {
			item["caption"] = cap
			item["accessibilityCaption"] = cap
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, nil
	}

	role := anf.RoleGallery
	if b.Theme.GetString("gallery_type") == "mosaic" {
		role = "mosaic"
	}
	comp, err := b.ExecuteSpec("gallery", "json", map[string]any{
		"role":  role,
		"items": items,
	})
	if err != nil {
		return nil, err
	}
	comp["identifier"] = b.Identifier(role)
	comp["layout"] = b.galleryLayout()
	return comp, nil
}

// galleryItemCaption looks for a figcaption next to the image, then falls
// back to alt text.
func galleryItemCaption(img *html.Node) string {
	for p := img.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.DataAtom == atom.Figure {
			if fc := parser.Find(p, atom.Figcaption); fc != nil {
				if text := strings.TrimSpace(parser.Text(fc)); !parser.IsEmptyText(text) {
					return text
				}
			}
			break
		}
	}
	return strings.TrimSpace(parser.Attr(img, "alt"))
}
