package component

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"anfc/anf"
	"anfc/parser"
)

// LinkButton matches Gutenberg button blocks.
type LinkButton struct{}

func (LinkButton) Name() string { return "link_button" }

func buttonAnchor(n *html.Node) *html.Node {
	if n.Type != html.ElementNode {
		return nil
	}
	switch {
	case n.DataAtom == atom.A && parser.HasClass(n, "wp-block-button__link"):
		return n
	case n.DataAtom == atom.Div && (parser.HasClass(n, "wp-block-buttons") || parser.HasClass(n, "wp-block-button")):
		for _, a := range parser.FindAll(n, atom.A) {
			if parser.HasClass(a, "wp-block-button__link") || parser.Attr(a, "href") != "" {
				return a
			}
		}
	}
	return nil
}

func (LinkButton) Matches(n *html.Node) Match {
	return Match{Matched: buttonAnchor(n) != nil}
}

func (LinkButton) Build(b *Builder, n *html.Node) (map[string]any, error) {
	a := buttonAnchor(n)
	if a == nil {
		return nil, nil
	}
	href := b.resolveURL(parser.Attr(a, "href"))
	text := strings.TrimSpace(parser.Text(a))
	if href == "" || text == "" {
		return nil, nil
	}
	comp, err := b.ExecuteSpec("link_button", "json", map[string]any{
		"url":  href,
		"text": text,
	})
	if err != nil {
		return nil, err
	}
	style := map[string]any{
		"fontName":      b.Theme.GetString("body_font"),
		"fontSize":      b.Theme.GetInt("body_size"),
		"textColor":     b.Theme.GetString("body_link_color"),
		"textAlignment": "center",
	}
	if cond := conditionalDark(b.darkColor("body_link_color", "textColor")); cond != nil {
		style["conditional"] = cond
	}
	comp["identifier"] = b.Identifier(anf.RoleLinkButton)
	comp["textStyle"] = b.registerTextStyle("default-link-button", style)
	comp["layout"] = b.bodyLayout()
	return comp, nil
}
