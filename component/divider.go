package component

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"anfc/anf"
)

// Divider matches horizontal rules.
type Divider struct{}

func (Divider) Name() string { return "divider" }

func (Divider) Matches(n *html.Node) Match {
	return Match{Matched: n.Type == html.ElementNode && n.DataAtom == atom.Hr}
}

func (Divider) Build(b *Builder, n *html.Node) (map[string]any, error) {
	comp, err := b.ExecuteSpec("divider", "json", map[string]any{
		"color": b.Theme.GetString("body_color"),
		"width": 1,
	})
	if err != nil {
		return nil, err
	}
	comp["identifier"] = b.Identifier(anf.RoleDivider)
	comp["layout"] = b.dividerLayout()
	return comp, nil
}
