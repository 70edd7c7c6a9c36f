package component

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"anfc/anf"
	"anfc/parser"
)

// Table matches table markup. News only accepts tables as HTML, a markdown
// document has no way to carry one and the table is dropped.
type Table struct{}

func (Table) Name() string { return "table" }

func (Table) Matches(n *html.Node) Match {
	if n.Type != html.ElementNode {
		return Match{}
	}
	switch n.DataAtom {
	case atom.Table:
		return Match{Matched: true}
	case atom.Figure:
		if parser.HasClass(n, "wp-block-table") && parser.Find(n, atom.Table) != nil {
			return Match{Matched: true}
		}
	}
	return Match{}
}

func (Table) Build(b *Builder, n *html.Node) (map[string]any, error) {
	if !b.HTMLEnabled {
		return nil, nil
	}
	table := parser.Find(n, atom.Table)
	if table == nil {
		return nil, nil
	}
	markup := parser.FormatHTML(parser.Clean(parser.Render(table), b.Origin))
	if markup == "" {
		return nil, nil
	}
	comp, err := b.ExecuteSpec("table", "json", map[string]any{"html": markup})
	if err != nil {
		return nil, err
	}
	comp["identifier"] = b.Identifier(anf.RoleTable)
	comp["style"] = b.tableComponentStyle()
	comp["layout"] = b.bodyLayout()
	return comp, nil
}
