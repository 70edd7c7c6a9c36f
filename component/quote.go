package component

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"anfc/anf"
	"anfc/parser"
)

// Quote matches plain blockquotes and pullquote blocks. Provider embeds
// reuse the blockquote element but are claimed by earlier matchers.
type Quote struct{}

func (Quote) Name() string { return "quote" }

func (Quote) Matches(n *html.Node) Match {
	if n.Type != html.ElementNode {
		return Match{}
	}
	switch n.DataAtom {
	case atom.Blockquote:
		return Match{Matched: true}
	case atom.Figure:
		if parser.HasClass(n, "wp-block-pullquote") && parser.Find(n, atom.Blockquote) != nil {
			return Match{Matched: true}
		}
	}
	return Match{}
}

func isPullquote(n *html.Node) bool {
	if parser.HasClass(n, "wp-block-pullquote") || parser.HasClass(n, "pullquote") {
		return true
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && parser.HasClass(p, "wp-block-pullquote") {
			return true
		}
	}
	return false
}

func (Quote) Build(b *Builder, n *html.Node) (map[string]any, error) {
	bq := n
	if n.DataAtom == atom.Figure {
		bq = parser.Find(n, atom.Blockquote)
		if bq == nil {
			return nil, nil
		}
	}
	text, err := b.FormatText(parser.RenderAll(parser.Children(bq)))
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}

	align := parser.Alignment(n)
	values := map[string]any{
		"text":   text,
		"format": b.Format(),
	}
	if isPullquote(n) || isPullquote(bq) {
		comp, err := b.ExecuteSpec("quote", "json-pullquote", values)
		if err != nil {
			return nil, err
		}
		comp["identifier"] = b.Identifier(anf.RolePullquote)
		comp["textStyle"] = b.pullquoteTextStyle(align)
		comp["layout"] = b.quoteLayout()
		if align == anf.AnchorPositionLeft || align == anf.AnchorPositionRight {
			b.RequestAnchor(comp, align)
		}
		return comp, nil
	}

	comp, err := b.ExecuteSpec("quote", "json", values)
	if err != nil {
		return nil, err
	}
	ts, cs := b.blockquoteStyles(align)
	comp["identifier"] = b.Identifier(anf.RoleQuote)
	comp["textStyle"] = ts
	comp["style"] = cs
	comp["layout"] = b.quoteLayout()
	return comp, nil
}
