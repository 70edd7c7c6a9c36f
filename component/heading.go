package component

import (
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"anfc/anf"
	"anfc/parser"
)

// Heading matches h1 through h6.
type Heading struct{}

func (Heading) Name() string { return "heading" }

var headingLevels = map[atom.Atom]int{
	atom.H1: 1,
	atom.H2: 2,
	atom.H3: 3,
	atom.H4: 4,
	atom.H5: 5,
	atom.H6: 6,
}

func (Heading) Matches(n *html.Node) Match {
	if n.Type != html.ElementNode {
		return Match{}
	}
	if _, ok := headingLevels[n.DataAtom]; !ok {
		return Match{}
	}
	// A heading wrapping a single image is an image in disguise.
	if img := parser.Find(n, atom.Img); img != nil && parser.IsEmptyText(parser.Text(n)) {
		return Match{Matched: true, Parts: []Part{{TagHint: "img", Fragment: parser.Render(img)}}}
	}
	return Match{Matched: true}
}

func (Heading) Build(b *Builder, n *html.Node) (map[string]any, error) {
	// Only the inline content goes into the component, the role carries
	// the level.
	text, err := b.FormatText(parser.RenderAll(parser.Children(n)))
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}
	level := headingLevels[n.DataAtom]
	comp, err := b.ExecuteSpec("heading", "json", map[string]any{
		"role":   fmt.Sprintf("%s%d", anf.RoleHeading, level),
		"text":   text,
		"format": b.Format(),
	})
	if err != nil {
		return nil, err
	}
	comp["textStyle"] = b.headingTextStyle(level)
	comp["layout"] = b.bodyLayout()
	return comp, nil
}
