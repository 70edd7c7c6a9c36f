package component

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"anfc/anf"
	"anfc/parser"
)

// Body is the terminal matcher for text-like block elements. A container
// with media buried inside is split: text before, the media element on its
// own, text after, with list containers reopened around each text part.
type Body struct{}

func (Body) Name() string { return "body" }

var bodyAtoms = map[atom.Atom]bool{
	atom.P:       true,
	atom.Ul:      true,
	atom.Ol:      true,
	atom.Pre:     true,
	atom.Div:     true,
	atom.Address: true,
}

// mediaAtoms are elements that must not stay inside a body component.
var mediaAtoms = []atom.Atom{atom.Img, atom.Iframe, atom.Video, atom.Audio}

func (Body) Matches(n *html.Node) Match {
	if n.Type != html.ElementNode || !bodyAtoms[n.DataAtom] {
		return Match{}
	}
	if parts := splitOutMedia(n); parts != nil {
		return Match{Matched: true, Parts: parts}
	}
	return Match{Matched: true}
}

func (Body) Build(b *Builder, n *html.Node) (map[string]any, error) {
	text, err := b.FormatText(parser.Render(n))
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}

	align := parser.Alignment(n)

	var style string
	switch {
	case n.DataAtom == atom.Pre:
		style = b.monospacedTextStyle()
	default:
		dropcap := b.Theme.GetString("initial_dropcap") == "yes" &&
			n.DataAtom == atom.P && align == "" && b.consumedFirstBody()
		style = b.bodyTextStyle(align, dropcap)
	}

	comp, err := b.ExecuteSpec("body", "json", map[string]any{
		"text":   text,
		"format": b.Format(),
	})
	if err != nil {
		return nil, err
	}
	comp["identifier"] = b.Identifier(anf.RoleBody)
	comp["textStyle"] = style
	comp["layout"] = b.bodyLayout()
	return comp, nil
}

// splitOutMedia returns ordered parts when n hides media elements, nil when
// the node can be consumed whole.
func splitOutMedia(n *html.Node) []Part {
	if !containsMedia(n) {
		return nil
	}

	var parts []Part
	var acc []*html.Node

	flush := func() {
		if len(acc) == 0 {
			return
		}
		shell := shallowClone(n)
		for _, c := range acc {
			shell.AppendChild(c)
		}
		parts = append(parts, Part{TagHint: n.Data, Fragment: parser.Render(shell)})
		acc = nil
	}

	for _, child := range parser.Children(n) {
		for _, seg := range segmentMedia(child) {
			if seg.media != nil {
				flush()
				parts = append(parts, Part{TagHint: seg.media.Data, Fragment: parser.Render(seg.media)})
				continue
			}
			acc = append(acc, seg.content)
		}
	}
	flush()
	return parts
}

// mediaSegment is one slice of a media-bearing subtree: a media element or a
// content clone shaped like its source node.
type mediaSegment struct {
	media   *html.Node
	content *html.Node
}

// segmentMedia slices a node around its media descendants in document order.
// Content preceding a media element lands in the segment before it and
// content following it in the segment after, so source order survives the
// split.
func segmentMedia(n *html.Node) []mediaSegment {
	if isMedia(n) {
		return []mediaSegment{{media: n}}
	}
	if !containsMedia(n) {
		return []mediaSegment{{content: parser.Clone(n)}}
	}

	var segs []mediaSegment
	cur := shallowClone(n)
	emit := func() {
		if cur.FirstChild != nil && !parser.IsEmptyText(parser.Text(cur)) {
			segs = append(segs, mediaSegment{content: cur})
		}
		cur = shallowClone(n)
	}
	for _, child := range parser.Children(n) {
		for _, seg := range segmentMedia(child) {
			if seg.media != nil {
				emit()
				segs = append(segs, seg)
				continue
			}
			cur.AppendChild(seg.content)
		}
	}
	emit()
	return segs
}

func isMedia(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, a := range mediaAtoms {
		if n.DataAtom == a {
			return true
		}
	}
	return false
}

func containsMedia(n *html.Node) bool {
	for _, a := range mediaAtoms {
		if parser.Find(n, a) != nil {
			return true
		}
	}
	return false
}

func shallowClone(n *html.Node) *html.Node {
	c := &html.Node{
		Type:     n.Type,
		Data:     n.Data,
		DataAtom: n.DataAtom,
	}
	c.Attr = append(c.Attr, n.Attr...)
	return c
}
