// Package component turns cleaned HTML fragments into Apple News Format
// component dictionaries. Matching is a closed, ordered list of node types:
// the first type claiming a node wins, and a type may ask for the node to be
// split into parts which are dispatched again individually.
package component

import (
	"golang.org/x/net/html"
)

// Part is a fragment produced by splitting a matched node.
type Part struct {
	// TagHint names the element the fragment was derived from, it lets
	// tests and logs explain a split without re-parsing.
	TagHint string
	// Fragment is serialized HTML dispatched through the matcher list
	// again.
	Fragment string
}

// Match is the outcome of probing a node against one component type.
type Match struct {
	Matched bool
	// Parts, when non-empty, asks the dispatcher to discard the node and
	// process these fragments instead.
	Parts []Part
}

// Type converts one family of HTML nodes into a component dictionary.
// Build may return (nil, nil) when the node turns out to carry nothing
// publishable, the dispatcher then drops it silently.
type Type interface {
	Name() string
	Matches(n *html.Node) Match
	Build(b *Builder, n *html.Node) (map[string]any, error)
}

// matchers is the closed matcher list. Order is behavior: specific embeds
// come before the generic iframe fallback, media containers before the image
// matcher that would claim their thumbnails, and the body matcher is the
// terminal catch-all for anything text-like.
var matchers = []Type{
	Gallery{},
	Table{},
	Tweet{},
	Instagram{},
	Facebook{},
	TikTok{},
	EmbedVideo{},
	Music{},
	Podcast{},
	Video{},
	Audio{},
	Image{},
	Divider{},
	Heading{},
	Quote{},
	LinkButton{},
	EmbedGeneric{},
	Body{},
}

// Matchers returns the matcher list in dispatch order.
func Matchers() []Type {
	return matchers
}

// MatchNode probes the matcher list and returns the first type claiming the
// node, or nil when nothing does.
func MatchNode(n *html.Node) (Type, Match) {
	for _, t := range matchers {
		if m := t.Matches(n); m.Matched {
			return t, m
		}
	}
	return nil, Match{}
}

// Dispatch turns one top-level node into zero or more component
// dictionaries, resolving splits recursively.
func (b *Builder) Dispatch(n *html.Node) ([]map[string]any, error) {
	t, m := MatchNode(n)
	if t == nil {
		return nil, nil
	}
	if len(m.Parts) == 0 {
		comp, err := t.Build(b, n)
		if err != nil || comp == nil {
			return nil, err
		}
		return []map[string]any{comp}, nil
	}
	var out []map[string]any
	for _, part := range m.Parts {
		for _, pn := range b.parse(part.Fragment) {
			comps, err := b.Dispatch(pn)
			if err != nil {
				return nil, err
			}
			out = append(out, comps...)
		}
	}
	return out, nil
}
