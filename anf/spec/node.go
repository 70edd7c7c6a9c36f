// Package spec implements the token template trees component JSON is built
// from. A template is parsed once into a tagged tree, token detection
// afterwards is a type switch and never a string probe.
package spec

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Node is one value of a parsed template tree.
//
// Concrete types: Map, Array, Literal, Token and Interp (a string mixing
// literal runs with embedded tokens).
type Node interface {
	isNode()
}

type Map map[string]Node

type Array []Node

// Literal holds a plain JSON value with no tokens inside.
type Literal struct {
	Value any
}

// Token is a scalar that consists of a single #name# placeholder.
type Token struct {
	Name string
}

// Interp is a string scalar with one or more embedded #name# placeholders
// surrounded by literal text.
type Interp struct {
	Parts []Node // Literal (string) or Token only
}

func (Map) isNode()     {}
func (Array) isNode()   {}
func (Literal) isNode() {}
func (Token) isNode()   {}
func (Interp) isNode()  {}

// tokenRe matches a single placeholder: delimited by #, percent excluded so
// URL-encoded values never look like tokens.
var tokenRe = regexp.MustCompile(`#([^#%]+)#`)

// FromValue converts a generic JSON value (maps, slices, scalars) into a
// template tree, probing string scalars for placeholders.
func FromValue(v any) Node {
	switch t := v.(type) {
	case map[string]any:
		m := make(Map, len(t))
		for k, vv := range t {
			m[k] = FromValue(vv)
		}
		return m
	case []any:
		a := make(Array, 0, len(t))
		for _, vv := range t {
			a = append(a, FromValue(vv))
		}
		return a
	case string:
		return fromString(t)
	default:
		return Literal{Value: v}
	}
}

func fromString(s string) Node {
	locs := tokenRe.FindAllStringSubmatchIndex(s, -1)
	if len(locs) == 0 {
		return Literal{Value: s}
	}
	if len(locs) == 1 && locs[0][0] == 0 && locs[0][1] == len(s) {
		return Token{Name: s[locs[0][2]:locs[0][3]]}
	}
	var parts []Node
	pos := 0
	for _, loc := range locs {
		if loc[0] > pos {
			parts = append(parts, Literal{Value: s[pos:loc[0]]})
		}
		parts = append(parts, Token{Name: s[loc[2]:loc[3]]})
		pos = loc[1]
	}
	if pos < len(s) {
		parts = append(parts, Literal{Value: s[pos:]})
	}
	return Interp{Parts: parts}
}

// ParseJSON parses a JSON document into a template tree. Used for
// user-supplied spec overrides.
func ParseJSON(data []byte) (Node, error) {
	var v any
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("unable to parse spec template: %w", err)
	}
	return FromValue(v), nil
}

// Tokens returns the sorted set of placeholder names present in the tree.
func Tokens(n Node) []string {
	set := make(map[string]struct{})
	collectTokens(n, set)
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func collectTokens(n Node, set map[string]struct{}) {
	switch t := n.(type) {
	case Map:
		for _, v := range t {
			collectTokens(v, set)
		}
	case Array:
		for _, v := range t {
			collectTokens(v, set)
		}
	case Token:
		set[t.Name] = struct{}{}
	case Interp:
		for _, p := range t.Parts {
			collectTokens(p, set)
		}
	}
}

// ValidateOverride checks the override subset law: an override may drop
// placeholders the default spec has but must not introduce new ones.
func ValidateOverride(def, override Node) error {
	allowed := make(map[string]struct{})
	collectTokens(def, allowed)
	for _, name := range Tokens(override) {
		if _, ok := allowed[name]; !ok {
			return fmt.Errorf("override introduces unknown token %q", "#"+name+"#")
		}
	}
	return nil
}
