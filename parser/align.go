package parser

import (
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"golang.org/x/net/html"
)

// Alignment resolves the requested text/float alignment of a node from its
// markup: CMS alignment class names first, then an inline text-align style
// declaration. Empty string means no explicit alignment.
func Alignment(n *html.Node) string {
	if n == nil {
		return ""
	}
	switch {
	case HasClass(n, "aligncenter"):
		return "center"
	case HasClass(n, "alignleft"):
		return "left"
	case HasClass(n, "alignright"):
		return "right"
	}
	if v, ok := HasClassPrefix(n, "has-text-align-"); ok {
		switch v {
		case "left", "center", "right", "justify":
			return v
		}
	}
	if v := inlineTextAlign(Attr(n, "style")); len(v) > 0 {
		return v
	}
	return ""
}

// inlineTextAlign extracts the text-align value from an inline style
// attribute. Unparsable declarations are ignored.
func inlineTextAlign(style string) string {
	if len(style) == 0 {
		return ""
	}
	p := css.NewParser(parse.NewInputString(style), true)
	for {
		gt, _, data := p.Next()
		if gt == css.ErrorGrammar {
			return ""
		}
		if gt != css.DeclarationGrammar || !strings.EqualFold(string(data), "text-align") {
			continue
		}
		for _, tok := range p.Values() {
			if tok.TokenType == css.IdentToken {
				switch v := strings.ToLower(string(tok.Data)); v {
				case "left", "center", "right", "justify":
					return v
				}
			}
		}
	}
}
