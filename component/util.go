package component

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"anfc/parser"
)

// bareURL returns the URL when the node carries nothing but one link or a
// plain-text URL. CMS editors paste embeds exactly like that.
func bareURL(n *html.Node) string {
	text := strings.TrimSpace(parser.Text(n))
	anchors := parser.FindAll(n, atom.A)
	if len(anchors) == 1 {
		href := strings.TrimSpace(parser.Attr(anchors[0], "href"))
		inner := strings.TrimSpace(parser.Text(anchors[0]))
		if href != "" && (text == inner || text == href) {
			return href
		}
		return ""
	}
	if len(anchors) == 0 && (strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://")) &&
		!strings.ContainsAny(text, " \t\n") {
		return text
	}
	return ""
}

// embedURL extracts the source URL from an embed block: a bare pasted URL,
// the wrapper div Gutenberg renders around one, or an iframe src.
func embedURL(n *html.Node) string {
	if u := bareURL(n); u != "" {
		return u
	}
	if iframe := parser.Find(n, atom.Iframe); iframe != nil {
		if src := strings.TrimSpace(parser.Attr(iframe, "src")); src != "" {
			return src
		}
	}
	if wrapper := parser.Find(n, atom.Div); wrapper != nil {
		if u := bareURL(wrapper); u != "" {
			return u
		}
	}
	return ""
}

// urlHost returns the lowercased host of an absolute http(s) URL, with any
// www. prefix removed, or "".
func urlHost(raw string) string {
	raw = strings.TrimSpace(raw)
	var rest string
	switch {
	case strings.HasPrefix(raw, "https://"):
		rest = raw[len("https://"):]
	case strings.HasPrefix(raw, "http://"):
		rest = raw[len("http://"):]
	case strings.HasPrefix(raw, "//"):
		rest = raw[len("//"):]
	default:
		return ""
	}
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	return strings.TrimPrefix(strings.ToLower(rest), "www.")
}
