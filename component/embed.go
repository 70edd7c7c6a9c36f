package component

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"anfc/anf"
	"anfc/parser"
)

// EmbedVideo matches hosted video embeds: YouTube, Vimeo and Dailymotion in
// any of the forms editors produce, a pasted URL, a Gutenberg embed block or
// a raw iframe.
type EmbedVideo struct{}

func (EmbedVideo) Name() string { return "embed_video" }

func (EmbedVideo) Matches(n *html.Node) Match {
	if n.Type != html.ElementNode {
		return Match{}
	}
	switch n.DataAtom {
	case atom.P, atom.Figure, atom.Div, atom.Iframe:
		if canonicalVideoURL(embedNodeURL(n)) != "" {
			return Match{Matched: true}
		}
	}
	return Match{}
}

func (EmbedVideo) Build(b *Builder, n *html.Node) (map[string]any, error) {
	canonical := canonicalVideoURL(embedNodeURL(n))
	if canonical == "" {
		return nil, nil
	}
	comp, err := b.ExecuteSpec("embed_video", "json", map[string]any{
		"url":          canonical,
		"aspect_ratio": 1.777,
	})
	if err != nil {
		return nil, err
	}
	comp["identifier"] = b.Identifier(anf.RoleEmbedVideo)
	comp["layout"] = b.imageLayout()
	return comp, nil
}

func embedNodeURL(n *html.Node) string {
	if n.DataAtom == atom.Iframe {
		return strings.TrimSpace(parser.Attr(n, "src"))
	}
	return embedURL(n)
}

// canonicalVideoURL maps any recognized video URL form to the provider's
// embed URL, or returns "".
func canonicalVideoURL(raw string) string {
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "//") {
		raw = "https:" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	path := strings.Trim(u.Path, "/")
	switch host {
	case "youtube.com", "youtube-nocookie.com", "m.youtube.com":
		if id := u.Query().Get("v"); id != "" {
			return "https://www.youtube.com/embed/" + id
		}
		if strings.HasPrefix(path, "embed/") || strings.HasPrefix(path, "shorts/") {
			if id := path[strings.Index(path, "/")+1:]; id != "" {
				return "https://www.youtube.com/embed/" + id
			}
		}
	case "youtu.be":
		if path != "" {
			return "https://www.youtube.com/embed/" + path
		}
	case "vimeo.com", "player.vimeo.com":
		id := strings.TrimPrefix(path, "video/")
		if id != "" && !strings.Contains(id, "/") {
			return "https://player.vimeo.com/video/" + id
		}
	case "dailymotion.com":
		id := strings.TrimPrefix(strings.TrimPrefix(path, "embed/"), "video/")
		if id != "" && !strings.Contains(id, "/") {
			return "https://www.dailymotion.com/embed/video/" + id
		}
	case "dai.ly":
		if path != "" {
			return "https://www.dailymotion.com/embed/video/" + path
		}
	}
	return ""
}

// EmbedGeneric is the iframe fallback for providers without a dedicated
// News role. It degrades to a small container linking out.
type EmbedGeneric struct{}

func (EmbedGeneric) Name() string { return "embed_generic" }

func (EmbedGeneric) Matches(n *html.Node) Match {
	if n.Type != html.ElementNode {
		return Match{}
	}
	switch n.DataAtom {
	case atom.Iframe:
		return Match{Matched: strings.TrimSpace(parser.Attr(n, "src")) != ""}
	case atom.Figure:
		if HasClassContains(n, "wp-block-embed") && embedURL(n) != "" {
			return Match{Matched: true}
		}
	}
	return Match{}
}

func (EmbedGeneric) Build(b *Builder, n *html.Node) (map[string]any, error) {
	src := embedNodeURL(n)
	if src == "" {
		return nil, nil
	}
	if strings.HasPrefix(src, "//") {
		src = "https:" + src
	}
	title := strings.TrimSpace(parser.Attr(n, "title"))
	if title == "" {
		if host := urlHost(src); host != "" {
			title = "Embedded content from " + host
		} else {
			title = "Embedded content"
		}
	}
	comp, err := b.ExecuteSpec("embed_generic", "json", map[string]any{
		"url":   src,
		"title": title,
	})
	if err != nil {
		return nil, err
	}
	comp["identifier"] = b.Identifier(anf.RoleContainer)
	comp["layout"] = b.bodyLayout()
	return comp, nil
}
