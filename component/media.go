package component

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"anfc/anf"
	"anfc/parser"
)

// Video matches hosted video files: a video element or a Gutenberg video
// block wrapping one.
type Video struct{}

func (Video) Name() string { return "video" }

func (Video) Matches(n *html.Node) Match {
	if n.Type != html.ElementNode {
		return Match{}
	}
	switch n.DataAtom {
	case atom.Video:
		return Match{Matched: true}
	case atom.Figure, atom.Div:
		if parser.Find(n, atom.Video) != nil {
			return Match{Matched: true}
		}
	}
	return Match{}
}

// mediaSrc finds the playable source of a video or audio element.
func mediaSrc(b *Builder, n *html.Node) string {
	if src := b.resolveURL(parser.Attr(n, "src")); src != "" {
		return src
	}
	for _, s := range parser.FindAll(n, atom.Source) {
		if src := b.resolveURL(parser.Attr(s, "src")); src != "" {
			return src
		}
	}
	return ""
}

func (Video) Build(b *Builder, n *html.Node) (map[string]any, error) {
	v := parser.Find(n, atom.Video)
	if v == nil {
		return nil, nil
	}
	src := mediaSrc(b, v)
	if src == "" {
		return nil, nil
	}
	values := map[string]any{"url": src}
	specName := "json"
	if still := b.resolveURL(parser.Attr(v, "poster")); still != "" {
		specName = "json-with-still"
		values["still"] = still
	}
	comp, err := b.ExecuteSpec("video", specName, values)
	if err != nil {
		return nil, err
	}
	comp["identifier"] = b.Identifier(anf.RoleVideo)
	comp["layout"] = b.imageLayout()
	return comp, nil
}

// Audio matches audio elements and Gutenberg audio blocks.
type Audio struct{}

func (Audio) Name() string { return "audio" }

func (Audio) Matches(n *html.Node) Match {
	if n.Type != html.ElementNode {
		return Match{}
	}
	switch n.DataAtom {
	case atom.Audio:
		return Match{Matched: true}
	case atom.Figure, atom.Div:
		if parser.Find(n, atom.Audio) != nil {
			return Match{Matched: true}
		}
	}
	return Match{}
}

func (Audio) Build(b *Builder, n *html.Node) (map[string]any, error) {
	a := parser.Find(n, atom.Audio)
	if a == nil {
		return nil, nil
	}
	src := mediaSrc(b, a)
	if src == "" {
		return nil, nil
	}
	comp, err := b.ExecuteSpec("audio", "json", map[string]any{"url": src})
	if err != nil {
		return nil, err
	}
	comp["identifier"] = b.Identifier(anf.RoleAudio)
	comp["layout"] = b.bodyLayout()
	return comp, nil
}

// Music matches bare links to Apple Music and Spotify, which News renders
// with a dedicated player.
type Music struct{}

func (Music) Name() string { return "music" }

var musicHosts = map[string]bool{"music.apple.com": true, "itunes.apple.com": true, "open.spotify.com": true}

func musicURL(n *html.Node) string {
	if n.Type != html.ElementNode || n.DataAtom != atom.P {
		return ""
	}
	u := bareURL(n)
	if u != "" && musicHosts[urlHost(u)] {
		return u
	}
	return ""
}

func (Music) Matches(n *html.Node) Match {
	return Match{Matched: musicURL(n) != ""}
}

func (Music) Build(b *Builder, n *html.Node) (map[string]any, error) {
	u := musicURL(n)
	if u == "" {
		return nil, nil
	}
	comp, err := b.ExecuteSpec("music", "json", map[string]any{"url": u})
	if err != nil {
		return nil, err
	}
	comp["identifier"] = b.Identifier(anf.RoleMusic)
	comp["layout"] = b.bodyLayout()
	return comp, nil
}

// Podcast matches bare links to Apple Podcasts shows or episodes.
type Podcast struct{}

func (Podcast) Name() string { return "podcast" }

func podcastURL(n *html.Node) string {
	if n.Type != html.ElementNode || n.DataAtom != atom.P {
		return ""
	}
	u := bareURL(n)
	if u == "" {
		return ""
	}
	host := urlHost(u)
	if host == "podcasts.apple.com" {
		return u
	}
	if host == "itunes.apple.com" && strings.Contains(u, "/podcast/") {
		return u
	}
	return ""
}

func (Podcast) Matches(n *html.Node) Match {
	return Match{Matched: podcastURL(n) != ""}
}

func (Podcast) Build(b *Builder, n *html.Node) (map[string]any, error) {
	u := podcastURL(n)
	if u == "" {
		return nil, nil
	}
	comp, err := b.ExecuteSpec("podcast", "json", map[string]any{"url": u})
	if err != nil {
		return nil, err
	}
	comp["identifier"] = b.Identifier(anf.RolePodcast)
	comp["layout"] = b.bodyLayout()
	return comp, nil
}
