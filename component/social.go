package component

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"anfc/anf"
	"anfc/parser"
)

// Social embeds all follow the same pattern: a provider blockquote produced
// by the CMS embed code, or a bare pasted status URL. Each provider gets its
// own type because News gives each its own role.

func socialURL(n *html.Node, markerClass string, hosts map[string]bool, pathOK func(string) bool) string {
	if n.Type != html.ElementNode {
		return ""
	}
	candidate := ""
	switch n.DataAtom {
	case atom.Blockquote, atom.Div, atom.Figure:
		if markerClass != "" && !parser.HasClass(n, markerClass) && !HasClassContains(n, markerClass) {
			return ""
		}
		for _, a := range parser.FindAll(n, atom.A) {
			href := strings.TrimSpace(parser.Attr(a, "href"))
			if hosts[urlHost(href)] && pathOK(href) {
				return href
			}
		}
		if cite := strings.TrimSpace(parser.Attr(n, "cite")); hosts[urlHost(cite)] && pathOK(cite) {
			return cite
		}
		if du := strings.TrimSpace(parser.Attr(n, "data-url")); hosts[urlHost(du)] && pathOK(du) {
			return du
		}
		return ""
	case atom.P:
		candidate = bareURL(n)
	}
	if hosts[urlHost(candidate)] && pathOK(candidate) {
		return candidate
	}
	return ""
}

func urlPathContains(sub string) func(string) bool {
	return func(raw string) bool { return strings.Contains(raw, sub) }
}

// Tweet matches Twitter/X status embeds.
type Tweet struct{}

func (Tweet) Name() string { return "tweet" }

var tweetHosts = map[string]bool{"twitter.com": true, "x.com": true, "mobile.twitter.com": true}

func tweetURL(n *html.Node) string {
	return socialURL(n, "twitter-tweet", tweetHosts, urlPathContains("/status/"))
}

func (Tweet) Matches(n *html.Node) Match {
	return Match{Matched: tweetURL(n) != ""}
}

func (Tweet) Build(b *Builder, n *html.Node) (map[string]any, error) {
	u := tweetURL(n)
	if u == "" {
		return nil, nil
	}
	// News only resolves twitter.com permalinks.
	if pu, err := url.Parse(u); err == nil {
		if h := strings.TrimPrefix(strings.ToLower(pu.Host), "www."); h == "x.com" || h == "mobile.twitter.com" {
			pu.Scheme = "https"
			pu.Host = "twitter.com"
			u = pu.String()
		}
	}
	comp, err := b.ExecuteSpec("tweet", "json", map[string]any{"url": u})
	if err != nil {
		return nil, err
	}
	comp["identifier"] = b.Identifier(anf.RoleTweet)
	comp["layout"] = b.bodyLayout()
	return comp, nil
}

// Instagram matches Instagram post embeds.
type Instagram struct{}

func (Instagram) Name() string { return "instagram" }

var instagramHosts = map[string]bool{"instagram.com": true, "instagr.am": true}

func instagramURL(n *html.Node) string {
	ok := func(raw string) bool {
		return strings.Contains(raw, "/p/") || strings.Contains(raw, "/reel/") || strings.Contains(raw, "/tv/")
	}
	return socialURL(n, "instagram-media", instagramHosts, ok)
}

func (Instagram) Matches(n *html.Node) Match {
	return Match{Matched: instagramURL(n) != ""}
}

func (Instagram) Build(b *Builder, n *html.Node) (map[string]any, error) {
	u := instagramURL(n)
	if u == "" {
		return nil, nil
	}
	comp, err := b.ExecuteSpec("instagram", "json", map[string]any{"url": u})
	if err != nil {
		return nil, err
	}
	comp["identifier"] = b.Identifier(anf.RoleInstagram)
	comp["layout"] = b.bodyLayout()
	return comp, nil
}

// Facebook matches Facebook post embeds.
type Facebook struct{}

func (Facebook) Name() string { return "facebook" }

var facebookHosts = map[string]bool{"facebook.com": true, "m.facebook.com": true}

func facebookURL(n *html.Node) string {
	ok := func(raw string) bool {
		return strings.Contains(raw, "/posts/") || strings.Contains(raw, "/videos/") ||
			strings.Contains(raw, "/photos/") || strings.Contains(raw, "story.php")
	}
	if u := socialURL(n, "fb-post", facebookHosts, ok); u != "" {
		return u
	}
	return socialURL(n, "fb-video", facebookHosts, ok)
}

func (Facebook) Matches(n *html.Node) Match {
	return Match{Matched: facebookURL(n) != ""}
}

func (Facebook) Build(b *Builder, n *html.Node) (map[string]any, error) {
	u := facebookURL(n)
	if u == "" {
		return nil, nil
	}
	comp, err := b.ExecuteSpec("facebook", "json", map[string]any{"url": u})
	if err != nil {
		return nil, err
	}
	comp["identifier"] = b.Identifier(anf.RoleFacebookPost)
	comp["layout"] = b.bodyLayout()
	return comp, nil
}

// TikTok matches TikTok video embeds.
type TikTok struct{}

func (TikTok) Name() string { return "tiktok" }

var tiktokHosts = map[string]bool{"tiktok.com": true}

func tiktokURL(n *html.Node) string {
	return socialURL(n, "tiktok-embed", tiktokHosts, urlPathContains("/video/"))
}

func (TikTok) Matches(n *html.Node) Match {
	return Match{Matched: tiktokURL(n) != ""}
}

func (TikTok) Build(b *Builder, n *html.Node) (map[string]any, error) {
	u := tiktokURL(n)
	if u == "" {
		return nil, nil
	}
	comp, err := b.ExecuteSpec("tiktok", "json", map[string]any{"url": u})
	if err != nil {
		return nil, err
	}
	comp["identifier"] = b.Identifier(anf.RoleTikTok)
	comp["layout"] = b.bodyLayout()
	return comp, nil
}
