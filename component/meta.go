package component

import (
	"fmt"
	stdhtml "html"
	"strings"

	"anfc/anf"
	"anfc/anf/spec"
	"anfc/article"
)

// Metadata components are not matched from body markup, they render article
// envelope fields. Each returns (nil, nil) when its source field is empty so
// the assembler can walk meta_component_order unconditionally.

// MetaNames lists the metadata component names BuildMeta accepts.
var MetaNames = []string{"cover", "slug", "title", "byline", "author", "date", "intro"}

func (b *Builder) BuildMeta(name string, art *article.Envelope) (map[string]any, error) {
	switch name {
	case "cover":
		return b.buildCover(art)
	case "slug":
		return b.buildMetaText("slug", art.Slug, anf.RoleSection)
	case "title":
		return b.buildMetaText("title", art.Title, anf.RoleTitle)
	case "byline":
		return b.buildByline(art)
	case "author":
		return b.buildMetaText("author", art.Byline(), anf.RoleAuthor)
	case "date":
		return b.buildMetaText("date", b.formatDate(art), anf.RoleByline)
	case "intro":
		return b.buildMetaText("intro", art.Excerpt, anf.RoleIntro)
	default:
		return nil, fmt.Errorf("unknown metadata component %q", name)
	}
}

func (b *Builder) buildCover(art *article.Envelope) (map[string]any, error) {
	src := b.resolveURL(art.Cover)
	if src == "" {
		return nil, nil
	}
	comp, err := b.ExecuteSpec("cover", "json", map[string]any{"url": src})
	if err != nil {
		return nil, err
	}
	comp["identifier"] = b.Identifier("header")
	b.headerLayout()
	return comp, nil
}

func (b *Builder) buildMetaText(component, text, role string) (map[string]any, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	comp, err := b.ExecuteSpec(component, "json", map[string]any{
		"text": stdhtml.EscapeString(text),
	})
	if err != nil {
		return nil, err
	}
	comp["identifier"] = b.Identifier(role)
	comp["textStyle"] = b.metaTextStyle(metaStyleGroup(component))
	comp["layout"] = b.bodyLayout()
	return comp, nil
}

// metaStyleGroup maps a metadata component to its theme option group. The
// date component shares the byline typography.
func metaStyleGroup(component string) string {
	switch component {
	case "date", "author":
		return "byline"
	default:
		return component
	}
}

func (b *Builder) formatDate(art *article.Envelope) string {
	if art.Published.IsZero() {
		return ""
	}
	return art.Published.Format(b.Theme.GetString("date_format"))
}

// buildByline renders the theme's byline format string, "by #author# |
// #date#" unless changed. A missing source field unresolves its token and
// skips the component entirely, matching template substitution rules.
func (b *Builder) buildByline(art *article.Envelope) (map[string]any, error) {
	values := map[string]any{}
	if by := art.Byline(); by != "" {
		values["author"] = stdhtml.EscapeString(by)
	}
	if d := b.formatDate(art); d != "" {
		values["date"] = d
	}
	out, ok := spec.Substitute(spec.FromValue(b.Theme.GetString("byline_format")), values)
	if !ok {
		return nil, nil
	}
	text, _ := out.(string)
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	comp, err := b.ExecuteSpec("byline", "json", map[string]any{"text": text})
	if err != nil {
		return nil, err
	}
	comp["identifier"] = b.Identifier(anf.RoleByline)
	comp["textStyle"] = b.metaTextStyle("byline")
	comp["layout"] = b.bodyLayout()
	return comp, nil
}

// BuildAdvertisement emits a banner slot. The assembler spaces them through
// the body per the theme's ad_frequency.
func (b *Builder) BuildAdvertisement() (map[string]any, error) {
	if b.Theme.GetString("enable_advertisement") != "yes" {
		return nil, nil
	}
	comp, err := b.ExecuteSpec("advertisement", "json", nil)
	if err != nil {
		return nil, err
	}
	comp["identifier"] = b.Identifier(anf.RoleBanner)
	return comp, nil
}

// BuildOverrideOnly renders a component that exists only through a theme
// spec override: end of article and in-article slots. Without a non-empty
// override nothing is emitted.
func (b *Builder) BuildOverrideOnly(component string) (map[string]any, error) {
	if !b.HasOverride(component, "json") {
		return nil, nil
	}
	comp, err := b.ExecuteSpec(component, "json", nil)
	if err != nil {
		return nil, err
	}
	if len(comp) == 0 {
		return nil, nil
	}
	return comp, nil
}
