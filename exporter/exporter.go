// Package exporter assembles complete ANF documents: metadata components in
// theme order, the parsed body walk, advertisement spacing, anchor
// resolution and the flattened style dictionaries.
package exporter

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"anfc/anf"
	"anfc/anf/spec"
	"anfc/anf/theme"
	"anfc/article"
	"anfc/component"
	"anfc/misc"
	"anfc/parser"
	"anfc/workspace"
)

// Hook stages. PreParse sees the raw article HTML, PostComponentBuild every
// component as it is appended, PreSerialize the finished document.
type (
	PreParseHook           func(html string) string
	PostComponentBuildHook func(comp map[string]any)
	PreSerializeHook       func(doc *anf.Document)
)

type Exporter struct {
	Theme       *theme.Theme
	Log         *zap.Logger
	Origin      string
	HTMLEnabled bool

	// Workspace, when set, receives per-component error log entries.
	// Component failures never abort an export.
	Workspace *workspace.Workspace

	preParse     []PreParseHook
	postBuild    []PostComponentBuildHook
	preSerialize []PreSerializeHook
}

func New(t *theme.Theme, log *zap.Logger) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{Theme: t, Log: log}
}

func (e *Exporter) OnPreParse(h PreParseHook)                   { e.preParse = append(e.preParse, h) }
func (e *Exporter) OnPostComponentBuild(h PostComponentBuildHook) { e.postBuild = append(e.postBuild, h) }
func (e *Exporter) OnPreSerialize(h PreSerializeHook)           { e.preSerialize = append(e.preSerialize, h) }

func (e *Exporter) logError(art *article.Envelope, key string, err error) {
	e.Log.Warn("Dropping component", zap.String("article", art.Identifier), zap.String("source", key), zap.Error(err))
	if e.Workspace != nil {
		if werr := e.Workspace.LogError(art.Identifier, key, err.Error()); werr != nil {
			e.Log.Warn("Unable to record error", zap.Error(werr))
		}
	}
}

// Export converts one article into an ANF document.
func (e *Exporter) Export(art *article.Envelope) (*anf.Document, error) {
	b := component.NewBuilder(e.Theme, e.Log, e.Origin, e.HTMLEnabled)

	var components []map[string]any
	add := func(c map[string]any) {
		for _, h := range e.postBuild {
			h(c)
		}
		components = append(components, c)
	}

	for _, name := range e.Theme.MetaComponentOrder() {
		c, err := b.BuildMeta(name, art)
		if err != nil {
			e.logError(art, "meta:"+name, err)
			continue
		}
		if c != nil {
			add(c)
		}
	}

	markup := art.HTML
	for _, h := range e.preParse {
		markup = h(markup)
	}

	adFrequency := e.Theme.GetInt("ad_frequency")
	bodies := 0
	inArticlePlaced := false

	for _, n := range parser.Fragment(markup) {
		built, err := b.Dispatch(n)
		if err != nil {
			e.logError(art, "component", err)
			continue
		}
		for _, c := range built {
			add(c)
			role, _ := c["role"].(string)
			if role != anf.RoleBody {
				continue
			}
			bodies++
			if !inArticlePlaced {
				inArticlePlaced = true
				if ia, err := b.BuildOverrideOnly("in_article"); err != nil {
					e.logError(art, "in_article", err)
				} else if ia != nil {
					add(ia)
				}
			}
			if adFrequency > 0 && bodies%adFrequency == 0 {
				if ad, err := b.BuildAdvertisement(); err != nil {
					e.logError(art, "advertisement", err)
				} else if ad != nil {
					add(ad)
				}
			}
		}
	}

	if eoa, err := b.BuildOverrideOnly("end_of_article"); err != nil {
		e.logError(art, "end_of_article", err)
	} else if eoa != nil {
		add(eoa)
	}

	resolveAnchors(b, components)

	doc := &anf.Document{
		Version:             anf.FormatVersion,
		Identifier:          art.Identifier,
		Title:               art.Title,
		Language:            art.Language,
		Layout:              e.documentLayout(),
		DocumentStyle:       e.documentStyle(),
		Components:          components,
		ComponentTextStyles: b.TextStyles.Flatten(),
		ComponentLayouts:    b.Layouts.Flatten(),
		ComponentStyles:     b.ComponentStyles.Flatten(),
		Metadata:            e.metadata(art),
	}
	for _, h := range e.preSerialize {
		h(doc)
	}
	e.warnLeftoverTokens(art, doc)
	return doc, nil
}

func (e *Exporter) documentLayout() map[string]any {
	t := e.Theme
	return map[string]any{
		"columns": t.GetInt("layout_columns"),
		"width":   t.GetInt("layout_width"),
		"margin":  t.GetInt("layout_margin"),
		"gutter":  t.GetInt("layout_gutter"),
	}
}

func (e *Exporter) documentStyle() map[string]any {
	t := e.Theme
	style := map[string]any{
		"backgroundColor": t.GetString("document_background_color"),
	}
	if dark, ok := t.DarkVariant("document_background_color"); ok {
		style["conditional"] = []any{map[string]any{
			"backgroundColor": dark,
			"conditions": []any{map[string]any{
				"preferredColorScheme": "dark",
				"minSpecVersion":       "1.14",
			}},
		}}
	}
	return style
}

func (e *Exporter) metadata(art *article.Envelope) *anf.Metadata {
	m := &anf.Metadata{
		Authors:          art.Authors,
		Excerpt:          art.Excerpt,
		CanonicalURL:     art.Canonical,
		ThumbnailURL:     art.Thumbnail,
		GeneratorName:    misc.GetAppName(),
		GeneratorVersion: misc.GetVersion(),
	}
	if m.ThumbnailURL == "" {
		m.ThumbnailURL = art.Cover
	}
	if !art.Published.IsZero() {
		m.DatePublished = art.Published.Format(time.RFC3339)
		m.DateCreated = m.DatePublished
	}
	if !art.Modified.IsZero() {
		m.DateModified = art.Modified.Format(time.RFC3339)
	}
	return m
}

// resolveAnchors attaches each pending anchor to the first body component
// that follows it in document order. A request with no following body stays
// unanchored.
func resolveAnchors(b *component.Builder, components []map[string]any) {
	index := func(comp map[string]any) int {
		id, _ := comp["identifier"].(string)
		if id == "" {
			return -1
		}
		for i, c := range components {
			if cid, _ := c["identifier"].(string); cid == id {
				return i
			}
		}
		return -1
	}
	for _, p := range b.PendingAnchors() {
		at := index(p.Component)
		if at < 0 {
			continue
		}
		for i := at + 1; i < len(components); i++ {
			role, _ := components[i]["role"].(string)
			id, _ := components[i]["identifier"].(string)
			if role != anf.RoleBody || id == "" {
				continue
			}
			text, _ := components[i]["text"].(string)
			b.ResolveAnchor(p, id, plainText(text))
			break
		}
	}
}

// plainText strips markup from a component text so sentence ranges are
// computed over what the reader sees.
func plainText(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	var sb strings.Builder
	for _, n := range parser.Fragment(s) {
		sb.WriteString(parser.Text(n))
	}
	return sb.String()
}

// warnLeftoverTokens flags token-shaped strings that survived substitution,
// usually a sign of a broken theme override.
func (e *Exporter) warnLeftoverTokens(art *article.Envelope, doc *anf.Document) {
	for i, c := range doc.Components {
		if tokens := leftoverTokens(c); len(tokens) > 0 {
			e.logError(art, "tokens", fmt.Errorf("component %d still carries tokens %v", i, tokens))
		}
	}
}

func leftoverTokens(v any) []string {
	return spec.Tokens(spec.FromValue(v))
}
