package component

import (
	"fmt"

	"go.uber.org/zap"
)

// registerTextStyle registers a text style, logging a collision instead of
// failing the build. Collisions cannot happen for theme-derived styles since
// the same name always maps to the same value within one document.
func (b *Builder) registerTextStyle(name string, v map[string]any) string {
	n, err := b.TextStyles.Register(name, v)
	if err != nil {
		b.Log.Warn("Text style collision", zap.String("name", name), zap.Error(err))
		return name
	}
	return n
}

func (b *Builder) registerComponentStyle(name string, v map[string]any) string {
	n, err := b.ComponentStyles.Register(name, v)
	if err != nil {
		b.Log.Warn("Component style collision", zap.String("name", name), zap.Error(err))
		return name
	}
	return n
}

func (b *Builder) registerLayout(name string, v map[string]any) string {
	n, err := b.Layouts.Register(name, v)
	if err != nil {
		b.Log.Warn("Layout collision", zap.String("name", name), zap.Error(err))
		return name
	}
	return n
}

// darkColor returns a single-property dark override when the theme defines a
// dark variant for key.
func (b *Builder) darkColor(key, prop string) map[string]any {
	if c, ok := b.Theme.DarkVariant(key); ok {
		return map[string]any{prop: c}
	}
	return nil
}

// bodyTextStyle registers the body text style for an alignment, with the
// dropcap variant when asked.
func (b *Builder) bodyTextStyle(align string, dropcap bool) string {
	t := b.Theme
	style := map[string]any{
		"fontName":   t.GetString("body_font"),
		"fontSize":   t.GetInt("body_size"),
		"lineHeight": t.GetFloat("body_line_height"),
		"textColor":  t.GetString("body_color"),
		"linkStyle": map[string]any{
			"textColor": t.GetString("body_link_color"),
		},
	}
	if tr := t.GetInt("body_tracking"); tr != 0 {
		style["tracking"] = float64(tr) / 100
	}
	alignment := align
	if alignment == "" {
		alignment = t.GetString("body_orientation")
	}
	if alignment != "left" {
		style["textAlignment"] = alignment
	}
	dark := b.darkColor("body_color", "textColor")
	if ls := b.darkColor("body_link_color", "textColor"); ls != nil {
		if dark == nil {
			dark = map[string]any{}
		}
		dark["linkStyle"] = ls
	}
	if cond := conditionalDark(dark); cond != nil {
		style["conditional"] = cond
	}
	name := StyleName("default-body", align)
	if dropcap {
		style["dropCapStyle"] = map[string]any{
			"numberOfLines":      t.GetInt("dropcap_number_of_lines"),
			"numberOfCharacters": t.GetInt("dropcap_number_of_characters"),
			"fontName":           t.GetString("dropcap_font"),
			"textColor":          t.GetString("dropcap_color"),
			"padding":            5,
		}
		name = StyleName("dropcap-body", align)
	}
	return b.registerTextStyle(name, style)
}

// monospacedTextStyle serves preformatted blocks.
func (b *Builder) monospacedTextStyle() string {
	t := b.Theme
	style := map[string]any{
		"fontName":  t.GetString("monospaced_font"),
		"fontSize":  t.GetInt("monospaced_size"),
		"textColor": t.GetString("monospaced_color"),
	}
	if cond := conditionalDark(b.darkColor("monospaced_color", "textColor")); cond != nil {
		style["conditional"] = cond
	}
	return b.registerTextStyle("default-monospaced", style)
}

func (b *Builder) headingTextStyle(level int) string {
	t := b.Theme
	size := t.GetInt(fmt.Sprintf("header%d_size", level))
	style := map[string]any{
		"fontName":   t.GetString("header_font"),
		"fontSize":   size,
		"lineHeight": float64(size) * t.GetFloat("header_line_height"),
		"textColor":  t.GetString("header_color"),
	}
	if cond := conditionalDark(b.darkColor("header_color", "textColor")); cond != nil {
		style["conditional"] = cond
	}
	return b.registerTextStyle(fmt.Sprintf("default-heading-%d", level), style)
}

// metaTextStyle covers the single-group metadata components: title, intro,
// byline, author, date and slug all carry font, size and color options under
// their group prefix.
func (b *Builder) metaTextStyle(group string) string {
	t := b.Theme
	style := map[string]any{
		"fontName":  t.GetString(group + "_font"),
		"fontSize":  t.GetInt(group + "_size"),
		"textColor": t.GetString(group + "_color"),
	}
	if cond := conditionalDark(b.darkColor(group+"_color", "textColor")); cond != nil {
		style["conditional"] = cond
	}
	return b.registerTextStyle("default-"+group, style)
}

func (b *Builder) captionTextStyle() string {
	return b.metaTextStyle("caption")
}

// blockquoteStyles registers the text and component styles for a blockquote
// and returns both names.
func (b *Builder) blockquoteStyles(align string) (textStyle, componentStyle string) {
	t := b.Theme
	ts := map[string]any{
		"fontName":  t.GetString("blockquote_font"),
		"fontSize":  t.GetInt("blockquote_size"),
		"textColor": t.GetString("blockquote_color"),
	}
	if align != "" && align != "left" {
		ts["textAlignment"] = align
	}
	if cond := conditionalDark(b.darkColor("blockquote_color", "textColor")); cond != nil {
		ts["conditional"] = cond
	}
	cs := map[string]any{
		"backgroundColor": t.GetString("blockquote_background_color"),
	}
	if style := t.GetString("blockquote_border_style"); style != "none" {
		cs["border"] = map[string]any{
			"all": map[string]any{
				"width": t.GetInt("blockquote_border_width"),
				"style": style,
				"color": t.GetString("blockquote_border_color"),
			},
			"top":    false,
			"bottom": false,
			"right":  false,
		}
	}
	if cond := conditionalDark(b.darkColor("blockquote_background_color", "backgroundColor")); cond != nil {
		cs["conditional"] = cond
	}
	return b.registerTextStyle(StyleName("default-blockquote", align), ts),
		b.registerComponentStyle(StyleName("default-blockquote-style", align), cs)
}

func (b *Builder) pullquoteTextStyle(align string) string {
	t := b.Theme
	style := map[string]any{
		"fontName":      t.GetString("pullquote_font"),
		"fontSize":      t.GetInt("pullquote_size"),
		"textColor":     t.GetString("pullquote_color"),
		"textAlignment": "center",
	}
	if align != "" {
		style["textAlignment"] = align
	}
	if tr := t.GetString("pullquote_transform"); tr != "none" {
		style["textTransform"] = tr
	}
	if cond := conditionalDark(b.darkColor("pullquote_color", "textColor")); cond != nil {
		style["conditional"] = cond
	}
	return b.registerTextStyle(StyleName("default-pullquote", align), style)
}

// tableComponentStyle registers the table style dictionary.
func (b *Builder) tableComponentStyle() string {
	t := b.Theme
	border := map[string]any{
		"all": map[string]any{
			"width": 1,
			"style": "solid",
			"color": t.GetString("table_border_color"),
		},
	}
	style := map[string]any{
		"tableStyle": map[string]any{
			"headerRows": map[string]any{
				"backgroundColor": t.GetString("table_header_background_color"),
			},
			"cells": map[string]any{
				"fontName": t.GetString("table_body_font"),
				"fontSize": t.GetInt("table_body_size"),
				"padding":  6,
				"border":   border,
			},
		},
	}
	return b.registerComponentStyle("default-table-style", style)
}

// Layouts. Names are stable within the document, values derive from the
// layout_* theme group.

func (b *Builder) bodyLayout() string {
	t := b.Theme
	return b.registerLayout("body-layout", map[string]any{
		"columnStart": 0,
		"columnSpan":  t.GetInt("layout_columns"),
		"margin": map[string]any{
			"top":    t.GetInt("layout_gutter"),
			"bottom": t.GetInt("layout_gutter"),
		},
	})
}

func (b *Builder) headerLayout() string {
	return b.registerLayout("header-layout", map[string]any{
		"columnStart":          0,
		"columnSpan":           b.Theme.GetInt("layout_columns"),
		"ignoreDocumentMargin": true,
		"minimumHeight":        "50vh",
		"margin": map[string]any{
			"top":    0,
			"bottom": b.Theme.GetInt("layout_gutter"),
		},
	})
}

// imageLayout is the default media layout, spanning the full document margin
// when full bleed is on.
func (b *Builder) imageLayout() string {
	t := b.Theme
	if t.GetString("full_bleed_images") == "yes" {
		return b.registerLayout("full-bleed-image", map[string]any{
			"ignoreDocumentMargin": true,
			"margin": map[string]any{
				"top":    t.GetInt("layout_gutter"),
				"bottom": t.GetInt("layout_gutter"),
			},
		})
	}
	return b.registerLayout("default-image", map[string]any{
		"columnStart": 0,
		"columnSpan":  t.GetInt("layout_columns"),
		"margin": map[string]any{
			"top":    t.GetInt("layout_gutter"),
			"bottom": t.GetInt("layout_gutter"),
		},
	})
}

// anchoredLayout halves the column span for components attached to a body
// paragraph's side.
func (b *Builder) anchoredLayout() map[string]any {
	t := b.Theme
	span := t.GetInt("layout_columns") / 2
	if span < 1 {
		span = 1
	}
	return map[string]any{
		"columnSpan": span,
		"margin": map[string]any{
			"top":    t.GetInt("layout_gutter"),
			"bottom": t.GetInt("layout_gutter"),
		},
	}
}

func (b *Builder) quoteLayout() string {
	t := b.Theme
	return b.registerLayout("quote-layout", map[string]any{
		"columnStart":  0,
		"columnSpan":   t.GetInt("layout_columns"),
		"contentInset": true,
		"margin": map[string]any{
			"top":    t.GetInt("layout_gutter"),
			"bottom": t.GetInt("layout_gutter"),
		},
	})
}

func (b *Builder) dividerLayout() string {
	t := b.Theme
	return b.registerLayout("divider-layout", map[string]any{
		"columnStart": t.GetInt("layout_columns") / 3,
		"columnSpan":  t.GetInt("layout_columns") / 3,
		"margin": map[string]any{
			"top":    t.GetInt("layout_gutter"),
			"bottom": t.GetInt("layout_gutter"),
		},
	})
}

func (b *Builder) galleryLayout() string {
	t := b.Theme
	return b.registerLayout("gallery-layout", map[string]any{
		"ignoreDocumentMargin": true,
		"margin": map[string]any{
			"top":    t.GetInt("layout_gutter"),
			"bottom": t.GetInt("layout_gutter"),
		},
	})
}
