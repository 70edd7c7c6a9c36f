package component

import (
	"anfc/anf/spec"
)

// defaultSpecs holds the built-in JSON template for every component spec.
// Theme overrides replace a template wholesale but may only consume a subset
// of its tokens; an override failing that check is discarded in favor of the
// entry here.
var defaultSpecs = map[string]map[string]map[string]any{
	"body": {
		"json": {
			"role":   "body",
			"text":   "#text#",
			"format": "#format#",
		},
	},
	"heading": {
		"json": {
			"role":   "#role#",
			"text":   "#text#",
			"format": "#format#",
		},
	},
	"image": {
		"json": {
			"role": "photo",
			"URL":  "#url#",
		},
		"json-with-caption": {
			"role":                 "photo",
			"URL":                  "#url#",
			"caption":              "#caption#",
			"accessibilityCaption": "#caption#",
		},
	},
	"gallery": {
		"json": {
			"role":  "#role#",
			"items": "#items#",
		},
	},
	"video": {
		"json": {
			"role": "video",
			"URL":  "#url#",
		},
		"json-with-still": {
			"role":     "video",
			"URL":      "#url#",
			"stillURL": "#still#",
		},
	},
	"audio": {
		"json": {
			"role": "audio",
			"URL":  "#url#",
		},
	},
	"music": {
		"json": {
			"role": "music",
			"URL":  "#url#",
		},
	},
	"podcast": {
		"json": {
			"role": "podcast",
			"URL":  "#url#",
		},
	},
	"embed_video": {
		"json": {
			"role":        "embedwebvideo",
			"URL":         "#url#",
			"aspectRatio": "#aspect_ratio#",
		},
	},
	"tweet": {
		"json": {
			"role": "tweet",
			"URL":  "#url#",
		},
	},
	"instagram": {
		"json": {
			"role": "instagram",
			"URL":  "#url#",
		},
	},
	"facebook": {
		"json": {
			"role": "facebook_post",
			"URL":  "#url#",
		},
	},
	"tiktok": {
		"json": {
			"role": "tiktok",
			"URL":  "#url#",
		},
	},
	"embed_generic": {
		"json": {
			"role": "container",
			"components": []any{
				map[string]any{
					"role":   "heading2",
					"text":   "#title#",
					"format": "html",
				},
				map[string]any{
					"role":   "body",
					"text":   "<a href=\"#url#\">View content</a>",
					"format": "html",
				},
			},
		},
	},
	"quote": {
		"json": {
			"role":   "quote",
			"text":   "#text#",
			"format": "#format#",
		},
		"json-pullquote": {
			"role":   "pullquote",
			"text":   "#text#",
			"format": "#format#",
		},
	},
	"table": {
		"json": {
			"role": "htmltable",
			"html": "#html#",
		},
	},
	"divider": {
		"json": {
			"role": "divider",
			"stroke": map[string]any{
				"color": "#color#",
				"width": "#width#",
			},
		},
	},
	"link_button": {
		"json": {
			"role": "link_button",
			"URL":  "#url#",
			"text": "#text#",
		},
	},
	"cover": {
		"json": {
			"role":   "header",
			"layout": "header-layout",
			"style": map[string]any{
				"fill": map[string]any{
					"type":                "image",
					"URL":                 "#url#",
					"fillMode":            "cover",
					"verticalAlignment":   "center",
					"horizontalAlignment": "center",
				},
			},
		},
	},
	"title": {
		"json": {
			"role":   "title",
			"text":   "#text#",
			"format": "html",
		},
	},
	"slug": {
		"json": {
			"role":   "heading",
			"text":   "#text#",
			"format": "html",
		},
	},
	"byline": {
		"json": {
			"role":   "byline",
			"text":   "#text#",
			"format": "html",
		},
	},
	"author": {
		"json": {
			"role":   "author",
			"text":   "#text#",
			"format": "html",
		},
	},
	"date": {
		"json": {
			"role":   "byline",
			"text":   "#text#",
			"format": "html",
		},
	},
	"intro": {
		"json": {
			"role":   "intro",
			"text":   "#text#",
			"format": "html",
		},
	},
	"advertisement": {
		"json": {
			"role":       "banner_advertisement",
			"bannerType": "any",
		},
	},
	"end_of_article": {
		"json": {},
	},
	"in_article": {
		"json": {},
	},
}

// DefaultSpec returns the built-in template for a component spec.
func DefaultSpec(component, specName string) (map[string]any, bool) {
	specs, ok := defaultSpecs[component]
	if !ok {
		return nil, false
	}
	tmpl, ok := specs[specName]
	return tmpl, ok
}

// DefaultSpecTokens lists the tokens consumed by a built-in spec. It feeds
// theme override validation, which must not accept an override introducing
// tokens the renderer never supplies.
func DefaultSpecTokens(component, specName string) ([]string, bool) {
	tmpl, ok := DefaultSpec(component, specName)
	if !ok {
		return nil, false
	}
	return spec.Tokens(spec.FromValue(tmpl)), true
}
