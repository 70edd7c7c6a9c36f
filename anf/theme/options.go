// Package theme implements named configuration profiles consumed by the
// article transformer: a bag of typed formatting settings with per-field
// validation, dark mode variants and component spec overrides.
package theme

// OptionType enumerates supported setting types.
type OptionType int

const (
	TypeInteger OptionType = iota
	TypeFloat
	TypeBoolean
	TypeColor
	TypeFont
	TypeSelect
	TypeText
	TypeArray
)

func (t OptionType) String() string {
	switch t {
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeBoolean:
		return "boolean"
	case TypeColor:
		return "color"
	case TypeFont:
		return "font"
	case TypeSelect:
		return "select"
	case TypeText:
		return "text"
	case TypeArray:
		return "array"
	default:
		// this should never happen
		panic("unsupported option type")
	}
}

// Option declares a single theme setting.
type Option struct {
	Key     string
	Type    OptionType
	Default any
	Choices []string // select: allowed values, array: allowed element values
	Min     float64  // numeric bounds, used when Min != Max
	Max     float64
}

// MetaComponents lists metadata component names accepted in
// meta_component_order.
var MetaComponents = []string{"cover", "slug", "title", "byline", "author", "date", "intro"}

// options is the closed table of known theme settings with their defaults.
// Dark variants default to empty string which means "no dark branch".
var options = []Option{
	// layout
	{Key: "layout_margin", Type: TypeInteger, Default: 100, Min: 0, Max: 300},
	{Key: "layout_gutter", Type: TypeInteger, Default: 20, Min: 0, Max: 100},
	{Key: "layout_width", Type: TypeInteger, Default: 1024, Min: 320, Max: 4096},
	{Key: "layout_columns", Type: TypeInteger, Default: 9, Min: 1, Max: 20},

	// document canvas
	{Key: "document_background_color", Type: TypeColor, Default: "#fafafa"},
	{Key: "document_background_color_dark", Type: TypeColor, Default: ""},

	// body
	{Key: "body_font", Type: TypeFont, Default: "AvenirNext-Regular"},
	{Key: "body_size", Type: TypeInteger, Default: 18, Min: 8, Max: 64},
	{Key: "body_line_height", Type: TypeFloat, Default: 24.0, Min: 8, Max: 96},
	{Key: "body_tracking", Type: TypeInteger, Default: 0, Min: -10, Max: 50},
	{Key: "body_color", Type: TypeColor, Default: "#4f4f4f"},
	{Key: "body_color_dark", Type: TypeColor, Default: ""},
	{Key: "body_link_color", Type: TypeColor, Default: "#428bca"},
	{Key: "body_link_color_dark", Type: TypeColor, Default: ""},
	{Key: "body_background_color", Type: TypeColor, Default: "#fafafa"},
	{Key: "body_background_color_dark", Type: TypeColor, Default: ""},
	{Key: "body_orientation", Type: TypeSelect, Default: "left", Choices: []string{"left", "center", "right", "justified"}},

	// dropcap
	{Key: "initial_dropcap", Type: TypeSelect, Default: "no", Choices: []string{"yes", "no"}},
	{Key: "dropcap_font", Type: TypeFont, Default: "AvenirNext-Bold"},
	{Key: "dropcap_color", Type: TypeColor, Default: "#4f4f4f"},
	{Key: "dropcap_color_dark", Type: TypeColor, Default: ""},
	{Key: "dropcap_number_of_lines", Type: TypeInteger, Default: 4, Min: 2, Max: 10},
	{Key: "dropcap_number_of_characters", Type: TypeInteger, Default: 1, Min: 1, Max: 10},

	// headings
	{Key: "header_font", Type: TypeFont, Default: "AvenirNext-Bold"},
	{Key: "header_color", Type: TypeColor, Default: "#333333"},
	{Key: "header_color_dark", Type: TypeColor, Default: ""},
	{Key: "header_line_height", Type: TypeFloat, Default: 1.2, Min: 0.5, Max: 4},
	{Key: "header1_size", Type: TypeInteger, Default: 48, Min: 8, Max: 128},
	{Key: "header2_size", Type: TypeInteger, Default: 32, Min: 8, Max: 128},
	{Key: "header3_size", Type: TypeInteger, Default: 24, Min: 8, Max: 128},
	{Key: "header4_size", Type: TypeInteger, Default: 21, Min: 8, Max: 128},
	{Key: "header5_size", Type: TypeInteger, Default: 18, Min: 8, Max: 128},
	{Key: "header6_size", Type: TypeInteger, Default: 16, Min: 8, Max: 128},

	// title / intro / byline / slug
	{Key: "title_font", Type: TypeFont, Default: "AvenirNext-Bold"},
	{Key: "title_size", Type: TypeInteger, Default: 50, Min: 8, Max: 128},
	{Key: "title_color", Type: TypeColor, Default: "#333333"},
	{Key: "title_color_dark", Type: TypeColor, Default: ""},
	{Key: "intro_font", Type: TypeFont, Default: "AvenirNext-Medium"},
	{Key: "intro_size", Type: TypeInteger, Default: 24, Min: 8, Max: 96},
	{Key: "intro_color", Type: TypeColor, Default: "#4f4f4f"},
	{Key: "intro_color_dark", Type: TypeColor, Default: ""},
	{Key: "byline_font", Type: TypeFont, Default: "AvenirNext-Medium"},
	{Key: "byline_size", Type: TypeInteger, Default: 13, Min: 6, Max: 48},
	{Key: "byline_color", Type: TypeColor, Default: "#7c7c7c"},
	{Key: "byline_color_dark", Type: TypeColor, Default: ""},
	{Key: "byline_format", Type: TypeText, Default: "by #author# | #date#"},
	{Key: "date_format", Type: TypeText, Default: "Jan 2, 2006"},
	{Key: "slug_font", Type: TypeFont, Default: "AvenirNext-Medium"},
	{Key: "slug_size", Type: TypeInteger, Default: 14, Min: 6, Max: 48},
	{Key: "slug_color", Type: TypeColor, Default: "#428bca"},
	{Key: "slug_color_dark", Type: TypeColor, Default: ""},

	// captions
	{Key: "caption_font", Type: TypeFont, Default: "AvenirNext-Italic"},
	{Key: "caption_size", Type: TypeInteger, Default: 13, Min: 6, Max: 48},
	{Key: "caption_color", Type: TypeColor, Default: "#7c7c7c"},
	{Key: "caption_color_dark", Type: TypeColor, Default: ""},

	// quotes
	{Key: "blockquote_font", Type: TypeFont, Default: "AvenirNext-Regular"},
	{Key: "blockquote_size", Type: TypeInteger, Default: 24, Min: 8, Max: 96},
	{Key: "blockquote_color", Type: TypeColor, Default: "#4f4f4f"},
	{Key: "blockquote_color_dark", Type: TypeColor, Default: ""},
	{Key: "blockquote_background_color", Type: TypeColor, Default: "#e1e1e1"},
	{Key: "blockquote_background_color_dark", Type: TypeColor, Default: ""},
	{Key: "blockquote_border_color", Type: TypeColor, Default: "#4f4f4f"},
	{Key: "blockquote_border_style", Type: TypeSelect, Default: "solid", Choices: []string{"solid", "dashed", "dotted", "none"}},
	{Key: "blockquote_border_width", Type: TypeInteger, Default: 3, Min: 0, Max: 20},
	{Key: "pullquote_font", Type: TypeFont, Default: "AvenirNext-Bold"},
	{Key: "pullquote_size", Type: TypeInteger, Default: 48, Min: 8, Max: 128},
	{Key: "pullquote_color", Type: TypeColor, Default: "#53585f"},
	{Key: "pullquote_color_dark", Type: TypeColor, Default: ""},
	{Key: "pullquote_transform", Type: TypeSelect, Default: "none", Choices: []string{"none", "uppercase"}},

	// tables
	{Key: "table_body_font", Type: TypeFont, Default: "AvenirNext-Regular"},
	{Key: "table_body_size", Type: TypeInteger, Default: 16, Min: 6, Max: 64},
	{Key: "table_border_color", Type: TypeColor, Default: "#e1e1e1"},
	{Key: "table_border_color_dark", Type: TypeColor, Default: ""},
	{Key: "table_header_background_color", Type: TypeColor, Default: "#e1e1e1"},
	{Key: "table_header_background_color_dark", Type: TypeColor, Default: ""},

	// monospace / code
	{Key: "monospaced_font", Type: TypeFont, Default: "Menlo-Regular"},
	{Key: "monospaced_size", Type: TypeInteger, Default: 16, Min: 6, Max: 64},
	{Key: "monospaced_color", Type: TypeColor, Default: "#4f4f4f"},
	{Key: "monospaced_color_dark", Type: TypeColor, Default: ""},

	// behavior toggles
	{Key: "full_bleed_images", Type: TypeSelect, Default: "no", Choices: []string{"yes", "no"}},
	{Key: "gallery_type", Type: TypeSelect, Default: "gallery", Choices: []string{"gallery", "mosaic"}},
	{Key: "enable_advertisement", Type: TypeSelect, Default: "yes", Choices: []string{"yes", "no"}},
	{Key: "ad_frequency", Type: TypeInteger, Default: 5, Min: 1, Max: 10},
	{Key: "cover_caption", Type: TypeBoolean, Default: false},

	// header region composition
	{Key: "meta_component_order", Type: TypeArray,
		Default: []string{"cover", "slug", "title", "byline"}, Choices: MetaComponents},
}

// fonts is the allow-list of font names accepted by font options. It follows
// the set of fonts preinstalled on iOS devices.
var fonts = []string{
	"AmericanTypewriter", "AmericanTypewriter-Bold",
	"AvenirNext-Regular", "AvenirNext-Medium", "AvenirNext-DemiBold",
	"AvenirNext-Bold", "AvenirNext-Italic", "AvenirNext-MediumItalic",
	"AvenirNextCondensed-Regular", "AvenirNextCondensed-Bold",
	"Baskerville", "Baskerville-Bold", "Baskerville-Italic",
	"Georgia", "Georgia-Bold", "Georgia-Italic",
	"Gill Sans", "GillSans-Bold", "GillSans-Italic",
	"HelveticaNeue", "HelveticaNeue-Medium", "HelveticaNeue-Bold",
	"HelveticaNeue-Italic", "HelveticaNeue-Light", "HelveticaNeue-Thin",
	"Menlo-Regular", "Menlo-Bold", "Menlo-Italic",
	"Palatino-Roman", "Palatino-Bold", "Palatino-Italic",
	"TimesNewRomanPSMT", "TimesNewRomanPS-BoldMT", "TimesNewRomanPS-ItalicMT",
	"Verdana", "Verdana-Bold", "Verdana-Italic",
}

var (
	optionIndex = func() map[string]*Option {
		idx := make(map[string]*Option, len(options))
		for i := range options {
			idx[options[i].Key] = &options[i]
		}
		return idx
	}()
	fontIndex = func() map[string]struct{} {
		idx := make(map[string]struct{}, len(fonts))
		for _, f := range fonts {
			idx[f] = struct{}{}
		}
		return idx
	}()
)

// Options returns the declared option table, in declaration order.
func Options() []Option {
	return options
}

// LookupOption returns the declaration for a known key.
func LookupOption(key string) (*Option, bool) {
	o, ok := optionIndex[key]
	return o, ok
}

// KnownFont reports whether the name is in the font allow-list.
func KnownFont(name string) bool {
	_, ok := fontIndex[name]
	return ok
}
