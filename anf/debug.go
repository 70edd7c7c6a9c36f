package anf

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/maruel/natural"
)

type outlineWriter struct {
	w strings.Builder
}

func (ow *outlineWriter) line(depth int, format string, args ...any) {
	for range depth {
		ow.w.WriteString("  ")
	}
	fmt.Fprintf(&ow.w, format, args...)
	ow.w.WriteByte('\n')
}

// String returns a readable outline of the document structure. It exists
// solely for manual inspection during debugging.
func (d *Document) String() string {
	if d == nil {
		return "<nil Document>"
	}

	ow := &outlineWriter{}

	ow.line(0, "Document[%q] version[%s] language[%q]", d.Identifier, d.Version, d.Language)
	ow.line(0, "Title: %s", strconv.Quote(d.Title))
	if d.Metadata != nil {
		ow.line(0, "Metadata: authors[%d] published[%q] thumbnail[%q]",
			len(d.Metadata.Authors), d.Metadata.DatePublished, d.Metadata.ThumbnailURL)
	}

	ow.line(0, "Components: %d", len(d.Components))
	for i, c := range d.Components {
		dumpComponent(ow, 1, i, c)
	}

	dumpRegistry(ow, "Component text styles", d.ComponentTextStyles)
	dumpRegistry(ow, "Component styles", d.ComponentStyles)
	dumpRegistry(ow, "Component layouts", d.ComponentLayouts)

	return ow.w.String()
}

func dumpComponent(ow *outlineWriter, depth, idx int, c map[string]any) {
	role, _ := c["role"].(string)
	id, _ := c["identifier"].(string)

	attrs := make([]string, 0, 4)
	for _, key := range []string{"textStyle", "layout", "style", "URL"} {
		if v, ok := c[key].(string); ok && v != "" {
			attrs = append(attrs, fmt.Sprintf("%s=%q", key, v))
		}
	}
	suffix := ""
	if len(attrs) > 0 {
		suffix = " " + strings.Join(attrs, " ")
	}
	ow.line(depth, "Component[%d] role[%q] id[%q]%s", idx, role, id, suffix)

	if text, ok := c["text"].(string); ok {
		const limit = 60
		if len(text) > limit {
			text = text[:limit] + "..."
		}
		ow.line(depth+1, "text: %s", strconv.Quote(text))
	}
	if items, ok := c["items"].([]any); ok {
		ow.line(depth+1, "items: %d", len(items))
	}
	if nested, ok := c["components"].([]any); ok {
		for i, n := range nested {
			if m, ok := n.(map[string]any); ok {
				dumpComponent(ow, depth+1, i, m)
			}
		}
	}
}

func dumpRegistry(ow *outlineWriter, label string, reg map[string]any) {
	if len(reg) == 0 {
		return
	}
	ow.line(0, "%s: %d", label, len(reg))
	keys := slices.Collect(maps.Keys(reg))
	sort.Sort(natural.StringSlice(keys))
	for _, k := range keys {
		ow.line(1, "%s", k)
	}
}
