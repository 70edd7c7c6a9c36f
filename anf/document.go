// Package anf defines the Apple News Format document model produced by the
// exporter. Only the parts of the format this program emits are modeled,
// component bodies stay generic JSON maps since they are assembled from
// templated specs.
package anf

import (
	"encoding/json"
	"fmt"
)

// FormatVersion is the ANF version stamped into produced documents.
const FormatVersion = "1.7"

// Document is the top level ANF article.
type Document struct {
	Version             string           `json:"version"`
	Identifier          string           `json:"identifier"`
	Title               string           `json:"title"`
	Language            string           `json:"language,omitempty"`
	Layout              map[string]any   `json:"layout,omitempty"`
	DocumentStyle       map[string]any   `json:"documentStyle,omitempty"`
	Components          []map[string]any `json:"components"`
	ComponentTextStyles map[string]any   `json:"componentTextStyles"`
	ComponentLayouts    map[string]any   `json:"componentLayouts"`
	ComponentStyles     map[string]any   `json:"componentStyles"`
	Metadata            *Metadata        `json:"metadata,omitempty"`
}

// Metadata carries article level information that is not rendered as a
// component.
type Metadata struct {
	Authors          []string `json:"authors,omitempty"`
	Excerpt          string   `json:"excerpt,omitempty"`
	ThumbnailURL     string   `json:"thumbnailURL,omitempty"`
	DateCreated      string   `json:"dateCreated,omitempty"`
	DatePublished    string   `json:"datePublished,omitempty"`
	DateModified     string   `json:"dateModified,omitempty"`
	CanonicalURL     string   `json:"canonicalURL,omitempty"`
	GeneratorName    string   `json:"generatorName,omitempty"`
	GeneratorVersion string   `json:"generatorVersion,omitempty"`
}

// Serialize produces the final JSON document.
func (d *Document) Serialize() ([]byte, error) {
	if len(d.Identifier) == 0 {
		return nil, fmt.Errorf("document has no identifier")
	}
	if d.Components == nil {
		d.Components = []map[string]any{}
	}
	if d.ComponentTextStyles == nil {
		d.ComponentTextStyles = map[string]any{}
	}
	if d.ComponentLayouts == nil {
		d.ComponentLayouts = map[string]any{}
	}
	if d.ComponentStyles == nil {
		d.ComponentStyles = map[string]any{}
	}
	return json.MarshalIndent(d, "", "  ")
}
