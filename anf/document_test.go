package anf

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSerialize(t *testing.T) {
	doc := &Document{
		Version:    FormatVersion,
		Identifier: "doc-1",
		Title:      "Test",
		Components: []map[string]any{
			{"role": "body", "text": "hello"},
		},
	}

	data, err := doc.Serialize()
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	var round map[string]any
	if err := json.Unmarshal(data, &round); err != nil {
		t.Fatalf("produced document is not valid JSON: %v", err)
	}
	if round["version"] != FormatVersion {
		t.Errorf("version = %v, want %s", round["version"], FormatVersion)
	}
	// empty registries must be present as objects, not dropped
	for _, key := range []string{"componentTextStyles", "componentLayouts", "componentStyles"} {
		if _, ok := round[key].(map[string]any); !ok {
			t.Errorf("expected %s to serialize as an object", key)
		}
	}
}

func TestSerialize_NoIdentifier(t *testing.T) {
	doc := &Document{Version: FormatVersion, Title: "Test"}
	if _, err := doc.Serialize(); err == nil {
		t.Fatal("expected error for document without identifier")
	}
}

func TestDocumentString(t *testing.T) {
	var nilDoc *Document
	if nilDoc.String() != "<nil Document>" {
		t.Error("nil document outline")
	}

	doc := &Document{
		Version:    FormatVersion,
		Identifier: "doc-1",
		Title:      "Test",
		Components: []map[string]any{
			{"role": "header", "identifier": "header-1", "layout": "header-layout"},
			{"role": "container", "components": []any{
				map[string]any{"role": "body", "text": "nested text"},
			}},
		},
		ComponentLayouts: map[string]any{"body-layout": map[string]any{}},
	}

	out := doc.String()
	for _, want := range []string{`role["header"]`, `layout="header-layout"`, `"nested text"`, "body-layout"} {
		if !strings.Contains(out, want) {
			t.Errorf("outline missing %q:\n%s", want, out)
		}
	}
}
