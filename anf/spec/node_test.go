package spec

import (
	"reflect"
	"testing"
)

func TestFromValue_TokenDetection(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Node
	}{
		{"plain string", "hello", Literal{Value: "hello"}},
		{"exact token", "#text#", Token{Name: "text"}},
		{"percent is not a token", "#100%#", Literal{Value: "#100%#"}},
		{"empty token is not a token", "##", Literal{Value: "##"}},
		{"number", 42, Literal{Value: 42}},
		{"mixed string", "url: #url#!", Interp{Parts: []Node{
			Literal{Value: "url: "}, Token{Name: "url"}, Literal{Value: "!"},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromValue(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FromValue(%v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokens(t *testing.T) {
	tmpl := FromValue(map[string]any{
		"role": "body",
		"text": "#text#",
		"style": map[string]any{
			"backgroundColor": "#background_color#",
		},
		"items": []any{"#url#", "literal"},
	})
	got := Tokens(tmpl)
	want := []string{"background_color", "text", "url"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens() = %v, want %v", got, want)
	}
}

func TestSubstitute_DropsUnresolved(t *testing.T) {
	tmpl := FromValue(map[string]any{
		"role":    "photo",
		"URL":     "#url#",
		"caption": "#caption#",
	})
	got := Execute(tmpl, map[string]any{"url": "https://example.com/a.jpg"})
	want := map[string]any{
		"role": "photo",
		"URL":  "https://example.com/a.jpg",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Execute() = %v, want %v", got, want)
	}
	if _, exists := got["caption"]; exists {
		t.Error("unresolved token must be removed from parent")
	}
}

func TestSubstitute_ArraySlotDropped(t *testing.T) {
	tmpl := FromValue(map[string]any{
		"components": []any{"#first#", "#second#"},
	})
	got := Execute(tmpl, map[string]any{"second": "kept"})
	comps, ok := got["components"].([]any)
	if !ok || len(comps) != 1 || comps[0] != "kept" {
		t.Errorf("unresolved array slot not dropped: %v", got)
	}
}

func TestSubstitute_NonScalarValue(t *testing.T) {
	tmpl := FromValue(map[string]any{"layout": "#layout#"})
	layout := map[string]any{"columnStart": 0, "columnSpan": 7}
	got := Execute(tmpl, map[string]any{"layout": layout})
	if !reflect.DeepEqual(got["layout"], layout) {
		t.Errorf("token should accept structured values, got %v", got["layout"])
	}
}

func TestSubstitute_Idempotent(t *testing.T) {
	tmpl := FromValue(map[string]any{
		"role": "body",
		"text": "#text#",
		"note": "prefix #missing# suffix",
	})
	values := map[string]any{"text": "Hello"}

	once := Execute(tmpl, values)
	again := Execute(FromValue(anyify(once)), values)
	if !reflect.DeepEqual(once, again) {
		t.Errorf("substitution is not idempotent: %v vs %v", once, again)
	}
}

// anyify round-trips through generic containers the way json decoding would.
func anyify(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func TestValidateOverride(t *testing.T) {
	def := FromValue(map[string]any{"URL": "#url#", "caption": "#caption#"})

	ok := FromValue(map[string]any{"URL": "#url#"})
	if err := ValidateOverride(def, ok); err != nil {
		t.Errorf("subset override rejected: %v", err)
	}

	bad := FromValue(map[string]any{"URL": "#url#", "title": "#title#"})
	if err := ValidateOverride(def, bad); err == nil {
		t.Error("override introducing new token must be rejected")
	}
}

func TestParseJSON(t *testing.T) {
	n, err := ParseJSON([]byte(`{"role":"quote","text":"#text#","layout":{"margin":10}}`))
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}
	got := Tokens(n)
	if len(got) != 1 || got[0] != "text" {
		t.Errorf("Tokens() = %v, want [text]", got)
	}

	if _, err := ParseJSON([]byte(`{broken`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
