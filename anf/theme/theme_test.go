package theme

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestGet_Defaults(t *testing.T) {
	th := New("empty")
	if got := th.GetInt("body_size"); got != 18 {
		t.Errorf("body_size default = %d, want 18", got)
	}
	if got := th.GetString("body_color"); got != "#4f4f4f" {
		t.Errorf("body_color default = %q, want #4f4f4f", got)
	}
	if got := th.Get("no_such_setting"); got != nil {
		t.Errorf("unknown key should produce nil, got %v", got)
	}
	order := th.MetaComponentOrder()
	if !reflect.DeepEqual(order, []string{"cover", "slug", "title", "byline"}) {
		t.Errorf("meta_component_order default = %v", order)
	}
}

func TestSet_Validation(t *testing.T) {
	th := New("t")

	tests := []struct {
		key   string
		value any
		ok    bool
	}{
		{"body_size", 20, true},
		{"body_size", 2000, false},
		{"body_size", "big", false},
		{"body_line_height", 26.5, true},
		{"body_color", "#ffffff", true},
		{"body_color", "#fff", true},
		{"body_color", "rgba(10, 20, 30, 0.5)", true},
		{"body_color", "red", false},
		{"body_color_dark", "", true},
		{"body_font", "Georgia", true},
		{"body_font", "ComicSans", false},
		{"body_orientation", "center", true},
		{"body_orientation", "upside-down", false},
		{"cover_caption", true, true},
		{"cover_caption", "yes", false},
		{"meta_component_order", []any{"title", "byline"}, true},
		{"meta_component_order", []any{"title", "footer"}, false},
		{"no_such_setting", 1, false},
	}
	for _, tt := range tests {
		err := th.Set(tt.key, tt.value)
		if tt.ok && err != nil {
			t.Errorf("Set(%s, %v) unexpected error: %v", tt.key, tt.value, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("Set(%s, %v) expected error", tt.key, tt.value)
		}
	}
}

func TestValidate_FailsClosed(t *testing.T) {
	th := New("t")
	// bypass Set validation to emulate a stale stored value
	th.values["body_size"] = "huge"

	if err := th.Validate(); err == nil {
		t.Fatal("Validate() should fail for invalid stored value")
	}
	if th.State() == StateValidated {
		t.Error("failed validation must not reach validated state")
	}
	if th.LastError() == nil || !strings.Contains(th.LastError().Error(), "body_size") {
		t.Errorf("LastError() = %v, want message naming body_size", th.LastError())
	}
}

func TestDarkVariant(t *testing.T) {
	th := New("t")
	if _, ok := th.DarkVariant("body_color"); ok {
		t.Error("no dark value set, DarkVariant should report absence")
	}
	if err := th.Set("body_color_dark", "#101010"); err != nil {
		t.Fatal(err)
	}
	dark, ok := th.DarkVariant("body_color")
	if !ok || dark != "#101010" {
		t.Errorf("DarkVariant() = %q, %v", dark, ok)
	}
}

func TestValidateOverrides_SubsetLaw(t *testing.T) {
	defaults := func(component, specName string) ([]string, bool) {
		if component == "photo" && specName == "json" {
			return []string{"url", "caption"}, true
		}
		return nil, false
	}

	th := New("t")
	th.SetOverride("photo", "json", map[string]any{"role": "photo", "URL": "#url#"})
	if err := th.ValidateOverrides(defaults); err != nil {
		t.Errorf("subset override rejected: %v", err)
	}

	th.SetOverride("photo", "json", map[string]any{"URL": "#url#", "title": "#title#"})
	if err := th.ValidateOverrides(defaults); err == nil {
		t.Error("override with new token must be rejected")
	}

	th2 := New("t2")
	th2.SetOverride("nope", "json", map[string]any{})
	if err := th2.ValidateOverrides(defaults); err == nil {
		t.Error("override for unknown spec must be rejected")
	}

	th3 := New("t3")
	th3.SetOverride("photo", "json", "just a string")
	if err := th3.ValidateOverrides(defaults); err == nil {
		t.Error("scalar override template must be rejected")
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	th := New("night")
	if err := th.Set("body_color", "#222222"); err != nil {
		t.Fatal(err)
	}
	th.SetOverride("divider", "json", map[string]any{"role": "divider"})
	if err := store.Save(th); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if th.State() != StateSaved {
		t.Errorf("state after save = %v, want StateSaved", th.State())
	}

	loaded, err := store.Load("night")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := loaded.GetString("body_color"); got != "#222222" {
		t.Errorf("loaded body_color = %q", got)
	}
	if _, ok := loaded.Override("divider", "json"); !ok {
		t.Error("spec override lost in round trip")
	}

	names, err := store.List()
	if err != nil || !reflect.DeepEqual(names, []string{"night"}) {
		t.Errorf("List() = %v, %v", names, err)
	}
}

func TestFileStore_DropsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	data := "name: old\nsettings:\n  body_size: 21\n  retired_setting: whatever\n"
	if err := os.WriteFile(filepath.Join(dir, "old.yaml"), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	th, err := NewFileStore(dir).Load("old")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := th.GetInt("body_size"); got != 21 {
		t.Errorf("body_size = %d, want 21", got)
	}
	if _, exists := th.values["retired_setting"]; exists {
		t.Error("unknown key should be silently dropped on load")
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	// nothing stored - defaults
	th, err := Resolve(store, "", "")
	if err != nil || th.Name != "default" {
		t.Fatalf("Resolve() = %v, %v", th, err)
	}

	// configured name without a stored profile still resolves to builtins
	th, err = Resolve(store, "", "default")
	if err != nil || th.Name != "default" {
		t.Fatalf("Resolve() with configured name = %v, %v", th, err)
	}

	saved := New("feature")
	if err := store.Save(saved); err != nil {
		t.Fatal(err)
	}
	if err := store.SetActive("feature"); err != nil {
		t.Fatal(err)
	}

	th, err = Resolve(store, "", "default")
	if err != nil || th.Name != "feature" {
		t.Fatalf("Resolve() after SetActive = %v, %v", th, err)
	}

	if _, err := Resolve(store, "missing", ""); err == nil {
		t.Error("explicit missing theme must fail")
	}
}
