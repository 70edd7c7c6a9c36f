package convert

import (
	"strings"
	"testing"
	"time"

	"anfc/article"
	"anfc/config"
)

func setupTestArticleForTemplate(t *testing.T, art *article.Envelope) *article.Envelope {
	t.Helper()
	if art == nil {
		art = &article.Envelope{
			Identifier: "test-id",
			Title:      "Test Article",
			Slug:       "test-article",
			Language:   "en",
		}
	}
	return art
}

func TestExpandTemplate_SimpleText(t *testing.T) {
	art := setupTestArticleForTemplate(t, nil)

	result, err := expandTemplate(art, "story.html", config.OutputNameTemplateFieldName, "simple-text")
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	if result != "simple-text" {
		t.Errorf("expandTemplate() = %q, want %q", result, "simple-text")
	}
}

func TestExpandTemplate_Fields(t *testing.T) {
	art := setupTestArticleForTemplate(t, &article.Envelope{
		Identifier: "abc-123",
		Title:      "My Great Story",
		Slug:       "my-great-story",
		Language:   "en",
		Authors:    []string{"Jane Roe", "John Doe"},
		Published:  time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
	})

	tests := []struct {
		name     string
		field    string
		expected string
	}{
		{"title", "{{ .Title }}", "My Great Story"},
		{"slug", "{{ .Slug }}", "my-great-story"},
		{"identifier", "{{ .Identifier }}", "abc-123"},
		{"date", "{{ .Date }}", "2024-03-15"},
		{"language", "{{ .Language }}", "en"},
		{"source file", "{{ .SourceFile }}", "story"},
		{"first author", "{{ index .Authors 0 }}", "Jane Roe"},
		{"context", "{{ .Context }}", string(config.OutputNameTemplateFieldName)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := expandTemplate(art, "path/to/story.html", config.OutputNameTemplateFieldName, tt.field)
			if err != nil {
				t.Fatalf("expandTemplate() error = %v", err)
			}
			if result != tt.expected {
				t.Errorf("expandTemplate() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestExpandTemplate_SprigFunctions(t *testing.T) {
	art := setupTestArticleForTemplate(t, &article.Envelope{
		Title:   "My Great Story",
		Authors: []string{"Jane Roe", "John Doe"},
	})

	result, err := expandTemplate(art, "story.html", config.OutputNameTemplateFieldName, `{{ .Title | lower | replace " " "_" }} by {{ join ", " .Authors }}`)
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	if result != "my_great_story by Jane Roe, John Doe" {
		t.Errorf("expandTemplate() = %q", result)
	}
}

func TestExpandTemplate_EmptyDate(t *testing.T) {
	art := setupTestArticleForTemplate(t, nil)

	result, err := expandTemplate(art, "story.html", config.OutputNameTemplateFieldName, "{{ .Date }}")
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	if result != "" {
		t.Errorf("expandTemplate() = %q, want empty", result)
	}
}

func TestExpandTemplate_ParseError(t *testing.T) {
	art := setupTestArticleForTemplate(t, nil)

	_, err := expandTemplate(art, "story.html", config.OutputNameTemplateFieldName, "{{ .Title")
	if err == nil {
		t.Fatal("expandTemplate() expected parse error")
	}
	if !strings.Contains(err.Error(), string(config.OutputNameTemplateFieldName)) {
		t.Errorf("error should name the template field, got %v", err)
	}
}

func TestExpandTemplate_ExecuteError(t *testing.T) {
	art := setupTestArticleForTemplate(t, nil)

	if _, err := expandTemplate(art, "story.html", config.OutputNameTemplateFieldName, "{{ .Missing }}"); err == nil {
		t.Fatal("expandTemplate() expected execution error")
	}
}
