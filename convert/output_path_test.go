package convert

import (
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"anfc/article"
	"anfc/config"
	"anfc/state"
)

func setupTestEnvForOutputPath(t *testing.T, noDirs bool, transliterate bool, template string) *state.LocalEnv {
	t.Helper()
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Document.FileNameTransliterate = transliterate
	cfg.Document.OutputNameTemplate = template

	env := &state.LocalEnv{
		Log:    logger,
		Cfg:    cfg,
		NoDirs: noDirs,
	}
	return env
}

func setupTestArticleForPath(t *testing.T) *article.Envelope {
	t.Helper()
	return &article.Envelope{
		Identifier: "test-article-id",
		Title:      "Test Article",
		Slug:       "test-article",
		Language:   "en",
		Authors:    []string{"John Doe"},
		Published:  time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestBuildOutputPath_SimpleCase_NoDirs(t *testing.T) {
	art := setupTestArticleForPath(t)
	env := setupTestEnvForOutputPath(t, true, false, "")

	result := buildOutputPath(art, "articles/news/story.html", "/output", true, env)
	expected := filepath.Join("/output", "story.zip")

	if result != expected {
		t.Errorf("buildOutputPath() = %q, want %q", result, expected)
	}
}

func TestBuildOutputPath_SimpleCase_WithDirs(t *testing.T) {
	art := setupTestArticleForPath(t)
	env := setupTestEnvForOutputPath(t, false, false, "")

	result := buildOutputPath(art, "articles/news/story.html", "/output", true, env)
	expected := filepath.Join("/output", "articles", "news", "story.zip")

	if result != expected {
		t.Errorf("buildOutputPath() = %q, want %q", result, expected)
	}
}

func TestBuildOutputPath_DirectoryBundle(t *testing.T) {
	art := setupTestArticleForPath(t)
	env := setupTestEnvForOutputPath(t, true, false, "")

	result := buildOutputPath(art, "story.html", "/output", false, env)
	expected := filepath.Join("/output", "story")

	if result != expected {
		t.Errorf("buildOutputPath() = %q, want %q", result, expected)
	}
}

func TestBuildOutputPath_Transliterate(t *testing.T) {
	art := setupTestArticleForPath(t)
	env := setupTestEnvForOutputPath(t, true, true, "")

	result := buildOutputPath(art, "Статья.html", "/output", true, env)
	expected := filepath.Join("/output", "statia.zip")

	if result != expected {
		t.Errorf("buildOutputPath() = %q, want %q", result, expected)
	}
}

func TestBuildOutputPath_Template(t *testing.T) {
	art := setupTestArticleForPath(t)
	env := setupTestEnvForOutputPath(t, true, false, "{{ .Date }}/{{ .Slug }}")

	result := buildOutputPath(art, "story.html", "/output", true, env)
	expected := filepath.Join("/output", "2024-03-15", "test-article.zip")

	if result != expected {
		t.Errorf("buildOutputPath() = %q, want %q", result, expected)
	}
}

func TestBuildOutputPath_BadTemplateFallsBack(t *testing.T) {
	art := setupTestArticleForPath(t)
	env := setupTestEnvForOutputPath(t, true, false, "{{ .NoSuchField }}")

	result := buildOutputPath(art, "story.html", "/output", true, env)
	expected := filepath.Join("/output", "story.zip")

	if result != expected {
		t.Errorf("buildOutputPath() = %q, want %q", result, expected)
	}
}

func TestDetermineOutputDir(t *testing.T) {
	envFlat := setupTestEnvForOutputPath(t, true, false, "")
	if got := determineOutputDir("articles/news/story.html", "/output", envFlat); got != "/output" {
		t.Errorf("determineOutputDir() = %q, want %q", got, "/output")
	}

	envNested := setupTestEnvForOutputPath(t, false, false, "")
	expected := filepath.Join("/output", "articles", "news")
	if got := determineOutputDir("articles/news/story.html", "/output", envNested); got != expected {
		t.Errorf("determineOutputDir() = %q, want %q", got, expected)
	}
}

func TestBuildDefaultFileName(t *testing.T) {
	tests := []struct {
		name          string
		src           string
		transliterate bool
		bundleZip     bool
		expected      string
	}{
		{"zip bundle", "story.html", false, true, "story.zip"},
		{"with path", "path/to/story.html", false, true, "story.zip"},
		{"directory bundle", "story.html", false, false, "story"},
		{"transliterate", "Статья.html", true, true, "statia.zip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnvForOutputPath(t, true, tt.transliterate, "")

			result := buildDefaultFileName(tt.src, tt.bundleZip, env)
			if result != tt.expected {
				t.Errorf("buildDefaultFileName() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestSplitAndCleanPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected []string
	}{
		{"simple path", "news/story", []string{"news", "story"}},
		{"single segment", "story", []string{"story"}},
		{"with trailing slash", "news/story/", []string{"news", "story"}},
		{"three levels", "section/news/story", []string{"section", "news", "story"}},
		{"empty path", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitAndCleanPath(filepath.FromSlash(tt.path))
			if len(result) != len(tt.expected) {
				t.Errorf("splitAndCleanPath() length = %d, want %d", len(result), len(tt.expected))
				return
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("splitAndCleanPath()[%d] = %q, want %q", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestCleanPathSegment(t *testing.T) {
	tests := []struct {
		name          string
		segment       string
		transliterate bool
		expected      string
	}{
		{"simple segment", "news", false, "news"},
		{"with spaces", "Breaking News", false, "Breaking News"},
		{"transliterate cyrillic", "Новости", true, "novosti"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnvForOutputPath(t, true, tt.transliterate, "")

			result := cleanPathSegment(tt.segment, env)
			if result != tt.expected {
				t.Errorf("cleanPathSegment() = %q, want %q", result, tt.expected)
			}
		})
	}
}
