package convert

import (
	stdzip "archive/zip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"anfc/anf/theme"
	"anfc/config"
	"anfc/state"
	"anfc/workspace"
)

const sampleHTML = `<h2>Section</h2><p>First paragraph of the article body.</p><p>Second paragraph.</p>`

const sampleSidecar = `identifier: run-test-article
title: Run Test Article
authors:
  - Jane Roe
published: 2024-03-15T10:00:00Z
slug: run-test-article
`

// setupTestEnv creates a test environment with proper context and logger
func setupTestEnv(t *testing.T) (context.Context, *state.LocalEnv) {
	t.Helper()
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	// cover generation pulls in rasterization, keep batch tests lean
	cfg.Document.Bundle.Cover.Generate = false
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = logger
	env.Cfg = cfg
	return ctx, env
}

func setupTestProcessor(t *testing.T, env *state.LocalEnv, bundleZip bool) *processor {
	t.Helper()
	ws, err := workspace.Open("")
	if err != nil {
		t.Fatalf("open workspace: %v", err)
	}
	t.Cleanup(func() { _ = ws.Close() })
	return &processor{
		env:       env,
		theme:     theme.New("default"),
		ws:        ws,
		bundleZip: bundleZip,
	}
}

func writeTestArticle(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name+".html")
	if err := os.WriteFile(path, []byte(sampleHTML), 0644); err != nil {
		t.Fatalf("write article body: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(sampleSidecar), 0644); err != nil {
		t.Fatalf("write article sidecar: %v", err)
	}
	return path
}

func TestProcess_NonExistentPath(t *testing.T) {
	ctx, env := setupTestEnv(t)
	p := setupTestProcessor(t, env, true)

	err := p.process(ctx, "/nonexistent/path/file.html", t.TempDir(), env.Log)
	if err == nil {
		t.Fatal("expected error for non-existent path, got nil")
	}
	if !strings.Contains(err.Error(), "input source was not found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestProcess_CancelledContext(t *testing.T) {
	ctx, env := setupTestEnv(t)
	p := setupTestProcessor(t, env, true)

	cancelCtx, cancel := context.WithCancel(ctx)
	cancel()

	srcDir := t.TempDir()
	writeTestArticle(t, srcDir, "story")

	if err := p.process(cancelCtx, srcDir, t.TempDir(), env.Log); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestProcess_SingleFileZipBundle(t *testing.T) {
	ctx, env := setupTestEnv(t)
	env.NoDirs = true
	p := setupTestProcessor(t, env, true)

	srcDir := t.TempDir()
	dstDir := t.TempDir()
	src := writeTestArticle(t, srcDir, "story")

	if err := p.process(ctx, src, dstDir, env.Log); err != nil {
		t.Fatalf("process: %v", err)
	}

	out := filepath.Join(dstDir, "story.zip")
	zr, err := stdzip.OpenReader(out)
	if err != nil {
		t.Fatalf("output bundle is not a readable archive: %v", err)
	}
	defer zr.Close()
	if len(zr.File) == 0 || zr.File[0].Name != "article.json" {
		t.Fatal("bundle must carry article.json as its first entry")
	}
}

func TestProcess_SingleFileDirBundle(t *testing.T) {
	ctx, env := setupTestEnv(t)
	env.NoDirs = true
	p := setupTestProcessor(t, env, false)

	srcDir := t.TempDir()
	dstDir := t.TempDir()
	src := writeTestArticle(t, srcDir, "story")

	if err := p.process(ctx, src, dstDir, env.Log); err != nil {
		t.Fatalf("process: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dstDir, "story", "article.json")); err != nil {
		t.Fatalf("expected article.json in directory bundle: %v", err)
	}
}

func TestProcess_Directory(t *testing.T) {
	ctx, env := setupTestEnv(t)
	env.NoDirs = true
	p := setupTestProcessor(t, env, true)

	srcDir := t.TempDir()
	dstDir := t.TempDir()
	writeTestArticle(t, srcDir, "first")
	writeTestArticle(t, srcDir, "second")
	// non-articles are ignored
	if err := os.WriteFile(filepath.Join(srcDir, "notes.txt"), []byte("skip me"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := p.process(ctx, srcDir, dstDir, env.Log); err != nil {
		t.Fatalf("process: %v", err)
	}

	for _, name := range []string{"first.zip", "second.zip"} {
		if _, err := os.Stat(filepath.Join(dstDir, name)); err != nil {
			t.Errorf("expected output %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dstDir, "notes.zip")); err == nil {
		t.Error("non-article file must not produce output")
	}
}

func TestProcess_Archive(t *testing.T) {
	ctx, env := setupTestEnv(t)
	env.NoDirs = true
	p := setupTestProcessor(t, env, true)

	srcDir := t.TempDir()
	dstDir := t.TempDir()

	arcPath := filepath.Join(srcDir, "batch.zip")
	f, err := os.Create(arcPath)
	if err != nil {
		t.Fatal(err)
	}
	zw := stdzip.NewWriter(f)
	for name, data := range map[string]string{
		"stories/story.html": sampleHTML,
		"stories/story.yaml": sampleSidecar,
	} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(data)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	if err := p.process(ctx, arcPath, dstDir, env.Log); err != nil {
		t.Fatalf("process: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dstDir, "story.zip")); err != nil {
		t.Fatalf("expected output from archive entry: %v", err)
	}
}

func TestProcess_OverwriteRefused(t *testing.T) {
	ctx, env := setupTestEnv(t)
	env.NoDirs = true
	p := setupTestProcessor(t, env, true)

	srcDir := t.TempDir()
	dstDir := t.TempDir()
	src := writeTestArticle(t, srcDir, "story")

	if err := p.process(ctx, src, dstDir, env.Log); err != nil {
		t.Fatalf("first conversion: %v", err)
	}
	if err := p.processArticle(ctx, src, "story.html", dstDir, env.Log); err == nil {
		t.Fatal("expected overwrite refusal")
	}

	env.Overwrite = true
	if err := p.processArticle(ctx, src, "story.html", dstDir, env.Log); err != nil {
		t.Fatalf("overwrite enabled, conversion failed: %v", err)
	}
}

func TestProcess_ResultPersisted(t *testing.T) {
	ctx, env := setupTestEnv(t)
	env.NoDirs = true
	p := setupTestProcessor(t, env, true)

	srcDir := t.TempDir()
	src := writeTestArticle(t, srcDir, "story")

	if err := p.process(ctx, src, t.TempDir(), env.Log); err != nil {
		t.Fatalf("process: %v", err)
	}

	data, err := p.ws.GetJSON("run-test-article")
	if err != nil {
		t.Fatalf("workspace lookup: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("conversion result was not persisted")
	}
}

func TestIsArchiveFile(t *testing.T) {
	dir := t.TempDir()

	arc := filepath.Join(dir, "a.zip")
	f, err := os.Create(arc)
	if err != nil {
		t.Fatal(err)
	}
	zw := stdzip.NewWriter(f)
	w, _ := zw.Create("x.html")
	_, _ = w.Write([]byte("<p>x</p>"))
	_ = zw.Close()
	_ = f.Close()

	plain := filepath.Join(dir, "b.html")
	if err := os.WriteFile(plain, []byte("<p>x</p>"), 0644); err != nil {
		t.Fatal(err)
	}

	if !isArchiveFile(arc) {
		t.Error("zip archive not recognized")
	}
	if isArchiveFile(plain) {
		t.Error("plain file mistaken for archive")
	}
	if isArchiveFile(filepath.Join(dir, "missing")) {
		t.Error("missing file mistaken for archive")
	}
}
