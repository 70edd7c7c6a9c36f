package bundle

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"anfc/anf"
)

func testDoc(components ...map[string]any) *anf.Document {
	return &anf.Document{
		Version:    anf.FormatVersion,
		Identifier: "a-1",
		Title:      "t",
		Components: components,
	}
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// pngHeader is enough for content sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}

func TestCollectRewritesLocalReferences(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "images/cat.png", pngHeader)

	doc := testDoc(
		map[string]any{"role": "photo", "URL": "images/cat.png"},
		map[string]any{"role": "photo", "URL": "https://example.com/remote.png"},
		map[string]any{"role": "photo", "URL": "images/missing.png"},
		map[string]any{"role": "gallery", "items": []any{
			map[string]any{"URL": "images/cat.png"},
		}},
	)

	b := New(zap.NewNop(), dir)
	assets := b.Collect(doc)

	if doc.Components[0]["URL"] != "bundle://cat.png" {
		t.Errorf("local reference not rewritten: %v", doc.Components[0]["URL"])
	}
	if doc.Components[1]["URL"] != "https://example.com/remote.png" {
		t.Errorf("remote reference touched: %v", doc.Components[1]["URL"])
	}
	if doc.Components[2]["URL"] != "images/missing.png" {
		t.Errorf("missing file reference touched: %v", doc.Components[2]["URL"])
	}
	items := doc.Components[3]["items"].([]any)
	if items[0].(map[string]any)["URL"] != "bundle://cat.png" {
		t.Errorf("nested reference not rewritten: %v", items[0])
	}
	// same file referenced twice is one asset
	if len(assets) != 1 {
		t.Fatalf("want 1 asset, got %d", len(assets))
	}
}

func TestCollectSniffsExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "media/cover", pngHeader)

	doc := testDoc(map[string]any{"role": "photo", "URL": "media/cover"})
	b := New(zap.NewNop(), dir)
	assets := b.Collect(doc)
	if len(assets) != 1 {
		t.Fatalf("want 1 asset, got %d", len(assets))
	}
	if assets[0].Name != "cover.png" {
		t.Errorf("asset name = %q, want sniffed extension", assets[0].Name)
	}
	if doc.Components[0]["URL"] != "bundle://cover.png" {
		t.Errorf("URL = %v", doc.Components[0]["URL"])
	}
}

func TestCollectNameCollision(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a/pic.png", pngHeader)
	writeFile(t, dir, "b/pic.png", pngHeader)

	doc := testDoc(
		map[string]any{"role": "photo", "URL": "a/pic.png"},
		map[string]any{"role": "photo", "URL": "b/pic.png"},
	)
	b := New(zap.NewNop(), dir)
	assets := b.Collect(doc)
	if len(assets) != 2 {
		t.Fatalf("want 2 assets, got %d", len(assets))
	}
	if assets[0].Name == assets[1].Name {
		t.Fatalf("colliding asset names: %q", assets[0].Name)
	}
	if doc.Components[1]["URL"] != "bundle://"+assets[1].Name {
		t.Errorf("second URL = %v, asset %q", doc.Components[1]["URL"], assets[1].Name)
	}
}

func TestWriteDir(t *testing.T) {
	srcDir := t.TempDir()
	writeFile(t, srcDir, "pic.png", pngHeader)

	doc := testDoc(map[string]any{"role": "photo", "URL": "pic.png"})
	b := New(zap.NewNop(), srcDir)
	b.Collect(doc)

	out := filepath.Join(t.TempDir(), "bundle")
	if err := b.WriteDir(doc, out); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(out, "article.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("bundle://pic.png")) {
		t.Error("article.json does not reference the bundled asset")
	}
	if _, err := os.Stat(filepath.Join(out, "pic.png")); err != nil {
		t.Errorf("asset not copied: %v", err)
	}
}

func TestWriteZip(t *testing.T) {
	srcDir := t.TempDir()
	writeFile(t, srcDir, "pic.png", pngHeader)

	doc := testDoc(map[string]any{"role": "photo", "URL": "pic.png"})
	b := New(zap.NewNop(), srcDir)
	b.Collect(doc)

	out := filepath.Join(t.TempDir(), "bundle.zip")
	if err := b.WriteZip(doc, out); err != nil {
		t.Fatal(err)
	}

	r, err := zip.OpenReader(out)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	names := map[string]bool{}
	for _, f := range r.File {
		names[f.Name] = true
	}
	if !names["article.json"] || !names["pic.png"] {
		t.Fatalf("archive entries: %v", names)
	}
}

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 120 80"><rect x="10" y="10" width="100" height="60" fill="#cccccc"/></svg>`

func TestEnsureCover(t *testing.T) {
	doc := testDoc(map[string]any{"role": "body", "text": "x", "format": "html"})
	b := New(zap.NewNop(), t.TempDir())
	if err := b.EnsureCover(doc, []byte(testSVG), 120, 80); err != nil {
		t.Fatal(err)
	}
	if doc.Components[0]["role"] != "header" {
		t.Fatalf("header not prepended: %v", doc.Components[0])
	}
	assets := b.Assets()
	if len(assets) != 1 || assets[0].Name != "cover.jpg" {
		t.Fatalf("assets: %+v", assets)
	}
	if len(assets[0].Data) < 2 || assets[0].Data[0] != 0xff || assets[0].Data[1] != 0xd8 {
		t.Error("generated cover is not a JPEG")
	}
	if _, ok := doc.ComponentLayouts["header-layout"]; !ok {
		t.Error("header layout not registered")
	}
}

func TestEnsureCoverSkipsExistingHeader(t *testing.T) {
	doc := testDoc(map[string]any{"role": "header"})
	b := New(zap.NewNop(), t.TempDir())
	if err := b.EnsureCover(doc, []byte(testSVG), 120, 80); err != nil {
		t.Fatal(err)
	}
	if len(b.Assets()) != 0 {
		t.Fatalf("cover generated despite existing header: %+v", b.Assets())
	}
}
