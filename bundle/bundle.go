// Package bundle turns a produced document into a publishable article
// bundle: local media references rewritten to bundle:// URLs, assets
// collected next to article.json, written to a directory or a zip.
package bundle

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"anfc/anf"
)

// Asset is one file to be shipped with article.json.
type Asset struct {
	// Name inside the bundle, referenced as bundle://Name.
	Name string
	// Source is the local file the asset is copied from. Empty for
	// generated assets carrying Data instead.
	Source string
	Data   []byte
}

type Bundler struct {
	Log *zap.Logger
	// SourceDir is the directory the article was read from, relative
	// media references resolve against it.
	SourceDir string

	assets []Asset
	names  map[string]int
}

func New(log *zap.Logger, sourceDir string) *Bundler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bundler{Log: log, SourceDir: sourceDir, names: make(map[string]int)}
}

// Assets returns everything collected so far.
func (b *Bundler) Assets() []Asset {
	return b.assets
}

// Collect walks the document rewriting local media references to bundle://
// URLs and recording the backing files. References to files that do not
// exist are left untouched and logged.
func (b *Bundler) Collect(doc *anf.Document) []Asset {
	for _, c := range doc.Components {
		b.walk(c)
	}
	return b.assets
}

// urlKeys are the component dictionary keys that carry media references.
func isURLKey(key string) bool {
	return key == "URL" || strings.HasSuffix(key, "URL")
}

func (b *Bundler) walk(v any) {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			if s, ok := val.(string); ok && isURLKey(k) {
				if rewritten := b.rewrite(s); rewritten != "" {
					t[k] = rewritten
				}
				continue
			}
			b.walk(val)
		}
	case []any:
		for _, item := range t {
			b.walk(item)
		}
	}
}

// rewrite returns the bundle:// form for a local reference, or "" when the
// value should stay as is.
func (b *Bundler) rewrite(raw string) string {
	if raw == "" || strings.Contains(raw, "://") {
		return ""
	}
	src := filepath.Join(b.SourceDir, filepath.FromSlash(raw))
	if _, err := os.Stat(src); err != nil {
		b.Log.Warn("Referenced media file not found, leaving reference as is",
			zap.String("ref", raw), zap.String("path", src))
		return ""
	}
	for _, a := range b.assets {
		if a.Source == src {
			return "bundle://" + a.Name
		}
	}
	name := b.uniqueName(b.assetName(src))
	b.assets = append(b.assets, Asset{Name: name, Source: src})
	return "bundle://" + name
}

// assetName derives the bundle file name, sniffing an extension for
// extensionless files.
func (b *Bundler) assetName(src string) string {
	name := filepath.Base(src)
	if filepath.Ext(name) != "" {
		return name
	}
	f, err := os.Open(src)
	if err != nil {
		return name
	}
	defer f.Close()
	head := make([]byte, 261)
	n, _ := io.ReadFull(f, head)
	if kind, err := filetype.Match(head[:n]); err == nil && kind != filetype.Unknown {
		return name + "." + kind.Extension
	}
	return name
}

func (b *Bundler) uniqueName(name string) string {
	b.names[name]++
	if b.names[name] == 1 {
		return name
	}
	ext := filepath.Ext(name)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(name, ext), b.names[name], ext)
}

// Add records a generated asset.
func (b *Bundler) Add(name string, data []byte) string {
	name = b.uniqueName(name)
	b.assets = append(b.assets, Asset{Name: name, Data: data})
	return name
}

// WriteDir writes article.json and the collected assets into dir, creating
// it as needed.
func (b *Bundler) WriteDir(doc *anf.Document, dir string) error {
	data, err := doc.Serialize()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("unable to create bundle directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "article.json"), data, 0644); err != nil {
		return fmt.Errorf("unable to write article.json: %w", err)
	}
	for _, a := range b.assets {
		if err := writeAssetFile(filepath.Join(dir, a.Name), a); err != nil {
			return err
		}
	}
	return nil
}

func writeAssetFile(dst string, a Asset) error {
	if a.Source == "" {
		return os.WriteFile(dst, a.Data, 0644)
	}
	in, err := os.Open(a.Source)
	if err != nil {
		return fmt.Errorf("unable to read asset %q: %w", a.Source, err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("unable to write asset %q: %w", dst, err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("unable to copy asset %q: %w", dst, err)
	}
	return out.Close()
}

// WriteZip writes the bundle as a single zip archive.
func (b *Bundler) WriteZip(doc *anf.Document, path string) error {
	data, err := doc.Serialize()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create bundle archive: %w", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	entry, err := w.Create("article.json")
	if err != nil {
		return err
	}
	if _, err := entry.Write(data); err != nil {
		return err
	}
	for _, a := range b.assets {
		entry, err := w.Create(a.Name)
		if err != nil {
			return err
		}
		if a.Source == "" {
			if _, err := entry.Write(a.Data); err != nil {
				return err
			}
			continue
		}
		in, err := os.Open(a.Source)
		if err != nil {
			return fmt.Errorf("unable to read asset %q: %w", a.Source, err)
		}
		if _, err := io.Copy(entry, in); err != nil {
			in.Close()
			return fmt.Errorf("unable to archive asset %q: %w", a.Name, err)
		}
		in.Close()
	}
	if err := w.Close(); err != nil {
		return err
	}
	return f.Close()
}
