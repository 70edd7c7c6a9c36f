package archive

import (
	stdzip "archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hidez8891/zip"
)

func makeZip(t *testing.T, names ...string) string {
	t.Helper()
	zipPath := filepath.Join(t.TempDir(), "test.zip")

	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer zipFile.Close()

	w := stdzip.NewWriter(zipFile)
	defer w.Close()

	for _, name := range names {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to create file %s in zip: %v", name, err)
		}
		if _, err := fw.Write([]byte("content of " + name)); err != nil {
			t.Fatalf("Failed to write content for %s: %v", name, err)
		}
	}
	return zipPath
}

func TestWalk(t *testing.T) {
	zipPath := makeZip(t,
		"batch/page10.html",
		"batch/page2.html",
		"batch/page1.html",
		"batch/page1.yaml",
		"notes.txt",
	)

	t.Run("glob match", func(t *testing.T) {
		var visited []string
		err := Walk(zipPath, "*.html", func(archive string, file *zip.File) error {
			if archive != zipPath {
				t.Errorf("archive = %s, want %s", archive, zipPath)
			}
			visited = append(visited, file.Name)
			return nil
		})
		if err != nil {
			t.Errorf("Walk() error = %v", err)
		}
		want := []string{"batch/page1.html", "batch/page2.html", "batch/page10.html"}
		if len(visited) != len(want) {
			t.Fatalf("visited %v, want %v", visited, want)
		}
		for i := range want {
			if visited[i] != want[i] {
				t.Errorf("order: visited %v, want %v", visited, want)
				break
			}
		}
	})

	t.Run("no matches", func(t *testing.T) {
		count := 0
		err := Walk(zipPath, "*.epub", func(string, *zip.File) error {
			count++
			return nil
		})
		if err != nil {
			t.Errorf("Walk() error = %v", err)
		}
		if count != 0 {
			t.Errorf("visited %d files, want 0", count)
		}
	})

	t.Run("walk error stops", func(t *testing.T) {
		sentinel := errors.New("stop")
		count := 0
		err := Walk(zipPath, "*.html", func(string, *zip.File) error {
			count++
			return sentinel
		})
		if !errors.Is(err, sentinel) {
			t.Errorf("Walk() error = %v, want sentinel", err)
		}
		if count != 1 {
			t.Errorf("walk continued after error, visited %d", count)
		}
	})

	t.Run("bad pattern", func(t *testing.T) {
		if err := Walk(zipPath, "[", func(string, *zip.File) error { return nil }); err == nil {
			t.Error("want error for malformed pattern")
		}
	})
}

func TestWalkUnsafePaths(t *testing.T) {
	zipPath := makeZip(t, "../escape.html")
	err := Walk(zipPath, "*.html", func(string, *zip.File) error { return nil })
	if err == nil {
		t.Fatal("want error for path traversal entry")
	}
}

func TestWalkMissingArchive(t *testing.T) {
	if err := Walk(filepath.Join(t.TempDir(), "nope.zip"), "*", func(string, *zip.File) error { return nil }); err == nil {
		t.Fatal("want error for missing archive")
	}
}
