// Package archive builds a Walk abstraction on top of zip reading, used to
// feed batch conversion from archived CMS exports.
package archive

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/hidez8891/zip"
	"github.com/maruel/natural"
)

// WalkFunc is the type of the function called for each file in archive
// visited by Walk. The archive argument contains the path to the archive
// passed to Walk, the file argument is the zip.File structure for a matching
// entry. If an error is returned, processing stops.
type WalkFunc func(archive string, file *zip.File) error

// Walk visits archive entries whose base name matches the glob pattern, in
// natural name order so "page2" sorts before "page10". Entries with path
// traversal components ("..") or absolute paths fail the walk to prevent
// Zip Slip attacks.
func Walk(archive, pattern string, walkFn WalkFunc) error {

	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	var files []*zip.File
	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() {
			continue
		}
		matched, err := path.Match(pattern, path.Base(name))
		if err != nil {
			return fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if matched {
			files = append(files, f)
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return natural.Less(files[i].FileHeader.Name, files[j].FileHeader.Name)
	})

	for _, f := range files {
		if err := walkFn(archive, f); err != nil {
			return err
		}
	}
	return nil
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
