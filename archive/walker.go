// Package archive reads document sources packed into zip archives.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// MaxEntrySize limits how much is read from a single archive entry.
const MaxEntrySize = 64 << 20

// WalkFunc is called for every matching entry. The name argument is the
// entry path inside archive, data is its complete uncompressed content. If an
// error is returned, processing stops.
type WalkFunc func(name string, data []byte) error

// Walk visits all regular entries of the archive located under prefix and
// accepted by match (nil accepts everything), in archive order. Archives
// with absolute entry names or ".." components are rejected as a whole.
func Walk(archive, prefix string, match func(name string) bool, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		if match != nil && !match(name) {
			continue
		}
		if f.UncompressedSize64 > MaxEntrySize {
			return fmt.Errorf("zip entry %q: too large (%d bytes)", name, f.UncompressedSize64)
		}
		data, err := readEntry(f)
		if err != nil {
			return fmt.Errorf("zip entry %q: %w", name, err)
		}
		if err := walkFn(name, data); err != nil {
			return err
		}
	}
	return nil
}

// IsArchive reports whether file at path is a zip archive.
func IsArchive(file string) bool {
	r, err := zip.OpenReader(file)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return false
	}
	r.Close()
	return true
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(io.LimitReader(rc, MaxEntrySize))
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
