package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ScanDirectory scans a directory recursively for files with the given extension
func ScanDirectory(dir string, ext string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && filepath.Ext(path) == ext {
			files = append(files, path)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

// DestinationPath mirrors src from srcRoot into destRoot and swaps its
// extension for destExt
func DestinationPath(src, srcRoot, destRoot, destExt string) (string, error) {
	rel, err := filepath.Rel(srcRoot, src)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s against %s: %w", src, srcRoot, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside the source directory %s", src, srcRoot)
	}

	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + destExt
	return filepath.Join(destRoot, rel), nil
}

// IsRootPage reports whether src is the site's start page. rootPage is a page
// id relative to srcRoot, written with / or DokuWiki : separators.
func IsRootPage(src, srcRoot, rootPage string) bool {
	if rootPage == "" {
		return false
	}
	rel, err := filepath.Rel(srcRoot, src)
	if err != nil {
		return false
	}
	id := filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
	return id == strings.Trim(strings.ReplaceAll(rootPage, ":", "/"), "/")
}

// writeFileAtomic writes data to a temp file next to path and renames it into
// place, so a failed write never leaves a partial destination file
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err = tmp.Chmod(0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move into place: %w", err)
	}

	return nil
}
