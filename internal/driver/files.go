package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExt is the extension of files picked up from directories.
const SourceExt = ".rs"

// skipDirs are never descended into: build output and VCS metadata.
var skipDirs = map[string]bool{
	"target":       true,
	".git":         true,
	"node_modules": true,
}

// ListFiles expands paths into a sorted, de-duplicated list of source files.
// Directories are walked for *.rs files; explicit files are kept whatever
// their extension.
func ListFiles(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %q: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && skipDirs[d.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(path, SourceExt) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

// displayPath returns path relative to base when it lies below it.
func displayPath(path, base string) string {
	if base == "" {
		return filepath.ToSlash(path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	if rel, err := filepath.Rel(base, abs); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}

// DisplayNames returns the names Expand reports for files, as used in
// progress events.
func DisplayNames(files []string, baseDir string) []string {
	if baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			baseDir = wd
		}
	}
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = displayPath(f, baseDir)
	}
	return out
}
