package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Template returns the manifest written by `monoforce init`.
func Template() string {
	d := Default()
	return fmt.Sprintf(`# monoforce manifest
[expand]
attributes  = [%s]
path_macros = [%s]
duplicates  = %q   # first | error
unused      = %q    # warn | ignore | error

[output]
dir      = %q
in_place = false

[run]
jobs      = 0       # 0 = GOMAXPROCS
cache     = false
cache_dir = %q
`, quoteList(d.Expand.Attributes), quoteList(d.Expand.PathMacros),
		d.Expand.Duplicates, d.Expand.Unused, d.Output.Dir, filepath.ToSlash(d.Run.CacheDir))
}

// WriteTemplate creates dir/monoforce.toml; an existing file is an error.
func WriteTemplate(dir string) (string, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("already initialized: %s exists", path)
	}
	if err := os.WriteFile(path, []byte(Template()), 0o600); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return path, nil
}

func quoteList(items []string) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%q", it)
	}
	return strings.Join(parts, ", ")
}
