package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Manifest is a loaded monoforce.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Find walks up from startDir to locate monoforce.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the nearest manifest above startDir. ok is false when none
// exists; the returned manifest then carries Default rooted at startDir.
func Discover(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		root, err := filepath.Abs(startDir)
		if err != nil {
			return nil, false, err
		}
		return &Manifest{Root: root, Config: Default()}, false, nil
	}
	return Open(path)
}

// Open loads an explicit manifest path.
func Open(path string) (*Manifest, bool, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: abs, Root: filepath.Dir(abs), Config: cfg}, true, nil
}

// OutDir resolves output.dir against the manifest root.
func (m *Manifest) OutDir() string {
	return m.resolve(m.Config.Output.Dir)
}

// CacheDir resolves run.cache_dir against the manifest root.
func (m *Manifest) CacheDir() string {
	return m.resolve(m.Config.Run.CacheDir)
}

func (m *Manifest) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Root, filepath.FromSlash(p))
}
