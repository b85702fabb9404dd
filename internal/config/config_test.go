package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"monoforce/internal/config"
	"monoforce/internal/mono"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, config.FileName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultExpandOptions(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	opts, err := cfg.ExpandOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Mono.Duplicates != mono.DuplicatesFirst || opts.Mono.Unused != mono.UnusedWarn {
		t.Errorf("policies = %+v", opts.Mono)
	}
	if strings.Join(opts.Attributes, ",") != "mono,mono_macro::mono" {
		t.Errorf("attributes = %v", opts.Attributes)
	}
	if cfg.Jobs() < 1 {
		t.Errorf("jobs = %d", cfg.Jobs())
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[expand]
attributes = ["force_mono"]
duplicates = "error"
unused = "ignore"

[run]
jobs = 3
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(cfg.Expand.Attributes, ","); got != "force_mono" {
		t.Errorf("attributes = %s", got)
	}
	if got := strings.Join(cfg.Expand.PathMacros, ","); got != "mono,mono_macro::mono" {
		t.Errorf("path_macros kept default, got %s", got)
	}
	if cfg.Output.Dir != config.DefaultOutDir {
		t.Errorf("output.dir = %q", cfg.Output.Dir)
	}
	if cfg.Jobs() != 3 {
		t.Errorf("jobs = %d", cfg.Jobs())
	}
	opts, err := cfg.ExpandOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Mono.Duplicates != mono.DuplicatesError || opts.Mono.Unused != mono.UnusedIgnore {
		t.Errorf("policies = %+v", opts.Mono)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		key   string
		plain string
	}{
		{name: "bad duplicates", body: "[expand]\nduplicates = \"last\"\n", key: "expand.duplicates"},
		{name: "bad unused", body: "[expand]\nunused = \"loud\"\n", key: "expand.unused"},
		{name: "bad attribute", body: "[expand]\nattributes = [\"mono(\"]\n", key: "expand.attributes"},
		{name: "empty macro", body: "[expand]\npath_macros = [\"a::\"]\n", key: "expand.path_macros"},
		{name: "negative jobs", body: "[run]\njobs = -1\n", key: "run.jobs"},
		{name: "no out dir", body: "[output]\ndir = \"\"\n", key: "output.dir"},
		{name: "unknown key", body: "[expand]\nattribute = [\"mono\"]\n", plain: "unknown keys: expand.attribute"},
		{name: "syntax", body: "[expand\n", plain: "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.body)
			_, err := config.Load(path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.plain != "" {
				if !strings.Contains(err.Error(), tt.plain) {
					t.Errorf("error = %v", err)
				}
				return
			}
			var verr *config.ValueError
			if !errors.As(err, &verr) {
				t.Fatalf("want *ValueError, got %v", err)
			}
			if verr.Key != tt.key {
				t.Errorf("key = %q, want %q", verr.Key, tt.key)
			}
			if !strings.HasPrefix(err.Error(), "CFG5001 ") {
				t.Errorf("error = %v", err)
			}
		})
	}
}

func TestInPlaceAllowsEmptyDir(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[output]\ndir = \"\"\nin_place = true\n")
	if _, err := config.Load(path); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[output]\ndir = \"out\"\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := config.Discover(nested)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	wantRoot, err := filepath.Abs(root)
	if err != nil {
		t.Fatal(err)
	}
	if m.Root != wantRoot {
		t.Errorf("root = %q, want %q", m.Root, wantRoot)
	}
	if m.OutDir() != filepath.Join(wantRoot, "out") {
		t.Errorf("out dir = %q", m.OutDir())
	}
}

func TestDiscoverWithoutManifest(t *testing.T) {
	dir := t.TempDir()
	m, ok, err := config.Discover(dir)
	if err != nil {
		t.Fatal(err)
	}
	// TempDir может лежать под каталогом с monoforce.toml только в экзотических окружениях
	if ok {
		t.Skip("a manifest exists above the temp dir")
	}
	if m.Config.Output.Dir != config.DefaultOutDir {
		t.Errorf("config = %+v", m.Config)
	}
}

func TestTemplateDecodesToDefault(t *testing.T) {
	dir := t.TempDir()
	path, err := config.WriteTemplate(dir)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	def := config.Default()
	if cfg.Expand.Duplicates != def.Expand.Duplicates || cfg.Expand.Unused != def.Expand.Unused ||
		cfg.Output != def.Output || cfg.Run.Jobs != def.Run.Jobs || cfg.Run.Cache != def.Run.Cache {
		t.Errorf("template = %+v, default = %+v", cfg, def)
	}
	if _, err := config.WriteTemplate(dir); err == nil {
		t.Error("second init must fail")
	}
}
