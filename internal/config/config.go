// Package config discovers and decodes monoforce.toml.
package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"

	"monoforce/internal/diag"
	"monoforce/internal/expand"
	"monoforce/internal/mono"
	"monoforce/internal/parser"
)

// FileName is the manifest looked up from the working directory upwards.
const FileName = "monoforce.toml"

// DefaultOutDir is where expanded files go unless in_place is set.
const DefaultOutDir = "target/monoforce"

type Config struct {
	Expand ExpandConfig `toml:"expand"`
	Output OutputConfig `toml:"output"`
	Run    RunConfig    `toml:"run"`
}

type ExpandConfig struct {
	Attributes []string `toml:"attributes"`
	PathMacros []string `toml:"path_macros"`
	Duplicates string   `toml:"duplicates"` // first | error
	Unused     string   `toml:"unused"`     // warn | ignore | error
}

type OutputConfig struct {
	Dir     string `toml:"dir"`
	InPlace bool   `toml:"in_place"`
}

type RunConfig struct {
	Jobs     int    `toml:"jobs"` // 0 = GOMAXPROCS
	Cache    bool   `toml:"cache"`
	CacheDir string `toml:"cache_dir"`
}

// Default returns the configuration used when no manifest is found.
func Default() Config {
	return Config{
		Expand: ExpandConfig{
			Attributes: append([]string(nil), parser.DefaultNames...),
			PathMacros: append([]string(nil), parser.DefaultNames...),
			Duplicates: mono.DuplicatesFirst.String(),
			Unused:     mono.UnusedWarn.String(),
		},
		Output: OutputConfig{Dir: DefaultOutDir},
		Run:    RunConfig{CacheDir: filepath.Join("target", "monoforce-cache")},
	}
}

// ValueError reports a configuration value that cannot be used.
type ValueError struct {
	Path  string // файл, пусто для значений из флагов
	Key   string // "expand.duplicates"
	Value string
	Err   error
}

func (e *ValueError) Error() string {
	where := e.Key
	if e.Path != "" {
		where = e.Path + ": " + e.Key
	}
	return fmt.Sprintf("%s %s: invalid value %q: %v", diag.CfgInvalidValue.ID(), where, e.Value, e.Err)
}

func (e *ValueError) Unwrap() error { return e.Err }

// Load decodes path on top of Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(path); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that may have been overridden by flags.
func (c *Config) Validate() error {
	return c.validate("")
}

func (c *Config) validate(path string) error {
	if _, err := mono.ParseDuplicatePolicy(c.Expand.Duplicates); err != nil {
		return &ValueError{Path: path, Key: "expand.duplicates", Value: c.Expand.Duplicates, Err: err}
	}
	if _, err := mono.ParseUnusedPolicy(c.Expand.Unused); err != nil {
		return &ValueError{Path: path, Key: "expand.unused", Value: c.Expand.Unused, Err: err}
	}
	for _, name := range c.Expand.Attributes {
		if !validPath(name) {
			return &ValueError{Path: path, Key: "expand.attributes", Value: name, Err: errBadPath}
		}
	}
	for _, name := range c.Expand.PathMacros {
		if !validPath(name) {
			return &ValueError{Path: path, Key: "expand.path_macros", Value: name, Err: errBadPath}
		}
	}
	if c.Run.Jobs < 0 {
		return &ValueError{Path: path, Key: "run.jobs", Value: fmt.Sprint(c.Run.Jobs), Err: errNegative}
	}
	if !c.Output.InPlace && strings.TrimSpace(c.Output.Dir) == "" {
		return &ValueError{Path: path, Key: "output.dir", Value: c.Output.Dir, Err: errEmptyDir}
	}
	return nil
}

// ExpandOptions converts the [expand] section for the expander.
func (c *Config) ExpandOptions() (expand.Options, error) {
	dup, err := mono.ParseDuplicatePolicy(c.Expand.Duplicates)
	if err != nil {
		return expand.Options{}, &ValueError{Key: "expand.duplicates", Value: c.Expand.Duplicates, Err: err}
	}
	unused, err := mono.ParseUnusedPolicy(c.Expand.Unused)
	if err != nil {
		return expand.Options{}, &ValueError{Key: "expand.unused", Value: c.Expand.Unused, Err: err}
	}
	return expand.Options{
		Attributes: c.Expand.Attributes,
		PathMacros: c.Expand.PathMacros,
		Mono:       mono.Options{Duplicates: dup, Unused: unused},
	}, nil
}

// Jobs returns the worker count, resolving 0 to GOMAXPROCS.
func (c *Config) Jobs() int {
	if c.Run.Jobs > 0 {
		return c.Run.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

// validPath accepts "mono" and "a::b"; segments are identifiers.
func validPath(p string) bool {
	p = strings.TrimPrefix(strings.TrimSpace(p), "::")
	if p == "" {
		return false
	}
	for _, seg := range strings.Split(p, "::") {
		seg = strings.TrimPrefix(strings.TrimSpace(seg), "r#")
		if seg == "" {
			return false
		}
		for i, r := range seg {
			if r == '_' || unicode.IsLetter(r) || (i > 0 && r >= '0' && r <= '9') {
				continue
			}
			return false
		}
	}
	return true
}
