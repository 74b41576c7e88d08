// Package config loads the uma.toml project file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
)

// FileName is the project file looked up by Find.
const FileName = "uma.toml"

// LanguageVersion is the version of the language this toolchain accepts.
// Projects pin a compatible range with [package].language.
const LanguageVersion = "0.1.0"

// ErrNotFound is returned by Find when no project file exists up to the
// filesystem root.
var ErrNotFound = errors.New("no " + FileName + " found")

// ColorMode selects when diagnostics are colored.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config holds the complete project configuration
type Config struct {
	Package     PackageConfig     `toml:"package"`
	Build       BuildConfig       `toml:"build"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`

	// Path is the file the configuration was loaded from, empty for defaults.
	Path string `toml:"-"`
}

type PackageConfig struct {
	Name     string `toml:"name"`
	Language string `toml:"language"` // semver constraint, e.g. "^0.1"
}

type BuildConfig struct {
	Compiler string   `toml:"compiler"`
	Output   string   `toml:"output"`
	Flags    []string `toml:"flags"`
	KeepC    bool     `toml:"keep_c"`
}

type DiagnosticsConfig struct {
	Color        ColorMode `toml:"color"`
	ContextLines int       `toml:"context_lines"`
}

// Default is the configuration used when no project file exists.
func Default() *Config {
	return &Config{
		Package: PackageConfig{
			Language: ">=" + LanguageVersion,
		},
		Build: BuildConfig{
			Compiler: "cc",
		},
		Diagnostics: DiagnosticsConfig{
			Color:        ColorAuto,
			ContextLines: 2,
		},
	}
}

// Load reads a project file on top of the defaults and validates it.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Find walks from dir towards the root and returns the first project file.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// LoadFor finds the project file governing dir, falling back to defaults.
func LoadFor(dir string) (*Config, error) {
	path, err := Find(dir)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Validate checks the settings and that this toolchain satisfies the
// language constraint.
func (c *Config) Validate() error {
	if c.Package.Language != "" {
		constraint, err := semver.NewConstraint(c.Package.Language)
		if err != nil {
			return fmt.Errorf("invalid language constraint %q: %w", c.Package.Language, err)
		}
		if !constraint.Check(semver.MustParse(LanguageVersion)) {
			return fmt.Errorf("language %s does not satisfy %q", LanguageVersion, c.Package.Language)
		}
	}

	switch c.Diagnostics.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q, expected auto, always or never", c.Diagnostics.Color)
	}

	if c.Diagnostics.ContextLines < 0 {
		return fmt.Errorf("context_lines must not be negative")
	}
	if c.Build.Compiler == "" {
		return fmt.Errorf("build.compiler must not be empty")
	}
	return nil
}

// UseColor resolves the color mode for an output that is or is not a
// terminal.
func (c *Config) UseColor(terminal bool) bool {
	switch c.Diagnostics.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return terminal
	}
}

// OutputFor names the binary built from source when build.output is unset.
func (c *Config) OutputFor(source string) string {
	if c.Build.Output != "" {
		return c.Build.Output
	}
	if c.Package.Name != "" {
		return c.Package.Name
	}
	return strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
}
