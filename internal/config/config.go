// Package config loads optional editor configuration from a TOML or
// YAML file. A missing file is not an error; the zero Config is a fully
// working default.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/kiln-editor/kiln/internal/syntax"
)

// Config is the editor configuration.
type Config struct {
	// AutoClosePairs makes typing '{' or '(' insert the matching closer
	// and leave the cursor between the pair. Off by default.
	AutoClosePairs bool `toml:"auto_close_pairs" yaml:"auto_close_pairs"`

	// Languages adds user-defined language profiles. They shadow
	// built-in profiles with overlapping extensions.
	Languages []Language `toml:"languages" yaml:"languages"`
}

// Language is a user-defined language profile in configuration form.
type Language struct {
	Name        string   `toml:"name" yaml:"name"`
	Extensions  []string `toml:"extensions" yaml:"extensions"`
	Keywords    []string `toml:"keywords" yaml:"keywords"`
	LineComment string   `toml:"line_comment" yaml:"line_comment"`
	Numbers     bool     `toml:"numbers" yaml:"numbers"`
	Strings     bool     `toml:"strings" yaml:"strings"`
}

// Profile converts the configuration form into a syntax profile.
func (l Language) Profile() *syntax.Profile {
	return &syntax.Profile{
		Name:        l.Name,
		Extensions:  l.Extensions,
		Keywords:    l.Keywords,
		LineComment: l.LineComment,
		Numbers:     l.Numbers,
		Strings:     l.Strings,
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{}
}

// Load reads configuration from path, choosing the parser by file
// extension (.toml, .yaml, .yml). A nonexistent file returns the default
// configuration and no error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	return cfg, nil
}

// LoadDefault looks for kiln.toml, kiln.yaml, or kiln.yml in the user
// config directory and loads the first that exists.
func LoadDefault() (*Config, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return Default(), nil
	}
	for _, name := range []string{"kiln.toml", "kiln.yaml", "kiln.yml"} {
		path := filepath.Join(dir, "kiln", name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

// Apply registers the user-defined languages into the registry.
func (c *Config) Apply(registry *syntax.Registry) {
	for _, l := range c.Languages {
		registry.Register(l.Profile())
	}
}
