package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kiln-editor/kiln/internal/syntax"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "kiln.toml", `
auto_close_pairs = true

[[languages]]
name = "ini"
extensions = [".ini"]
keywords = ["true", "false"]
line_comment = ";"
numbers = true
strings = true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.AutoClosePairs {
		t.Error("AutoClosePairs = false, want true")
	}
	if len(cfg.Languages) != 1 {
		t.Fatalf("len(Languages) = %d, want 1", len(cfg.Languages))
	}
	l := cfg.Languages[0]
	if l.Name != "ini" || l.LineComment != ";" || !l.Numbers || !l.Strings {
		t.Errorf("language = %+v", l)
	}
}

func TestLoadYAML(t *testing.T) {
	for _, ext := range []string{"yaml", "yml"} {
		t.Run(ext, func(t *testing.T) {
			path := writeFile(t, "kiln."+ext, `
auto_close_pairs: true
languages:
  - name: ini
    extensions: [".ini"]
    keywords: ["true", "false"]
    line_comment: ";"
    numbers: true
    strings: false
`)
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if !cfg.AutoClosePairs {
				t.Error("AutoClosePairs = false, want true")
			}
			if len(cfg.Languages) != 1 || cfg.Languages[0].Name != "ini" {
				t.Errorf("languages = %+v", cfg.Languages)
			}
			if cfg.Languages[0].Strings {
				t.Error("Strings = true, want false")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AutoClosePairs {
		t.Error("missing file should yield defaults")
	}
	if len(cfg.Languages) != 0 {
		t.Errorf("len(Languages) = %d, want 0", len(cfg.Languages))
	}
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name, file, contents string
	}{
		{name: "toml", file: "kiln.toml", contents: "auto_close_pairs = ["},
		{name: "yaml", file: "kiln.yaml", contents: "auto_close_pairs: [unclosed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.contents)
			if _, err := Load(path); err == nil {
				t.Error("Load succeeded on malformed input")
			}
		})
	}
}

func TestApplyShadowsBuiltins(t *testing.T) {
	cfg := &Config{
		Languages: []Language{{
			Name:       "myc",
			Extensions: []string{".c"},
			Keywords:   []string{"only"},
		}},
	}
	registry := syntax.NewRegistry()
	cfg.Apply(registry)

	p := registry.Detect("main.c")
	if p == nil || p.Name != "myc" {
		t.Errorf("Detect(main.c) = %v, want user profile myc", p)
	}
}

func TestLanguageProfile(t *testing.T) {
	l := Language{
		Name:        "ini",
		Extensions:  []string{".ini", ".cfg"},
		Keywords:    []string{"true"},
		LineComment: ";",
		Numbers:     true,
		Strings:     true,
	}
	p := l.Profile()
	if p.Name != l.Name || p.LineComment != l.LineComment {
		t.Errorf("profile = %+v", p)
	}
	if len(p.Extensions) != 2 || len(p.Keywords) != 1 {
		t.Errorf("profile slices = %+v", p)
	}
	if !p.Numbers || !p.Strings {
		t.Error("feature flags not carried over")
	}
}
