package syntax

import (
	"path/filepath"
	"strings"
)

// SecondaryMarker suffixes a keyword entry to mark it as a secondary
// (type) keyword. The marker is stripped before comparison.
const SecondaryMarker = "|"

// Profile describes how one language is classified.
type Profile struct {
	// Name is the language name shown in the status bar.
	Name string

	// Extensions lists file extensions (including the dot) that select
	// this profile.
	Extensions []string

	// Keywords lists the language keywords. An entry ending in
	// SecondaryMarker is classified as a secondary keyword.
	Keywords []string

	// LineComment is the line comment prefix, or empty if the language
	// has none.
	LineComment string

	// Numbers enables numeric literal classification.
	Numbers bool

	// Strings enables string literal classification.
	Strings bool
}

// Registry holds the known language profiles.
type Registry struct {
	profiles []*Profile
}

// NewRegistry creates a registry preloaded with the built-in profiles.
func NewRegistry() *Registry {
	r := &Registry{}
	for _, p := range builtinProfiles() {
		r.Register(p)
	}
	return r
}

// Register adds a profile to the registry. Later registrations take
// precedence over earlier ones when extensions overlap, so user-defined
// profiles can shadow built-ins.
func (r *Registry) Register(p *Profile) {
	r.profiles = append([]*Profile{p}, r.profiles...)
}

// Detect returns the profile matching the filename's extension, or nil
// if no profile matches.
func (r *Registry) Detect(filename string) *Profile {
	ext := filepath.Ext(filename)
	if ext == "" {
		return nil
	}
	for _, p := range r.profiles {
		for _, pe := range p.Extensions {
			if strings.EqualFold(pe, ext) {
				return p
			}
		}
	}
	return nil
}

// Profiles returns the registered profiles, most recently registered first.
func (r *Registry) Profiles() []*Profile {
	out := make([]*Profile, len(r.profiles))
	copy(out, r.profiles)
	return out
}

// builtinProfiles returns the statically known languages.
func builtinProfiles() []*Profile {
	return []*Profile{
		{
			Name:       "c",
			Extensions: []string{".c", ".h", ".cpp"},
			Keywords: []string{
				"switch", "if", "while", "for", "break", "continue", "return", "else",
				"struct", "union", "typedef", "static", "enum", "class", "case",
				"int|", "long|", "double|", "float|", "char|", "unsigned|", "signed|",
				"void|",
			},
			LineComment: "//",
			Numbers:     true,
			Strings:     true,
		},
		{
			Name:       "go",
			Extensions: []string{".go"},
			Keywords: []string{
				"break", "case", "chan", "const", "continue", "default", "defer",
				"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
				"interface", "map", "package", "range", "return", "select", "struct",
				"switch", "type", "var",
				"bool|", "byte|", "error|", "float32|", "float64|", "int|", "int8|",
				"int16|", "int32|", "int64|", "rune|", "string|", "uint|", "uint8|",
				"uint16|", "uint32|", "uint64|", "uintptr|", "any|",
			},
			LineComment: "//",
			Numbers:     true,
			Strings:     true,
		},
		{
			Name:       "python",
			Extensions: []string{".py", ".pyw"},
			Keywords: []string{
				"and", "as", "assert", "break", "class", "continue", "def", "del",
				"elif", "else", "except", "finally", "for", "from", "global", "if",
				"import", "in", "is", "lambda", "not", "or", "pass", "raise",
				"return", "try", "while", "with", "yield",
				"True|", "False|", "None|", "int|", "float|", "str|", "bool|",
				"list|", "dict|", "set|", "tuple|",
			},
			LineComment: "#",
			Numbers:     true,
			Strings:     true,
		},
	}
}
