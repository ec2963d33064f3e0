package treesitter

import (
	"encoding/json"
	"fmt"
	"os"
)

// GrammarInfo describes a single grammar in the manifest.
type GrammarInfo struct {
	Name       string   `json:"name"`
	Version    string   `json:"version"`
	Tier       string   `json:"tier"` // "project", "core", "extra"
	Extensions []string `json:"extensions"`
	RepoURL    string   `json:"repo_url"`
	Sizes      PlatSize `json:"sizes,omitempty"`
	SHA256     PlatHash `json:"sha256,omitempty"`
}

// PlatSize maps platform (e.g. "linux-amd64") to artifact size in bytes.
type PlatSize map[string]int64

// PlatHash maps platform to SHA256 hex digest.
type PlatHash map[string]string

// Manifest is the grammar registry listing all available grammars.
type Manifest struct {
	Version  int                    `json:"version"`
	BaseURL  string                 `json:"base_url"`
	Grammars map[string]GrammarInfo `json:"grammars"`
}

// LoadManifest reads a manifest from a JSON file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// GrammarsByTier returns grammar names for the given tier.
func (m *Manifest) GrammarsByTier(tier string) []string {
	var names []string
	for name, info := range m.Grammars {
		if info.Tier == tier {
			names = append(names, name)
		}
	}
	return names
}

// PackGrammars returns grammar names for a named pack.
func (m *Manifest) PackGrammars(pack string) []string {
	switch pack {
	case "project", "core", "extra":
		return m.GrammarsByTier(pack)
	case "all":
		names := make([]string, 0, len(m.Grammars))
		for name := range m.Grammars {
			names = append(names, name)
		}
		return names
	default:
		return nil
	}
}

// AllTiers defines the grammar tiers in order.
var AllTiers = []struct {
	Code string
	Name string
}{
	{"project", "Project grammars"},
	{"core", "Core languages"},
	{"extra", "Extra languages"},
}

// AllPacks defines the named install packs.
var AllPacks = []string{"project", "core", "extra", "all"}

// BuiltinManifest returns a manifest with all known grammar metadata.
// This is embedded in the binary so `parsley list` works without network.
func BuiltinManifest() *Manifest {
	return &Manifest{
		Version: 1,
		BaseURL: "https://github.com/corey/parsley/releases/download/grammars",
		Grammars: map[string]GrammarInfo{
			// Project grammars — built from this repo's grammar definitions,
			// always loaded dynamically.
			"bind": {Name: "bind", Version: "0.1.0", Tier: "project", Extensions: []string{".bind"}, RepoURL: "https://github.com/corey/tree-sitter-bind"},
			"dash": {Name: "dash", Version: "0.1.0", Tier: "project", Extensions: []string{".dash"}, RepoURL: "https://github.com/corey/tree-sitter-dash"},

			// Core — compiled into the default binary.
			"bash":       {Name: "bash", Version: "0.25.1", Tier: "core", Extensions: []string{".sh", ".bash", ".zsh"}, RepoURL: "https://github.com/tree-sitter/tree-sitter-bash"},
			"c":          {Name: "c", Version: "0.24.1", Tier: "core", Extensions: []string{".c", ".h"}, RepoURL: "https://github.com/tree-sitter/tree-sitter-c"},
			"go":         {Name: "go", Version: "0.25.0", Tier: "core", Extensions: []string{".go"}, RepoURL: "https://github.com/tree-sitter/tree-sitter-go"},
			"javascript": {Name: "javascript", Version: "0.25.0", Tier: "core", Extensions: []string{".js", ".jsx", ".mjs", ".cjs"}, RepoURL: "https://github.com/tree-sitter/tree-sitter-javascript"},
			"json":       {Name: "json", Version: "0.24.8", Tier: "core", Extensions: []string{".json", ".jsonc"}, RepoURL: "https://github.com/tree-sitter/tree-sitter-json"},
			"python":     {Name: "python", Version: "0.25.0", Tier: "core", Extensions: []string{".py", ".pyw"}, RepoURL: "https://github.com/tree-sitter/tree-sitter-python"},
			"rust":       {Name: "rust", Version: "0.24.0", Tier: "core", Extensions: []string{".rs"}, RepoURL: "https://github.com/tree-sitter/tree-sitter-rust"},
			"typescript": {Name: "typescript", Version: "0.23.2", Tier: "core", Extensions: []string{".ts", ".mts"}, RepoURL: "https://github.com/tree-sitter/tree-sitter-typescript"},
			"tsx":        {Name: "tsx", Version: "0.23.2", Tier: "core", Extensions: []string{".tsx"}, RepoURL: "https://github.com/tree-sitter/tree-sitter-typescript"},
			"toml":       {Name: "toml", Version: "0.7.0", Tier: "core", Extensions: []string{".toml"}, RepoURL: "https://github.com/tree-sitter-grammars/tree-sitter-toml"},
			"yaml":       {Name: "yaml", Version: "0.7.2", Tier: "core", Extensions: []string{".yaml", ".yml"}, RepoURL: "https://github.com/tree-sitter-grammars/tree-sitter-yaml"},

			// Extra — dynamic artifacts only.
			"lua":      {Name: "lua", Version: "0.4.1", Tier: "extra", Extensions: []string{".lua"}, RepoURL: "https://github.com/tree-sitter-grammars/tree-sitter-lua"},
			"html":     {Name: "html", Version: "0.23.2", Tier: "extra", Extensions: []string{".html", ".htm"}, RepoURL: "https://github.com/tree-sitter/tree-sitter-html"},
			"css":      {Name: "css", Version: "0.25.0", Tier: "extra", Extensions: []string{".css"}, RepoURL: "https://github.com/tree-sitter/tree-sitter-css"},
			"markdown": {Name: "markdown", Version: "0.5.2", Tier: "extra", Extensions: []string{".md", ".mdx"}, RepoURL: "https://github.com/tree-sitter-grammars/tree-sitter-markdown"},
			"hcl":      {Name: "hcl", Version: "1.2.0", Tier: "extra", Extensions: []string{".tf", ".hcl"}, RepoURL: "https://github.com/tree-sitter-grammars/tree-sitter-hcl"},
		},
	}
}
