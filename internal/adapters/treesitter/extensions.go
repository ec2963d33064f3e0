package treesitter

import (
	"path/filepath"
	"strings"
)

// grammarExtMap maps file extensions (and extensionless special filenames)
// to grammar names. Covers the compiled-in set plus grammars commonly
// installed as dynamic artifacts.
var grammarExtMap = map[string]string{
	".bind": "bind",
	".dash": "dash",

	".sh": "bash", ".bash": "bash", ".zsh": "bash",
	".c": "c", ".h": "c",
	".go": "go",
	".js": "javascript", ".jsx": "javascript", ".mjs": "javascript", ".cjs": "javascript",
	".json": "json", ".jsonc": "json",
	".py": "python", ".pyw": "python",
	".rs":  "rust",
	".ts":  "typescript",
	".mts": "typescript",
	".tsx": "tsx",
	".toml": "toml",
	".yaml": "yaml", ".yml": "yaml",

	// Dynamic-only grammars from the manifest.
	".lua":  "lua",
	".html": "html", ".htm": "html",
	".css": "css",
	".md":  "markdown", ".mdx": "markdown",
	".tf": "hcl", ".hcl": "hcl",
}

// ExtensionToLanguage returns the grammar name for a file extension (with
// leading dot) or special filename, or "" when unknown.
func ExtensionToLanguage(ext string) string {
	return grammarExtMap[strings.ToLower(ext)]
}

// DetectLanguage determines the grammar name from a file path. Special
// filenames without extensions are checked before the extension map.
func DetectLanguage(path string) string {
	base := filepath.Base(path)
	if lang, ok := grammarExtMap[base]; ok {
		return lang
	}
	return ExtensionToLanguage(filepath.Ext(path))
}
