package ports

import tree_sitter "github.com/tree-sitter/go-tree-sitter"

// Loader resolves a grammar name to a usable tree-sitter language. The
// concrete implementations (compiled-in registry, purego dynamic loader)
// live in internal/adapters/treesitter.
//
// Loading must be idempotent: repeated calls for the same grammar within a
// process return the same outcome and carry no caller-visible side effects.
type Loader interface {
	// LoadGrammar returns the language for a grammar name. The error chain
	// for any failure — missing artifact, unloadable library, null grammar
	// pointer — must include a treesitter.LoadError naming the grammar.
	LoadGrammar(name string) (*tree_sitter.Language, error)

	// HasGrammar reports whether the grammar can be resolved without
	// actually loading it (compiled in, or an artifact is present).
	HasGrammar(name string) bool
}
