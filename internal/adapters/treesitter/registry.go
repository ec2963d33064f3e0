// Package treesitter resolves grammar names to loadable tree-sitter
// languages and verifies that loading them succeeds. Grammars come from two
// places: Go binding modules compiled into the binary via CGo, and shared
// library artifacts produced by `tree-sitter generate` and loaded at
// runtime via purego.
package treesitter

import (
	"sort"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Registry resolves grammar names against compiled-in bindings first, then
// falls back to the dynamic loader when one is configured. It implements
// ports.Loader.
type Registry struct {
	languages map[string]*tree_sitter.Language
	loader    *DynamicLoader
}

// NewRegistry creates a registry with all compiled-in grammars registered.
// In lean builds the compiled-in set is empty and everything loads
// dynamically.
func NewRegistry() *Registry {
	r := &Registry{
		languages: make(map[string]*tree_sitter.Language),
	}
	r.registerBuiltinLanguages()
	return r
}

// addLang registers a compiled-in language by name.
func (r *Registry) addLang(name string, lang *tree_sitter.Language) {
	if lang != nil {
		r.languages[name] = lang
	}
}

// SetGrammarPaths configures dynamic loading from shared libraries found in
// the given directories. Project-local paths should come first, global
// paths last.
func (r *Registry) SetGrammarPaths(paths []string) {
	r.loader = NewDynamicLoader(paths)
}

// Loader returns the dynamic grammar loader, or nil if not configured.
func (r *Registry) Loader() *DynamicLoader {
	return r.loader
}

// LoadGrammar returns the language for a grammar name. Compiled-in
// grammars win over dynamic artifacts of the same name. Failures are
// *LoadError values naming the grammar.
func (r *Registry) LoadGrammar(name string) (*tree_sitter.Language, error) {
	if lang, ok := r.languages[name]; ok {
		return lang, nil
	}
	if r.loader != nil {
		return r.loader.LoadGrammar(name)
	}
	return nil, loadErr(name, "not compiled in and no grammar paths configured")
}

// HasGrammar reports whether a grammar is available, compiled-in or as a
// discoverable artifact, without loading it.
func (r *Registry) HasGrammar(name string) bool {
	if _, ok := r.languages[name]; ok {
		return true
	}
	return r.loader != nil && r.loader.HasGrammar(name)
}

// IsBuiltin reports whether the grammar is compiled into the binary.
func (r *Registry) IsBuiltin(name string) bool {
	_, ok := r.languages[name]
	return ok
}

// BuiltinGrammars returns the names of compiled-in grammars, sorted.
func (r *Registry) BuiltinGrammars() []string {
	names := make([]string, 0, len(r.languages))
	for name := range r.languages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
