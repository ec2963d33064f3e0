//go:build !lean

package treesitter

// This file registers the compiled-in grammars. It is included in the
// default build (go build / go install) but excluded when building with
// -tags lean, which produces a binary that loads every grammar dynamically
// from .so/.dylib artifacts.

import (
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	ts_toml "github.com/tree-sitter-grammars/tree-sitter-toml/bindings/go"
	ts_yaml "github.com/tree-sitter-grammars/tree-sitter-yaml/bindings/go"
	ts_bash "github.com/tree-sitter/tree-sitter-bash/bindings/go"
	ts_c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	ts_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_json "github.com/tree-sitter/tree-sitter-json/bindings/go"
	ts_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	ts_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// langPtr wraps a Language() call that returns unsafe.Pointer.
func langPtr(p unsafe.Pointer) *tree_sitter.Language {
	return tree_sitter.NewLanguage(p)
}

// registerBuiltinLanguages adds all compiled-in grammars to the registry.
// Bind and dash are never compiled in — they are this project's own
// grammars, built by `tree-sitter generate` and installed as artifacts.
func (r *Registry) registerBuiltinLanguages() {
	r.addLang("bash", langPtr(ts_bash.Language()))
	r.addLang("c", langPtr(ts_c.Language()))
	r.addLang("go", langPtr(ts_go.Language()))
	r.addLang("javascript", langPtr(ts_javascript.Language()))
	r.addLang("json", langPtr(ts_json.Language()))
	r.addLang("python", langPtr(ts_python.Language()))
	r.addLang("rust", langPtr(ts_rust.Language()))
	r.addLang("typescript", langPtr(ts_typescript.LanguageTypescript()))
	r.addLang("tsx", langPtr(ts_typescript.LanguageTSX()))
	r.addLang("toml", langPtr(ts_toml.Language()))
	r.addLang("yaml", langPtr(ts_yaml.Language()))
}
