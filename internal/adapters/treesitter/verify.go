package treesitter

import (
	"errors"
	"time"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/corey/parsley/internal/ports"
)

// ProjectGrammars are this project's own grammars and the default
// verification set when no names are given.
var ProjectGrammars = []string{"bind", "dash"}

// Result is the outcome of one grammar load verification. It is a binary
// pass/fail gate: any error on the load path fails the grammar, with no
// retries and no recovery.
type Result struct {
	Grammar  string
	Path     string // artifact path, "" for compiled-in grammars
	Builtin  bool
	Err      error
	Duration time.Duration
}

// OK reports whether the grammar loaded cleanly.
func (r Result) OK() bool {
	return r.Err == nil
}

// Verifier checks that grammars load: the accessor yields a non-null
// language and a parser accepts it. Loads go through the registry's cache,
// so verifying the same grammar twice in one process is side-effect-free
// and yields the same outcome.
type Verifier struct {
	registry *Registry
}

// NewVerifier creates a verifier over a registry.
func NewVerifier(registry *Registry) *Verifier {
	return &Verifier{registry: registry}
}

// Verify loads one grammar and confirms a parser accepts the resulting
// language. Every failure mode — missing artifact, dlopen error, null
// grammar pointer, ABI version rejection — collapses into a *LoadError
// naming the grammar.
func (v *Verifier) Verify(name string) Result {
	start := time.Now()
	res := Result{
		Grammar: name,
		Builtin: v.registry.IsBuiltin(name),
	}
	if !res.Builtin && v.registry.Loader() != nil {
		res.Path = v.registry.Loader().GrammarPath(name)
	}

	lang, err := v.registry.LoadGrammar(name)
	if err != nil {
		res.Err = asLoadError(name, err)
		res.Duration = time.Since(start)
		return res
	}
	if lang == nil {
		res.Err = loadErr(name, "loader returned nil language")
		res.Duration = time.Since(start)
		return res
	}

	// The load contract includes construction: the language must be
	// acceptable to a parser. SetLanguage rejects ABI-incompatible
	// grammars that dlopen happily resolved.
	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(lang); err != nil {
		res.Err = loadErr(name, "parser rejected language: %w", err)
	}
	res.Duration = time.Since(start)
	return res
}

// VerifyAll verifies each named grammar in order. With no names it falls
// back to the project grammars (bind, dash).
func (v *Verifier) VerifyAll(names []string) []Result {
	if len(names) == 0 {
		names = ProjectGrammars
	}
	results := make([]Result, 0, len(names))
	for _, name := range names {
		results = append(results, v.Verify(name))
	}
	return results
}

// RecordResult converts a verification outcome onto a grammar record for
// persistence, stamping the verification time.
func RecordResult(rec *ports.GrammarRecord, res Result, now time.Time) {
	rec.VerifiedAt = now.Unix()
	rec.VerifyOK = res.OK()
	if res.Err != nil {
		rec.VerifyError = res.Err.Error()
	} else {
		rec.VerifyError = ""
	}
}

// asLoadError ensures err is (or wraps) a LoadError for the grammar.
func asLoadError(grammar string, err error) error {
	var le *LoadError
	if errors.As(err, &le) {
		return err
	}
	return &LoadError{Grammar: grammar, Err: err}
}
