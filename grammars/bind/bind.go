// Package bind defines the bind grammar: a declarative binding language
// where a source file is a sequence of name/value bindings. The definition
// is written with the grammar constructors and emitted as src/grammar.json
// for the tree-sitter toolchain to compile.
package bind

import "github.com/corey/parsley/internal/grammar"

// Grammar returns the bind grammar definition.
func Grammar() *grammar.Grammar {
	g := grammar.New("bind")
	g.Word = "identifier"
	g.Extras = []grammar.Rule{
		grammar.Sym("comment"),
		grammar.Pat(`\s`),
	}
	g.Supertypes = []string{"_expression"}

	r := &g.Rules
	r.Add("source_file", grammar.Rep(grammar.Sym("binding")))
	r.Add("binding", grammar.Seq(
		grammar.Field("name", grammar.Sym("identifier")),
		grammar.Str(":"),
		grammar.Field("value", grammar.Sym("_expression")),
	))
	r.Add("_expression", grammar.Choice(
		grammar.Sym("reference"),
		grammar.Sym("string"),
		grammar.Sym("number"),
		grammar.Sym("boolean"),
		grammar.Sym("list"),
		grammar.Sym("block"),
	))
	r.Add("reference", grammar.Seq(
		grammar.Sym("identifier"),
		grammar.Rep(grammar.Seq(grammar.Str("."), grammar.Sym("identifier"))),
	))
	r.Add("list", grammar.Seq(
		grammar.Str("["),
		grammar.Opt(grammar.Seq(
			grammar.Sym("_expression"),
			grammar.Rep(grammar.Seq(grammar.Str(","), grammar.Sym("_expression"))),
			grammar.Opt(grammar.Str(",")),
		)),
		grammar.Str("]"),
	))
	r.Add("block", grammar.Seq(
		grammar.Str("{"),
		grammar.Rep(grammar.Sym("binding")),
		grammar.Str("}"),
	))
	r.Add("boolean", grammar.Choice(grammar.Str("true"), grammar.Str("false")))
	r.Add("identifier", grammar.Pat(`[a-zA-Z_][a-zA-Z0-9_-]*`))
	r.Add("string", grammar.Token(grammar.Seq(
		grammar.Str(`"`),
		grammar.Pat(`[^"\\]*(\\.[^"\\]*)*`),
		grammar.Str(`"`),
	)))
	r.Add("number", grammar.Pat(`-?\d+(\.\d+)?`))
	r.Add("comment", grammar.Token(grammar.Pat(`#[^\n]*`)))
	return g
}
