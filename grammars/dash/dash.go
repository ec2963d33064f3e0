// Package dash defines the dash grammar: a small pipeline language where a
// source file is a sequence of commands chained with pipes. Emitted as
// src/grammar.json for the tree-sitter toolchain.
package dash

import "github.com/corey/parsley/internal/grammar"

// Grammar returns the dash grammar definition.
func Grammar() *grammar.Grammar {
	g := grammar.New("dash")
	g.Word = "word"
	g.Extras = []grammar.Rule{
		grammar.Sym("comment"),
		grammar.Pat(`\s`),
	}
	g.Supertypes = []string{"_statement", "_argument"}
	g.Conflicts = [][]string{
		{"pipeline", "command"},
	}

	r := &g.Rules
	r.Add("source_file", grammar.Rep(grammar.Sym("_statement")))
	r.Add("_statement", grammar.Choice(
		grammar.Sym("pipeline"),
		grammar.Sym("command"),
		grammar.Sym("assignment"),
	))
	r.Add("pipeline", grammar.PrecLeft(1, grammar.Seq(
		grammar.Field("left", grammar.Sym("_statement")),
		grammar.Str("|"),
		grammar.Field("right", grammar.Sym("command")),
	)))
	r.Add("assignment", grammar.Seq(
		grammar.Field("name", grammar.Sym("word")),
		grammar.Str("="),
		grammar.Field("value", grammar.Sym("_argument")),
	))
	r.Add("command", grammar.PrecRight(0, grammar.Seq(
		grammar.Field("name", grammar.Sym("word")),
		grammar.Rep(grammar.Field("argument", grammar.Sym("_argument"))),
	)))
	r.Add("_argument", grammar.Choice(
		grammar.Sym("word"),
		grammar.Sym("flag"),
		grammar.Sym("string"),
		grammar.Sym("variable"),
	))
	r.Add("flag", grammar.Token(grammar.Seq(
		grammar.Str("-"),
		grammar.Pat(`-?[a-zA-Z][a-zA-Z0-9-]*`),
	)))
	r.Add("variable", grammar.Seq(
		grammar.Str("$"),
		grammar.Field("name", grammar.Sym("word")),
	))
	r.Add("string", grammar.Token(grammar.Seq(
		grammar.Str(`"`),
		grammar.Pat(`[^"\\]*(\\.[^"\\]*)*`),
		grammar.Str(`"`),
	)))
	r.Add("word", grammar.Pat(`[a-zA-Z_][a-zA-Z0-9_./-]*`))
	r.Add("comment", grammar.Token(grammar.Pat(`#[^\n]*`)))
	return g
}
