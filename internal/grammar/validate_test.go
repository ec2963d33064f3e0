package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_CleanGrammar(t *testing.T) {
	assert.NoError(t, bindFixture().Validate())
}

func TestValidate_NoRules(t *testing.T) {
	g := New("bind")
	err := g.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start rule")
}

func TestValidate_UndefinedSymbol(t *testing.T) {
	g := New("bind")
	g.Rules.Add("source_file", Seq(Sym("ghost"), Str(";")))
	err := g.Validate()
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "bind", verr.Grammar)
	require.Len(t, verr.Issues, 1)
	assert.Contains(t, verr.Issues[0], `undefined symbol "ghost"`)
}

func TestValidate_ExternalSymbolResolves(t *testing.T) {
	// A symbol defined only by the external scanner is not undefined.
	g := New("bind")
	g.Externals = []Rule{Sym("heredoc_body")}
	g.Rules.Add("source_file", Sym("heredoc_body"))
	assert.NoError(t, g.Validate())
}

func TestValidate_WordMustResolve(t *testing.T) {
	g := New("bind")
	g.Word = "identifier"
	g.Rules.Add("source_file", Blank())
	err := g.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `word token "identifier"`)
}

func TestValidate_InlineAndSupertypes(t *testing.T) {
	g := New("bind")
	g.Rules.Add("source_file", Blank())
	g.Inline = []string{"missing_inline"}
	g.Supertypes = []string{"missing_super"}
	err := g.Validate()
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Issues, 2)
}

func TestValidate_ConflictGroups(t *testing.T) {
	g := New("bind")
	g.Rules.Add("source_file", Blank())
	g.Conflicts = [][]string{{"source_file", "phantom"}}
	err := g.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `conflict group 0`)
}

func TestValidate_EmptyPattern(t *testing.T) {
	g := New("bind")
	g.Rules.Add("source_file", Pat(""))
	err := g.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty pattern")
}

func TestValidate_UncompilablePattern(t *testing.T) {
	g := New("bind")
	g.Rules.Add("source_file", Pat("["))
	err := g.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uncompilable pattern")
}

func TestValidate_EmptyStringLiteral(t *testing.T) {
	g := New("bind")
	g.Rules.Add("source_file", Str(""))
	err := g.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty string literal")
}

func TestValidate_BadGrammarName(t *testing.T) {
	g := New("not a name")
	g.Rules.Add("source_file", Blank())
	err := g.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid grammar name")
}

func TestValidate_ChecksExtrasAndPrecedences(t *testing.T) {
	g := New("bind")
	g.Rules.Add("source_file", Blank())
	g.Extras = []Rule{Sym("comment")} // undefined
	g.Precedences = [][]Rule{{Sym("alpha")}}

	err := g.Validate()
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Issues, 2)
}

func TestValidate_CollectsAllIssues(t *testing.T) {
	g := New("bind")
	g.Word = "nope"
	g.Rules.Add("source_file", Seq(Sym("a"), Sym("b")))
	err := g.Validate()
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	// word + two undefined symbols, all reported in one pass
	assert.Len(t, verr.Issues, 3)
}
