//go:build !lean

package treesitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbe_CleanGoSource(t *testing.T) {
	reg := NewRegistry()
	lang, err := reg.LoadGrammar("go")
	require.NoError(t, err)

	source := []byte(`package main

func main() {
	println("hi")
}
`)
	report, err := Probe("go", lang, source)
	require.NoError(t, err)

	assert.Equal(t, "source_file", report.RootKind)
	assert.True(t, report.Clean(), "errors=%d missing=%d", report.ErrorNodes, report.MissingNodes)
	assert.Greater(t, report.Nodes, 5)
	assert.Greater(t, report.NamedNodes, 0)
	assert.Greater(t, report.MaxDepth, 2)
	assert.Contains(t, report.SExpression, "function_declaration")
}

func TestProbe_BrokenSourceReportsErrors(t *testing.T) {
	reg := NewRegistry()
	lang, err := reg.LoadGrammar("json")
	require.NoError(t, err)

	report, err := Probe("json", lang, []byte(`{"unterminated": `))
	require.NoError(t, err)
	assert.False(t, report.Clean())
}

func TestProbe_EmptySource(t *testing.T) {
	reg := NewRegistry()
	lang, err := reg.LoadGrammar("python")
	require.NoError(t, err)

	report, err := Probe("python", lang, nil)
	require.NoError(t, err)
	assert.True(t, report.Clean())
	assert.Equal(t, 1, report.Nodes) // just the module root
}
