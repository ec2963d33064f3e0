package bind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/parsley/internal/grammar"
)

func TestGrammar_Valid(t *testing.T) {
	g := Grammar()
	require.NoError(t, g.Validate())
	assert.Equal(t, "bind", g.Name)
	assert.Equal(t, "source_file", g.Rules.Start())

	_, ok := g.Rules.Get(g.Word)
	assert.True(t, ok, "word token %q must be a rule", g.Word)
}

func TestGrammar_Roundtrip(t *testing.T) {
	g := Grammar()
	data, err := g.Encode()
	require.NoError(t, err)

	parsed, err := grammar.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, g.Rules.Names(), parsed.Rules.Names())
	require.NoError(t, parsed.Validate())
}
