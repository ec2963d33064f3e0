package treesitter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinManifest_ProjectGrammars(t *testing.T) {
	m := BuiltinManifest()
	for _, name := range ProjectGrammars {
		info, ok := m.Grammars[name]
		require.True(t, ok, "manifest missing project grammar %q", name)
		assert.Equal(t, "project", info.Tier)
		assert.NotEmpty(t, info.Version)
		assert.NotEmpty(t, info.Extensions)
	}
}

func TestBuiltinManifest_TiersAreKnown(t *testing.T) {
	m := BuiltinManifest()
	known := make(map[string]bool)
	for _, tier := range AllTiers {
		known[tier.Code] = true
	}
	for name, info := range m.Grammars {
		assert.True(t, known[info.Tier], "grammar %q has unknown tier %q", name, info.Tier)
		assert.Equal(t, name, info.Name)
	}
}

func TestManifest_GrammarsByTier(t *testing.T) {
	m := BuiltinManifest()
	project := m.GrammarsByTier("project")
	assert.ElementsMatch(t, []string{"bind", "dash"}, project)
	assert.Empty(t, m.GrammarsByTier("bogus"))
}

func TestManifest_PackGrammars(t *testing.T) {
	m := BuiltinManifest()
	assert.ElementsMatch(t, []string{"bind", "dash"}, m.PackGrammars("project"))
	assert.NotEmpty(t, m.PackGrammars("core"))
	assert.Len(t, m.PackGrammars("all"), len(m.Grammars))
	assert.Nil(t, m.PackGrammars("unknown"))
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")

	data, err := json.Marshal(BuiltinManifest())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Version)
	assert.Contains(t, m.Grammars, "bind")
	assert.Contains(t, m.Grammars, "dash")
}

func TestLoadManifest_Missing(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read manifest")
}

func TestLoadManifest_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err := LoadManifest(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse manifest")
}

func TestManifest_ExtensionsMatchExtMap(t *testing.T) {
	// Every manifest extension must route back to its grammar (or, for
	// grammars sharing an artifact, stay consistent with the ext map).
	m := BuiltinManifest()
	for name, info := range m.Grammars {
		for _, ext := range info.Extensions {
			mapped := ExtensionToLanguage(ext)
			assert.Equal(t, name, mapped, "extension %s of %s maps to %s", ext, name, mapped)
		}
	}
}
