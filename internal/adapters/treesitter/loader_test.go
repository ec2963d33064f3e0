package treesitter

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSymbolName(t *testing.T) {
	tests := []struct {
		grammar  string
		expected string
	}{
		{"bind", "tree_sitter_bind"},
		{"dash", "tree_sitter_dash"},
		{"python", "tree_sitter_python"},
		{"typescript", "tree_sitter_typescript"},
		{"tsx", "tree_sitter_tsx"},
		{"c-sharp", "tree_sitter_c_sharp"},
	}
	for _, tt := range tests {
		t.Run(tt.grammar, func(t *testing.T) {
			assert.Equal(t, tt.expected, CSymbolName(tt.grammar))
		})
	}
}

func TestSOBaseName(t *testing.T) {
	assert.Equal(t, "bind", SOBaseName("bind"))
	assert.Equal(t, "dash", SOBaseName("dash"))
	// tsx ships inside the typescript artifact
	assert.Equal(t, "typescript", SOBaseName("tsx"))
}

func TestLibExtension(t *testing.T) {
	ext := LibExtension()
	switch runtime.GOOS {
	case "darwin":
		assert.Equal(t, ".dylib", ext)
	default:
		assert.Equal(t, ".so", ext)
	}
}

func TestDefaultGrammarPaths(t *testing.T) {
	paths := DefaultGrammarPaths("/project/root")
	require.GreaterOrEqual(t, len(paths), 1)
	assert.Equal(t, "/project/root/.parsley/grammars", paths[0])

	if len(paths) > 1 {
		home, _ := os.UserHomeDir()
		assert.Equal(t, filepath.Join(home, ".parsley", "grammars"), paths[1])
	}
}

func TestDefaultGrammarPaths_EmptyRoot(t *testing.T) {
	paths := DefaultGrammarPaths("")
	if home, err := os.UserHomeDir(); err == nil {
		require.Equal(t, 1, len(paths))
		assert.Equal(t, filepath.Join(home, ".parsley", "grammars"), paths[0])
	}
}

func TestDynamicLoader_LoadGrammar_NotFound(t *testing.T) {
	dl := NewDynamicLoader([]string{"/nonexistent/path"})
	_, err := dl.LoadGrammar("bind")
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "bind", le.Grammar)
	assert.Contains(t, err.Error(), "error loading bind grammar")
}

func TestDynamicLoader_LoadGrammar_CorruptArtifact(t *testing.T) {
	// An empty file where the shared library should be: dlopen must fail,
	// and the failure must name the grammar.
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dash"+LibExtension()), nil, 0o644))

	dl := NewDynamicLoader([]string{dir})
	_, err := dl.LoadGrammar("dash")
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "dash", le.Grammar)
	assert.Contains(t, err.Error(), "error loading dash grammar")
}

func TestDynamicLoader_GrammarPath(t *testing.T) {
	dir := t.TempDir()
	ext := LibExtension()
	soPath := filepath.Join(dir, "bind"+ext)
	require.NoError(t, os.WriteFile(soPath, []byte("x"), 0o644))

	dl := NewDynamicLoader([]string{dir})
	assert.Equal(t, soPath, dl.GrammarPath("bind"))
	assert.Equal(t, "", dl.GrammarPath("dash"))
}

func TestDynamicLoader_HasGrammar(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bind"+LibExtension()), []byte("x"), 0o644))

	dl := NewDynamicLoader([]string{dir})
	assert.True(t, dl.HasGrammar("bind"))
	assert.False(t, dl.HasGrammar("dash"))
}

func TestDynamicLoader_SearchPathPriority(t *testing.T) {
	// Same grammar in two dirs — first path wins.
	dir1 := t.TempDir()
	dir2 := t.TempDir()
	ext := LibExtension()

	path1 := filepath.Join(dir1, "bind"+ext)
	path2 := filepath.Join(dir2, "bind"+ext)
	for _, p := range []string{path1, path2} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}

	dl := NewDynamicLoader([]string{dir1, dir2})
	assert.Equal(t, path1, dl.GrammarPath("bind"))
}

func TestDynamicLoader_InstalledGrammars(t *testing.T) {
	dir := t.TempDir()
	ext := LibExtension()
	for _, g := range []string{"bind", "dash", "lua"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, g+ext), []byte("x"), 0o644))
	}
	// A non-artifact file must not show up.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("x"), 0o644))

	dl := NewDynamicLoader([]string{dir})
	grammars := dl.InstalledGrammars()
	assert.ElementsMatch(t, []string{"bind", "dash", "lua"}, grammars)
}

func TestDynamicLoader_InstalledGrammars_Dedup(t *testing.T) {
	dir1 := t.TempDir()
	dir2 := t.TempDir()
	ext := LibExtension()
	for _, dir := range []string{dir1, dir2} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "bind"+ext), []byte("x"), 0o644))
	}

	dl := NewDynamicLoader([]string{dir1, dir2})
	assert.Equal(t, []string{"bind"}, dl.InstalledGrammars())
}

func TestDynamicLoader_InstalledGrammars_EmptyDir(t *testing.T) {
	dl := NewDynamicLoader([]string{t.TempDir()})
	assert.Empty(t, dl.InstalledGrammars())
}

func TestDynamicLoader_Close(t *testing.T) {
	dl := NewDynamicLoader([]string{"/tmp"})
	dl.Close()
	assert.Empty(t, dl.loaded)
	assert.Nil(t, dl.handles)
}

func TestDynamicLoader_SearchPaths(t *testing.T) {
	paths := []string{"/a", "/b", "/c"}
	dl := NewDynamicLoader(paths)
	assert.Equal(t, paths, dl.SearchPaths())
}

func TestLoadError_Unwrap(t *testing.T) {
	cause := os.ErrNotExist
	err := &LoadError{Grammar: "bind", Err: cause}
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadError_NoCause(t *testing.T) {
	err := &LoadError{Grammar: "dash"}
	assert.Equal(t, "error loading dash grammar", err.Error())
	assert.Nil(t, err.Unwrap())
}
