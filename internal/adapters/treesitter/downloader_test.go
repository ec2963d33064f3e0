package treesitter

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlatformString(t *testing.T) {
	p := PlatformString()
	assert.Equal(t, runtime.GOOS+"-"+runtime.GOARCH, p)
}

func TestGlobalGrammarDir(t *testing.T) {
	dir := GlobalGrammarDir()
	assert.NotEmpty(t, dir)
	assert.Contains(t, dir, ".parsley")
	assert.Contains(t, dir, "grammars")
}

func TestSHA256File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob")
	require.NoError(t, os.WriteFile(path, []byte("grammar bytes"), 0o644))

	sum := sha256.Sum256([]byte("grammar bytes"))
	digest, err := SHA256File(path)
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(sum[:]), digest)
}

func TestSHA256File_Missing(t *testing.T) {
	_, err := SHA256File(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

// artifactServer serves body for any artifact request.
func artifactServer(t *testing.T, body []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDownloader_Fetch(t *testing.T) {
	body := []byte("fake grammar artifact")
	srv := artifactServer(t, body)
	dir := t.TempDir()

	sum := sha256.Sum256(body)
	info := GrammarInfo{
		Name:   "bind",
		SHA256: PlatHash{PlatformString(): hex.EncodeToString(sum[:])},
	}

	dl := NewDownloader(srv.URL, dir)
	installed, err := dl.Fetch(info)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "bind"+LibExtension()), installed)

	data, err := os.ReadFile(installed)
	require.NoError(t, err)
	assert.Equal(t, body, data)

	ok, err := dl.VerifyInstalled(info)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDownloader_Fetch_SHAMismatch(t *testing.T) {
	srv := artifactServer(t, []byte("tampered artifact"))
	dir := t.TempDir()

	info := GrammarInfo{
		Name:   "bind",
		SHA256: PlatHash{PlatformString(): "deadbeef"},
	}

	dl := NewDownloader(srv.URL, dir)
	_, err := dl.Fetch(info)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHA-256 mismatch")

	// The rejected download must not be left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDownloader_Fetch_NoDigestInManifest(t *testing.T) {
	// No digest for this platform: install proceeds unverified.
	body := []byte("artifact without digest")
	srv := artifactServer(t, body)
	dir := t.TempDir()

	dl := NewDownloader(srv.URL, dir)
	installed, err := dl.Fetch(GrammarInfo{Name: "dash"})
	require.NoError(t, err)
	assert.FileExists(t, installed)

	ok, err := dl.VerifyInstalled(GrammarInfo{Name: "dash"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDownloader_Fetch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	dl := NewDownloader(srv.URL, t.TempDir())
	_, err := dl.Fetch(GrammarInfo{Name: "bind"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestDownloader_ArtifactURL(t *testing.T) {
	dl := NewDownloader("https://example.com/grammars", t.TempDir())
	url := dl.artifactURL(GrammarInfo{Name: "tsx"})
	// tsx resolves to the typescript artifact.
	assert.Equal(t, "https://example.com/grammars/"+PlatformString()+"/typescript"+LibExtension(), url)
}
