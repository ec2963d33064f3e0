package treesitter

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// PlatformString returns the OS-arch string for the current platform.
// e.g. "linux-amd64", "darwin-arm64"
func PlatformString() string {
	return runtime.GOOS + "-" + runtime.GOARCH
}

// GlobalGrammarDir returns the default global grammar directory:
// ~/.parsley/grammars/
func GlobalGrammarDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".parsley", "grammars")
}

// SHA256File computes the SHA-256 hex digest of a file.
func SHA256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Downloader fetches prebuilt grammar artifacts and verifies them against
// the manifest before installing. A mismatched digest removes the download;
// a partially written file never lands at the install path.
type Downloader struct {
	baseURL  string
	dir      string
	platform string
	client   *http.Client
}

// NewDownloader creates a downloader installing into dir from the
// manifest's base URL.
func NewDownloader(baseURL, dir string) *Downloader {
	return &Downloader{
		baseURL:  baseURL,
		dir:      dir,
		platform: PlatformString(),
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

// artifactURL is <base>/<platform>/<soBaseName><ext>.
func (d *Downloader) artifactURL(info GrammarInfo) string {
	return fmt.Sprintf("%s/%s/%s%s", d.baseURL, d.platform, SOBaseName(info.Name), LibExtension())
}

// Fetch downloads one grammar artifact, verifies its SHA-256 against the
// manifest when the manifest carries a digest for this platform, and moves
// it into the grammar directory. Returns the installed path.
func (d *Downloader) Fetch(info GrammarInfo) (string, error) {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", fmt.Errorf("create grammar dir: %w", err)
	}

	url := d.artifactURL(info)
	resp, err := d.client.Get(url)
	if err != nil {
		return "", fmt.Errorf("grammar %q: fetch %s: %w", info.Name, url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("grammar %q: fetch %s: HTTP %d", info.Name, url, resp.StatusCode)
	}

	// Download to a temp file in the target dir so the final rename is
	// atomic on the same filesystem.
	tmp, err := os.CreateTemp(d.dir, info.Name+".download-*")
	if err != nil {
		return "", fmt.Errorf("grammar %q: temp file: %w", info.Name, err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		cleanup()
		return "", fmt.Errorf("grammar %q: download: %w", info.Name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("grammar %q: close download: %w", info.Name, err)
	}

	if expected, ok := info.SHA256[d.platform]; ok && expected != "" {
		actual, err := SHA256File(tmpPath)
		if err != nil {
			os.Remove(tmpPath)
			return "", fmt.Errorf("grammar %q: digest: %w", info.Name, err)
		}
		if actual != expected {
			os.Remove(tmpPath)
			return "", fmt.Errorf("grammar %q: SHA-256 mismatch (expected %s, got %s)",
				info.Name, expected, actual)
		}
	}

	dest := filepath.Join(d.dir, SOBaseName(info.Name)+LibExtension())
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("grammar %q: install: %w", info.Name, err)
	}
	return dest, nil
}

// VerifyInstalled recomputes the digest of an installed artifact against
// the manifest. Returns ok=false with no error when the manifest has no
// digest for this platform.
func (d *Downloader) VerifyInstalled(info GrammarInfo) (ok bool, err error) {
	expected, have := info.SHA256[d.platform]
	if !have || expected == "" {
		return false, nil
	}
	path := filepath.Join(d.dir, SOBaseName(info.Name)+LibExtension())
	actual, err := SHA256File(path)
	if err != nil {
		return false, err
	}
	return actual == expected, nil
}
