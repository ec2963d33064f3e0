package treesitter

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// DynamicLoader loads tree-sitter grammars from shared libraries (.so on
// Linux, .dylib on macOS) using purego. It searches configured paths for
// grammar artifacts and caches loaded languages for reuse, so repeated
// loads of the same grammar are side-effect-free for the caller.
type DynamicLoader struct {
	searchPaths []string
	mu          sync.Mutex
	loaded      map[string]*tree_sitter.Language
	handles     []uintptr
}

// NewDynamicLoader creates a loader that searches the given paths for
// grammar shared libraries. Paths are searched in order; first match wins.
func NewDynamicLoader(searchPaths []string) *DynamicLoader {
	return &DynamicLoader{
		searchPaths: searchPaths,
		loaded:      make(map[string]*tree_sitter.Language),
	}
}

// DefaultGrammarPaths returns the default search paths for grammar shared
// libraries. Project-local (.parsley/grammars/) is searched first, then
// global (~/.parsley/grammars/).
func DefaultGrammarPaths(projectRoot string) []string {
	var paths []string
	if projectRoot != "" {
		paths = append(paths, filepath.Join(projectRoot, ".parsley", "grammars"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".parsley", "grammars"))
	}
	return paths
}

// LibExtension returns the shared library extension for the current platform.
func LibExtension() string {
	if runtime.GOOS == "darwin" {
		return ".dylib"
	}
	return ".so"
}

// CSymbolName returns the C function name for a grammar's entry point,
// following the tree_sitter_{name} convention.
func CSymbolName(grammar string) string {
	return "tree_sitter_" + strings.ReplaceAll(grammar, "-", "_")
}

// soFileOverrides maps grammar names to shared library base names where the
// grammar lives in a differently-named artifact (tsx is built from the
// typescript repo and ships in its library).
var soFileOverrides = map[string]string{
	"tsx": "typescript",
}

// SOBaseName returns the expected shared library base name for a grammar.
func SOBaseName(grammar string) string {
	if base, ok := soFileOverrides[grammar]; ok {
		return base
	}
	return grammar
}

// LoadGrammar loads a grammar from a shared library. Results are cached;
// subsequent calls for the same grammar return the cached language. Every
// failure is a *LoadError naming the grammar.
func (dl *DynamicLoader) LoadGrammar(grammar string) (*tree_sitter.Language, error) {
	dl.mu.Lock()
	defer dl.mu.Unlock()

	if cached, ok := dl.loaded[grammar]; ok {
		return cached, nil
	}

	soPath := dl.findArtifact(grammar)
	if soPath == "" {
		return nil, loadErr(grammar, "shared library not found in search paths %v", dl.searchPaths)
	}

	handle, err := purego.Dlopen(soPath, purego.RTLD_LAZY)
	if err != nil {
		return nil, loadErr(grammar, "dlopen %s: %w", soPath, err)
	}
	dl.handles = append(dl.handles, handle)

	symName := CSymbolName(grammar)
	// RegisterLibFunc panics on a missing symbol, so resolve it first: an
	// artifact that dlopens but lacks the entry point is still a load failure.
	if _, err := purego.Dlsym(handle, symName); err != nil {
		return nil, loadErr(grammar, "resolve %s: %w", symName, err)
	}
	var langFunc func() uintptr
	purego.RegisterLibFunc(&langFunc, handle, symName)

	ptr := langFunc()
	if ptr == 0 {
		return nil, loadErr(grammar, "%s() returned null", symName)
	}

	// Convert uintptr from C (purego) to unsafe.Pointer without triggering
	// go vet's unsafeptr check. Safe because ptr is a static TSLanguage*
	// from the grammar artifact, not a Go-managed pointer the GC could move.
	language := tree_sitter.NewLanguage(*(*unsafe.Pointer)(unsafe.Pointer(&ptr)))
	dl.loaded[grammar] = language
	return language, nil
}

// HasGrammar reports whether an artifact for the grammar is present in the
// search paths (or already loaded).
func (dl *DynamicLoader) HasGrammar(grammar string) bool {
	dl.mu.Lock()
	_, cached := dl.loaded[grammar]
	dl.mu.Unlock()
	return cached || dl.findArtifact(grammar) != ""
}

// GrammarPath returns the path to the shared library for a grammar, or ""
// if not found.
func (dl *DynamicLoader) GrammarPath(grammar string) string {
	return dl.findArtifact(grammar)
}

func (dl *DynamicLoader) findArtifact(grammar string) string {
	ext := LibExtension()
	baseName := SOBaseName(grammar)
	for _, dir := range dl.searchPaths {
		candidate := filepath.Join(dir, baseName+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// InstalledGrammars returns grammar names found as shared libraries in the
// search paths, deduplicated across paths.
func (dl *DynamicLoader) InstalledGrammars() []string {
	ext := LibExtension()
	seen := make(map[string]bool)
	var names []string
	for _, dir := range dl.searchPaths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			name := e.Name()
			if strings.HasSuffix(name, ext) {
				grammar := strings.TrimSuffix(name, ext)
				if !seen[grammar] {
					seen[grammar] = true
					names = append(names, grammar)
				}
			}
		}
	}
	return names
}

// Close drops the language cache and dlopen handles.
func (dl *DynamicLoader) Close() {
	dl.mu.Lock()
	defer dl.mu.Unlock()
	dl.handles = nil
	dl.loaded = make(map[string]*tree_sitter.Language)
}

// SearchPaths returns the configured search paths.
func (dl *DynamicLoader) SearchPaths() []string {
	return dl.searchPaths
}
