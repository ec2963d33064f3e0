package fsnotify

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrammarForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/home/x/.parsley/grammars/bind.so", "bind"},
		{"/home/x/.parsley/grammars/dash.dylib", "dash"},
		{"grammars/typescript.so", "typescript"},
		{"/src/tree-sitter-bind/src/grammar.json", "src"},
		{"/src/bind/grammar.json", "bind"},
		{"/home/x/.parsley/grammars/README.md", ""},
		{"/home/x/.parsley/grammars/bind.so.tmp", ""},
		{"bind", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, GrammarForPath(tt.path))
		})
	}
}

func TestWatcher_NoWatchableDirs(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	missing := filepath.Join(t.TempDir(), "does-not-exist")
	err = w.Watch([]string{missing}, func(string) {})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatcher_SkipsMissingDirs(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	dir := t.TempDir()
	missing := filepath.Join(dir, "absent")
	err = w.Watch([]string{missing, dir}, func(string) {})
	assert.NoError(t, err)
}

func TestWatcher_ReportsArtifactChange(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	dir := t.TempDir()

	var mu sync.Mutex
	var seen []string
	err = w.Watch([]string{dir}, func(grammar string) {
		mu.Lock()
		seen = append(seen, grammar)
		mu.Unlock()
	})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bind.so"), []byte("artifact"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) > 0
	}, 3*time.Second, 20*time.Millisecond)

	mu.Lock()
	assert.Contains(t, seen, "bind")
	mu.Unlock()
}

func TestWatcher_IgnoresNonArtifacts(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	dir := t.TempDir()

	var mu sync.Mutex
	var seen []string
	err = w.Watch([]string{dir}, func(grammar string) {
		mu.Lock()
		seen = append(seen, grammar)
		mu.Unlock()
	})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("no"), 0o644))

	// Give the event loop time to (not) fire.
	time.Sleep(500 * time.Millisecond)

	mu.Lock()
	assert.Empty(t, seen)
	mu.Unlock()
}

func TestWatcher_DebouncesRapidWrites(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	dir := t.TempDir()

	var mu sync.Mutex
	count := 0
	err = w.Watch([]string{dir}, func(string) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	require.NoError(t, err)

	path := filepath.Join(dir, "dash.so")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("artifact"), 0o644))
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return count >= 1
	}, 3*time.Second, 20*time.Millisecond)

	// Burst of writes within the debounce window collapses to one callback.
	time.Sleep(400 * time.Millisecond)
	mu.Lock()
	assert.Equal(t, 1, count)
	mu.Unlock()
}

func TestWatcher_StopIdempotent(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}
