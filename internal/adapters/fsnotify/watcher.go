// Package fsnotify implements the ports.Watcher interface using
// github.com/fsnotify/fsnotify. It watches grammar directories, filters
// events down to grammar artifacts, and debounces rapid events (a build
// replacing an artifact triggers several writes in quick succession).
package fsnotify

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// artifact suffixes that identify a grammar change.
var artifactExts = map[string]bool{
	".so":    true,
	".dylib": true,
}

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	fw      *fsnotify.Watcher
	done    chan struct{}
	stopped bool
	mu      sync.Mutex
}

// NewWatcher creates a new grammar directory watcher.
func NewWatcher() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fw:   fw,
		done: make(chan struct{}),
	}, nil
}

// Watch starts monitoring the given grammar directories. onChange receives
// the grammar name derived from each changed artifact. Directories that do
// not exist yet are skipped.
func (w *Watcher) Watch(dirs []string, onChange func(grammar string)) error {
	watching := 0
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		if err := w.fw.Add(dir); err != nil {
			return err
		}
		watching++
	}
	if watching == 0 {
		return os.ErrNotExist
	}

	// Debounce state: track last event time per grammar.
	debounce := make(map[string]time.Time)
	var dmu sync.Mutex
	const debounceInterval = 250 * time.Millisecond

	go func() {
		for {
			select {
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
					continue
				}
				grammar := GrammarForPath(event.Name)
				if grammar == "" {
					continue
				}

				dmu.Lock()
				last, seen := debounce[grammar]
				now := time.Now()
				if seen && now.Sub(last) < debounceInterval {
					dmu.Unlock()
					continue
				}
				debounce[grammar] = now
				dmu.Unlock()

				onChange(grammar)
			case _, ok := <-w.fw.Errors:
				if !ok {
					return
				}
			case <-w.done:
				return
			}
		}
	}()

	return nil
}

// Stop ends monitoring. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	return w.fw.Close()
}

// GrammarForPath derives a grammar name from an artifact path: the base
// name without the shared library extension, or the parent directory for a
// grammar.json. Returns "" for paths that are not grammar artifacts.
func GrammarForPath(path string) string {
	base := filepath.Base(path)
	if base == "grammar.json" {
		return filepath.Base(filepath.Dir(path))
	}
	ext := filepath.Ext(base)
	if !artifactExts[ext] {
		return ""
	}
	return strings.TrimSuffix(base, ext)
}
