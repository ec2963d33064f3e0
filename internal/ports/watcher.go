package ports

// Watcher monitors grammar directories for artifact changes and triggers
// re-verification. The adapter (fsnotify) must filter to grammar artifacts
// (shared libraries, grammar.json) and debounce rapid events before invoking
// onChange. Only one Watch call should be active at a time.
type Watcher interface {
	// Watch starts monitoring the given directories. onChange is called with
	// the grammar name derived from each changed artifact. The callback may
	// be invoked from any goroutine. Directories that do not exist yet are
	// skipped, not an error.
	Watch(dirs []string, onChange func(grammar string)) error

	// Stop ends monitoring and releases all resources. After Stop returns,
	// no further onChange calls will fire. Safe to call multiple times.
	Stop() error
}
