// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

// Storage persists grammar records to durable storage.
// The backing store (bbolt) keys records by grammar name. Concurrent reads
// are safe; writes are serialized by the adapter.
//
// Crash safety: SaveRecord must be transactional. A crash mid-write must
// not corrupt previously committed records.
type Storage interface {
	// SaveRecord persists a grammar record. Overwrites any prior record
	// for the same grammar name.
	SaveRecord(rec *GrammarRecord) error

	// LoadRecord retrieves the record for a grammar.
	// Returns nil, nil if no record exists (never installed or verified).
	LoadRecord(name string) (*GrammarRecord, error)

	// ListRecords returns all stored records, sorted by grammar name.
	ListRecords() ([]*GrammarRecord, error)

	// DeleteRecord removes the record for a grammar.
	// Idempotent: deleting a nonexistent record is not an error.
	DeleteRecord(name string) error

	// Wipe removes all grammar records.
	Wipe() error
}

// GrammarRecord is the durable state tracked per grammar: which artifact is
// installed and how its last load verification went.
type GrammarRecord struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Path        string `json:"path"`     // shared library path, "" for builtin
	SHA256      string `json:"sha256"`   // artifact digest, "" for builtin
	Platform    string `json:"platform"` // e.g. "linux-amd64"
	Source      string `json:"source"`   // "builtin" or "installed"
	InstalledAt int64  `json:"installed_at"`
	VerifiedAt  int64  `json:"verified_at"`
	VerifyOK    bool   `json:"verify_ok"`
	VerifyError string `json:"verify_error,omitempty"`
}
