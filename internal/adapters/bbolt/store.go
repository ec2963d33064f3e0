// Package bbolt implements the ports.Storage interface using bbolt
// (embedded B+ tree). Grammar records live in a single bucket keyed by
// grammar name, JSON-serialized. Writes are transactional — a crash
// mid-write cannot corrupt previously committed records.
package bbolt

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/corey/parsley/internal/ports"
)

var bucketGrammars = []byte("grammars")

// Store implements ports.Storage backed by bbolt.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRecord persists a grammar record, overwriting any prior record for
// the same grammar name.
func (s *Store) SaveRecord(rec *ports.GrammarRecord) error {
	if rec == nil || rec.Name == "" {
		return fmt.Errorf("invalid record: missing grammar name")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record %q: %w", rec.Name, err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketGrammars)
		if err != nil {
			return err
		}
		return b.Put([]byte(rec.Name), data)
	})
}

// LoadRecord retrieves the record for a grammar.
// Returns nil, nil if no record exists.
func (s *Store) LoadRecord(name string) (*ports.GrammarRecord, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketGrammars)
		if b == nil {
			return nil
		}
		// Copy bytes out of the transaction (bbolt slices are only valid
		// within the tx).
		if v := b.Get([]byte(name)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	var rec ports.GrammarRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal record %q: %w", name, err)
	}
	return &rec, nil
}

// ListRecords returns all stored records, sorted by grammar name.
func (s *Store) ListRecords() ([]*ports.GrammarRecord, error) {
	var recs []*ports.GrammarRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketGrammars)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var rec ports.GrammarRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("unmarshal record %q: %w", k, err)
			}
			recs = append(recs, &rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Name < recs[j].Name })
	return recs, nil
}

// DeleteRecord removes the record for a grammar. Idempotent.
func (s *Store) DeleteRecord(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketGrammars)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(name))
	})
}

// Wipe removes all grammar records.
func (s *Store) Wipe() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketGrammars) == nil {
			return nil
		}
		return tx.DeleteBucket(bucketGrammars)
	})
}
