// Package magicstore persists searched magic numbers so that later runs can
// rebuild their attack tables without repeating the search.
package magicstore

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const keyMagics = "magics"

// ErrNotFound is returned by Load when no magic set has been saved yet.
var ErrNotFound = errors.New("magicstore: no magic numbers stored")

// MagicSet is one complete set of slider magic numbers.
type MagicSet struct {
	Rook    [64]uint64 `json:"rook"`
	Bishop  [64]uint64 `json:"bishop"`
	Seed    uint64     `json:"seed,omitempty"`
	FoundAt time.Time  `json:"found_at"`
}

// Store wraps BadgerDB for persistent magic number storage.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a store in the given directory.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// OpenInMemory opens a store backed by memory only. Nothing survives Close;
// intended for tests.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save stores the magic set, replacing any previously saved one. FoundAt is
// stamped with the current time if the caller left it zero.
func (s *Store) Save(set *MagicSet) error {
	if set.FoundAt.IsZero() {
		set.FoundAt = time.Now()
	}

	data, err := json.Marshal(set)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyMagics), data)
	})
}

// Load returns the stored magic set, or ErrNotFound when none has been
// saved.
func (s *Store) Load() (*MagicSet, error) {
	var set MagicSet

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyMagics))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &set)
		})
	})
	if err != nil {
		return nil, err
	}

	return &set, nil
}
