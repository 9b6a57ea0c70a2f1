// Copyright (C) 2025 Harborline Supply Co.
// Licensed under the Apache License, Version 2.0.
// See the LICENSE file for details.

package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// snapshotKey is the single well-known location of the persisted catalog.
const snapshotKey = "catalog/snapshot"

// StoreConfig holds configuration for the snapshot cache.
type StoreConfig struct {
	// Path is the directory for BadgerDB files.
	// Ignored when InMemory is true.
	Path string

	// InMemory enables in-memory mode (no disk persistence).
	// Used by tests and as a degraded mode when the cache
	// directory is not writable.
	InMemory bool

	// Logger receives cache diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// Store is the durable snapshot cache backing the acquisition pipeline.
//
// It holds at most one snapshot under a well-known key. Reads never fail:
// a missing key, an unreadable store, or a corrupt payload all surface as
// "absent". Writes replace the stored value atomically, so concurrent
// acquisitions racing to write degrade to last-writer-wins, which is
// harmless for equally valid snapshots.
//
// The Store does not own a freshness policy; the orchestrator supplies the
// threshold on each IsFresh call.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// OpenStore opens the snapshot cache.
func OpenStore(cfg StoreConfig) (*Store, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open snapshot cache: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Read returns the persisted snapshot, or ok=false when the cache is
// absent. Corruption (an unparsable or shape-mismatched payload) reads as
// absent; there is no schema versioning.
func (s *Store) Read() (Snapshot, bool) {
	var snap Snapshot
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(snapshotKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snap)
		})
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			s.logger.Warn("snapshot cache unreadable, treating as absent", "error", err)
		}
		return Snapshot{}, false
	}
	if len(snap.Products) == 0 {
		// Valid JSON of the wrong shape decodes to an empty snapshot.
		return Snapshot{}, false
	}
	return snap, true
}

// Write persists the snapshot, replacing any previous one. Persistence is
// best-effort: callers are expected to log and ignore the returned error,
// since the in-memory snapshot still serves the current request.
func (s *Store) Write(snap Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(snapshotKey), payload)
	})
	if err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}
	return nil
}

// IsFresh reports whether the snapshot is younger than maxAge. A zero
// maxAge means "always revalidate": nothing is ever fresh.
func (s *Store) IsFresh(snap Snapshot, maxAge time.Duration) bool {
	return time.Since(snap.FetchedAt) < maxAge
}
