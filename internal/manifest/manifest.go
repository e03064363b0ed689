// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package manifest records fetch provenance in an embedded BadgerDB
// under the cache root. The manifest is advisory: the presence of a
// well-formed edge list file is what makes a cache entry valid, and
// the pipeline never refuses to use a cached file just because its
// manifest entry is missing. It exists so `graphcensus catalog` and
// `graphcensus clean` can answer "what do I have, where did it come
// from, and when" without re-reading every file.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/AleutianAI/graphcensus/pkg/logging"
)

// DirName is the manifest directory under the cache root.
const DirName = ".manifest"

// ErrNoEntry is returned by Get when a dataset has no recorded fetch.
var ErrNoEntry = errors.New("no manifest entry")

// Entry records one completed fetch.
type Entry struct {
	// Collection and Name identify the dataset.
	Collection string `json:"collection"`
	Name       string `json:"name"`

	// SourceURL is where the payload was downloaded from.
	SourceURL string `json:"source_url"`

	// Compression is the transport compression of the payload
	// ("zst", "gz", "zip", or "").
	Compression string `json:"compression,omitempty"`

	// Size is the decompressed edge list size in bytes.
	Size int64 `json:"size"`

	// SHA256 is the lowercase hex digest of the compressed payload
	// as advertised by the catalog, or "" when none was given.
	SHA256 string `json:"sha256,omitempty"`

	// FetchedAt is when the fetch completed.
	FetchedAt time.Time `json:"fetched_at"`
}

// key returns the badger key for a dataset.
func key(collection, name string) []byte {
	return []byte("dataset/" + collection + "/" + name)
}

// Config holds manifest store configuration.
type Config struct {
	// Path is the manifest directory. Required unless InMemory.
	Path string

	// InMemory opens a non-persistent store. Useful for testing.
	InMemory bool

	// SyncWrites forces each write to disk before returning.
	// Manifest writes are rare, so the durability is cheap.
	SyncWrites bool

	// Logger receives badger's internal log output at debug level.
	// If nil, badger's logging is disabled.
	Logger *logging.Logger
}

// Store is the manifest database. Safe for concurrent use.
type Store struct {
	db     *badger.DB
	logger *logging.Logger
}

// Open opens (creating if necessary) the manifest at cfg.Path.
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent manifest")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("create manifest directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites)
	opts = opts.WithNumVersionsToKeep(1)

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open manifest database: %w", err)
	}
	return &Store{db: db, logger: cfg.Logger}, nil
}

// OpenInMemory opens a throwaway manifest for testing.
func OpenInMemory() (*Store, error) {
	return Open(Config{InMemory: true})
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put records a fetch, overwriting any previous entry for the same
// dataset.
func (s *Store) Put(entry Entry) error {
	if entry.Collection == "" || entry.Name == "" {
		return errors.New("manifest entry requires collection and name")
	}
	value, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode manifest entry: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(entry.Collection, entry.Name), value)
	})
	if err != nil {
		return fmt.Errorf("write manifest entry %s/%s: %w", entry.Collection, entry.Name, err)
	}
	return nil
}

// Get returns the recorded fetch for a dataset, or ErrNoEntry.
func (s *Store) Get(collection, name string) (*Entry, error) {
	var entry Entry
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(collection, name))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%s/%s: %w", collection, name, ErrNoEntry)
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest entry %s/%s: %w", collection, name, err)
	}
	return &entry, nil
}

// Delete removes a dataset's entry. Deleting an absent entry is not
// an error.
func (s *Store) Delete(collection, name string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(collection, name))
	})
	if err != nil {
		return fmt.Errorf("delete manifest entry %s/%s: %w", collection, name, err)
	}
	return nil
}

// List returns all recorded fetches in key order.
func (s *Store) List() ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte("dataset/")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var entry Entry
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			})
			if err != nil {
				return fmt.Errorf("decode manifest entry %s: %w", it.Item().Key(), err)
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// badgerLogger adapts the pipeline logger to badger's Logger
// interface. Badger is chatty at Info level, so everything it says is
// demoted to debug.
type badgerLogger struct {
	logger *logging.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf("badger: "+format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf("badger: "+format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf("badger: "+format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf("badger: "+format, args...))
}
