package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

const dbFileName = "marquee.db"

var bucketKV = []byte("kv")

// BlobStore implements domain.BlobStore using BoltDB.
// Every Read goes to disk; nothing is cached in memory when a database is open.
type BlobStore struct {
	db *bolt.DB

	// Memory-only mode (no persistence)
	mu  sync.RWMutex
	mem map[string]string
}

// NewBlobStore opens (or creates) the database under dataDir.
// An empty dataDir yields a memory-only store.
func NewBlobStore(dataDir string) (*BlobStore, error) {
	if dataDir == "" {
		return &BlobStore{mem: make(map[string]string)}, nil
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketKV)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BlobStore{db: db}, nil
}

// Path returns the database file path ("" in memory-only mode)
func (s *BlobStore) Path() string {
	if s.db == nil {
		return ""
	}
	return s.db.Path()
}

func (s *BlobStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Read returns the value stored under key
func (s *BlobStore) Read(key string) (string, bool, error) {
	if s.db == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		v, ok := s.mem[key]
		return v, ok, nil
	}

	var (
		value string
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketKV)
		if b == nil {
			return nil
		}
		// Bolt values are only valid for the life of the transaction
		if v := b.Get([]byte(key)); v != nil {
			value = string(v)
			found = true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, found, nil
}

// Write replaces the value stored under key
func (s *BlobStore) Write(key, value string) error {
	if s.db == nil {
		s.mu.Lock()
		s.mem[key] = value
		s.mu.Unlock()
		return nil
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketKV)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}
