package boltdb

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.etcd.io/bbolt"
)

var (
	// BoltDB bucket names
	bucketNamespaces = []byte("namespaces")
	bucketMetadata   = []byte("metadata")

	// вложенные buckets пространства имен
	bucketEntries = []byte("entries")
	bucketChanges = []byte("changes")
)

// Storage represents BoltDB storage implementation for client
type Storage struct {
	// nil после Close
	db atomic.Pointer[bbolt.DB]
}

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string) (*Storage, error) {
	// Открываем BoltDB
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	storage := &Storage{}
	storage.db.Store(db)

	// Инициализируем buckets
	if err := initBuckets(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return storage, nil
}

// Close closes the database connection. Повторный вызов ничего не делает.
func (s *Storage) Close() error {
	db := s.db.Swap(nil)
	if db == nil {
		return nil
	}
	return db.Close()
}

// initBuckets создает необходимые buckets если они не существуют
func initBuckets(db *bbolt.DB) error {
	return db.Update(func(tx *bbolt.Tx) error {
		// Создаем bucket для реплик по пространствам имен
		if _, err := tx.CreateBucketIfNotExists(bucketNamespaces); err != nil {
			return fmt.Errorf("failed to create namespaces bucket: %w", err)
		}

		// Создаем bucket для метаданных (device id, курсоры)
		if _, err := tx.CreateBucketIfNotExists(bucketMetadata); err != nil {
			return fmt.Errorf("failed to create metadata bucket: %w", err)
		}

		return nil
	})
}
