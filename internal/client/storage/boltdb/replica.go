package boltdb

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"
	berrors "go.etcd.io/bbolt/errors"

	"github.com/iudanet/savesync/internal/client/storage"
	"github.com/iudanet/savesync/internal/models"
)

// Схема: namespaces/<namespace>/entries: key -> JSON ReplicaEntry,
// namespaces/<namespace>/changes: BigEndian(seq) -> key.
// Seq выдается NextSequence bucket'а пространства имен; при перезаписи ключа
// старая запись индекса изменений удаляется.

// Load retrieves a replica entry by key
func (s *Storage) Load(ctx context.Context, namespace, key string) (*models.ReplicaEntry, error) {
	db := s.db.Load()
	if db == nil {
		return nil, storage.ErrStorageClosed
	}

	var entry *models.ReplicaEntry

	err := db.View(func(tx *bbolt.Tx) error {
		entries := namespaceBucket(tx, namespace, bucketEntries)
		if entries == nil {
			return storage.ErrEntryNotFound
		}

		data := entries.Get([]byte(key))
		if data == nil {
			return storage.ErrEntryNotFound
		}

		// Десериализуем
		var err error
		entry, err = decodeEntry(data)
		return err
	})

	if err != nil {
		return nil, err
	}

	return entry, nil
}

// Save stores or replaces a replica entry and assigns it the next sequence
func (s *Storage) Save(ctx context.Context, namespace string, entry *models.ReplicaEntry) (uint64, error) {
	db := s.db.Load()
	if db == nil {
		return 0, storage.ErrStorageClosed
	}

	var seq uint64

	err := db.Update(func(tx *bbolt.Tx) error {
		ns, err := tx.Bucket(bucketNamespaces).CreateBucketIfNotExists([]byte(namespace))
		if err != nil {
			return fmt.Errorf("failed to create namespace bucket: %w", err)
		}
		entries, err := ns.CreateBucketIfNotExists(bucketEntries)
		if err != nil {
			return fmt.Errorf("failed to create entries bucket: %w", err)
		}
		changes, err := ns.CreateBucketIfNotExists(bucketChanges)
		if err != nil {
			return fmt.Errorf("failed to create changes bucket: %w", err)
		}

		// Убираем старую позицию ключа из индекса изменений
		if old := entries.Get([]byte(entry.Key)); old != nil {
			prev, err := decodeEntry(old)
			if err != nil {
				return err
			}
			if err := changes.Delete(seqKey(prev.Seq)); err != nil {
				return fmt.Errorf("failed to delete change index: %w", err)
			}
		}

		seq, err = ns.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate sequence: %w", err)
		}

		stored := *entry
		stored.Seq = seq

		// Сериализуем entry в JSON
		data, err := json.Marshal(&stored)
		if err != nil {
			return fmt.Errorf("failed to marshal replica entry: %w", err)
		}

		if err := entries.Put([]byte(entry.Key), data); err != nil {
			return fmt.Errorf("failed to save entry: %w", err)
		}
		if err := changes.Put(seqKey(seq), []byte(entry.Key)); err != nil {
			return fmt.Errorf("failed to save change index: %w", err)
		}

		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("transaction failed: %w", err)
	}

	return seq, nil
}

// Scan returns up to limit entries with key > after in key order
func (s *Storage) Scan(ctx context.Context, namespace, after string, limit int) ([]*models.ReplicaEntry, error) {
	db := s.db.Load()
	if db == nil {
		return nil, storage.ErrStorageClosed
	}

	entries := []*models.ReplicaEntry{}

	err := db.View(func(tx *bbolt.Tx) error {
		bucket := namespaceBucket(tx, namespace, bucketEntries)
		if bucket == nil {
			// Нет bucket - возвращаем пустой массив
			return nil
		}

		c := bucket.Cursor()
		k, v := c.Seek([]byte(after))
		if k != nil && bytes.Equal(k, []byte(after)) {
			k, v = c.Next()
		}

		for ; k != nil; k, v = c.Next() {
			if limit > 0 && len(entries) >= limit {
				break
			}
			entry, err := decodeEntry(v)
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to scan entries: %w", err)
	}

	return entries, nil
}

// ChangedSince returns entries with sequence greater than seq in sequence order
func (s *Storage) ChangedSince(ctx context.Context, namespace string, seq uint64) ([]*models.ReplicaEntry, error) {
	db := s.db.Load()
	if db == nil {
		return nil, storage.ErrStorageClosed
	}

	entries := []*models.ReplicaEntry{}

	err := db.View(func(tx *bbolt.Tx) error {
		changes := namespaceBucket(tx, namespace, bucketChanges)
		bucket := namespaceBucket(tx, namespace, bucketEntries)
		if changes == nil || bucket == nil {
			return nil
		}

		c := changes.Cursor()
		for k, key := c.Seek(seqKey(seq + 1)); k != nil; k, key = c.Next() {
			data := bucket.Get(key)
			if data == nil {
				return fmt.Errorf("change index points to missing key %q", key)
			}
			entry, err := decodeEntry(data)
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to get entries changed since %d: %w", seq, err)
	}

	return entries, nil
}

// Namespaces returns all namespaces stored locally
func (s *Storage) Namespaces(ctx context.Context) ([]string, error) {
	db := s.db.Load()
	if db == nil {
		return nil, storage.ErrStorageClosed
	}

	var namespaces []string

	err := db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketNamespaces).ForEachBucket(func(k []byte) error {
			namespaces = append(namespaces, string(k))
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list namespaces: %w", err)
	}

	return namespaces, nil
}

// Clear removes all entries of the namespace
func (s *Storage) Clear(ctx context.Context, namespace string) error {
	db := s.db.Load()
	if db == nil {
		return storage.ErrStorageClosed
	}

	return db.Update(func(tx *bbolt.Tx) error {
		err := tx.Bucket(bucketNamespaces).DeleteBucket([]byte(namespace))
		if err != nil && !errors.Is(err, berrors.ErrBucketNotFound) {
			return fmt.Errorf("failed to clear namespace: %w", err)
		}
		return nil
	})
}

func namespaceBucket(tx *bbolt.Tx, namespace string, name []byte) *bbolt.Bucket {
	ns := tx.Bucket(bucketNamespaces).Bucket([]byte(namespace))
	if ns == nil {
		return nil
	}
	return ns.Bucket(name)
}

func decodeEntry(data []byte) (*models.ReplicaEntry, error) {
	entry := &models.ReplicaEntry{}
	if err := json.Unmarshal(data, entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entry: %w", err)
	}
	return entry, nil
}

func seqKey(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}
