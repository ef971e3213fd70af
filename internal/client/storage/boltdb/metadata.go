package boltdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/iudanet/savesync/internal/client/storage"
	"github.com/iudanet/savesync/internal/models"
)

const (
	keyDeviceID      = "device_id"
	keyCursorsPrefix = "cursors/"
)

// SaveCursors saves sync cursors of the namespace
func (s *Storage) SaveCursors(ctx context.Context, namespace string, cursors models.SyncCursors) error {
	db := s.db.Load()
	if db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(cursors)
	if err != nil {
		return fmt.Errorf("failed to marshal cursors: %w", err)
	}

	return db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		if err := bucket.Put([]byte(keyCursorsPrefix+namespace), data); err != nil {
			return fmt.Errorf("failed to save sync cursors: %w", err)
		}

		return nil
	})
}

// GetCursors retrieves sync cursors of the namespace
// Returns zero cursors if no sync has been performed yet
func (s *Storage) GetCursors(ctx context.Context, namespace string) (models.SyncCursors, error) {
	var cursors models.SyncCursors

	db := s.db.Load()
	if db == nil {
		return cursors, storage.ErrStorageClosed
	}

	err := db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		data := bucket.Get([]byte(keyCursorsPrefix + namespace))
		if data == nil {
			// Курсоров нет - первая синхронизация
			return nil
		}

		return json.Unmarshal(data, &cursors)
	})

	if err != nil {
		return models.SyncCursors{}, fmt.Errorf("failed to get sync cursors: %w", err)
	}

	return cursors, nil
}

// SaveDeviceID stores the identity of this device
func (s *Storage) SaveDeviceID(ctx context.Context, deviceID string) error {
	db := s.db.Load()
	if db == nil {
		return storage.ErrStorageClosed
	}
	if deviceID == "" {
		return fmt.Errorf("device id cannot be empty")
	}

	return db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		if err := bucket.Put([]byte(keyDeviceID), []byte(deviceID)); err != nil {
			return fmt.Errorf("failed to save device id: %w", err)
		}

		return nil
	})
}

// GetDeviceID retrieves the identity of this device
// Returns storage.ErrDeviceIDNotFound on first run
func (s *Storage) GetDeviceID(ctx context.Context) (string, error) {
	db := s.db.Load()
	if db == nil {
		return "", storage.ErrStorageClosed
	}

	var deviceID string

	err := db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		data := bucket.Get([]byte(keyDeviceID))
		if data == nil {
			return storage.ErrDeviceIDNotFound
		}

		deviceID = string(data)
		return nil
	})

	if err != nil {
		return "", err
	}

	return deviceID, nil
}

// EnsureDeviceID returns the stored device id, generating and storing a new
// UUID on first run
func (s *Storage) EnsureDeviceID(ctx context.Context) (string, error) {
	deviceID, err := s.GetDeviceID(ctx)
	if err == nil {
		return deviceID, nil
	}
	if !errors.Is(err, storage.ErrDeviceIDNotFound) {
		return "", err
	}

	deviceID = uuid.New().String()
	if err := s.SaveDeviceID(ctx, deviceID); err != nil {
		return "", err
	}
	return deviceID, nil
}
