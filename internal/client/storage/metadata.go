package storage

import (
	"context"

	"github.com/iudanet/savesync/internal/models"
)

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage defines interface for storing client metadata
type MetadataStorage interface {
	// SaveCursors saves sync cursors of the namespace
	SaveCursors(ctx context.Context, namespace string, cursors models.SyncCursors) error

	// GetCursors retrieves sync cursors of the namespace
	// Returns zero cursors if no sync has been performed yet
	GetCursors(ctx context.Context, namespace string) (models.SyncCursors, error)

	// SaveDeviceID stores the identity of this device
	SaveDeviceID(ctx context.Context, deviceID string) error

	// GetDeviceID retrieves the identity of this device
	// Returns ErrDeviceIDNotFound on first run
	GetDeviceID(ctx context.Context) (string, error)
}
