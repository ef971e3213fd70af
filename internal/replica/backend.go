package replica

import (
	"context"
	"errors"

	"github.com/iudanet/savesync/internal/models"
)

//go:generate moq -out backend_mock.go . Backend

// Common backend errors
var (
	// ErrEntryNotFound indicates that the key has no entry in the namespace
	ErrEntryNotFound = errors.New("replica entry not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)

// Backend persists replica entries. Implementations: MemoryBackend,
// boltdb.Storage (client), sqlite.Storage (server).
//
// Store serializes access per key, so Load followed by Save for the same key
// never interleaves with another writer of that key.
type Backend interface {
	// Load returns the entry for key.
	// Returns ErrEntryNotFound if the key has never been written
	Load(ctx context.Context, namespace, key string) (*models.ReplicaEntry, error)

	// Save stores the entry and returns the change sequence assigned to it.
	// Sequences are strictly increasing within a namespace
	Save(ctx context.Context, namespace string, entry *models.ReplicaEntry) (uint64, error)

	// Scan returns up to limit entries with key > after, ordered by key.
	// Used for lazy snapshots
	Scan(ctx context.Context, namespace, after string, limit int) ([]*models.ReplicaEntry, error)

	// ChangedSince returns entries whose sequence is greater than seq, ordered by sequence.
	// Used for outbound sync cursors
	ChangedSince(ctx context.Context, namespace string, seq uint64) ([]*models.ReplicaEntry, error)
}
