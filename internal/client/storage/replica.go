package storage

import (
	"context"

	"github.com/iudanet/savesync/internal/replica"
)

//go:generate moq -out replicastorage_mock.go . ReplicaStorage

// ReplicaStorage defines interface for storing replica entries on client
type ReplicaStorage interface {
	replica.Backend

	// Namespaces returns all namespaces that have at least one entry
	Namespaces(ctx context.Context) ([]string, error)

	// Clear removes all entries of the namespace
	// Used for testing and full re-sync
	Clear(ctx context.Context, namespace string) error
}
