package storage

import (
	"context"

	"github.com/iudanet/savesync/internal/replica"
)

// ReplicaStorage defines interface for server-side replica persistence
type ReplicaStorage interface {
	replica.Backend

	// Namespaces returns all namespaces that have at least one entry
	Namespaces(ctx context.Context) ([]string, error)

	// Ping checks that the database is reachable
	Ping(ctx context.Context) error
}
