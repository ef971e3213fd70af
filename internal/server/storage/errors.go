package storage

import (
	"errors"

	"github.com/iudanet/savesync/internal/replica"
)

// Common storage errors
var (
	// ErrEntryNotFound indicates that replica entry was not found
	ErrEntryNotFound = replica.ErrEntryNotFound

	// ErrInvalidNamespace indicates that namespace name is empty or has forbidden characters
	ErrInvalidNamespace = errors.New("invalid namespace")
)
