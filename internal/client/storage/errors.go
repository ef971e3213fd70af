package storage

import (
	"errors"

	"github.com/iudanet/savesync/internal/replica"
)

// Common client storage errors
var (
	// ErrDeviceIDNotFound indicates that the device identity was never stored
	ErrDeviceIDNotFound = errors.New("device id not found")

	// ErrEntryNotFound indicates that replica entry was not found
	ErrEntryNotFound = replica.ErrEntryNotFound

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = replica.ErrStorageClosed
)
