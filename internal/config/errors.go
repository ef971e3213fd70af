package config

import "errors"

// Validation errors returned when the merged configuration is unusable.
var (
	// ErrInvalidServerConfig indicates invalid server settings
	// (for example, empty address or zero workers).
	ErrInvalidServerConfig = errors.New("invalid server configuration")
	// ErrInvalidClientConfig indicates invalid client settings
	// (for example, missing app id or unknown conflict policy).
	ErrInvalidClientConfig = errors.New("invalid client configuration")
)
