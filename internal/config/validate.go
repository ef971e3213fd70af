package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/iudanet/savesync/internal/engine"
	"github.com/iudanet/savesync/internal/validation"
)

func (c *Server) validate() error {
	if c.ShowVersion {
		return nil
	}

	var errList []error
	if c.Address == "" {
		errList = append(errList, errors.New("address is required"))
	}
	if c.DBPath == "" {
		errList = append(errList, errors.New("database path is required"))
	}
	if c.Workers < 1 {
		errList = append(errList, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if c.PushRateLimit < 0 {
		errList = append(errList, fmt.Errorf("push rate limit must not be negative, got %d", c.PushRateLimit))
	}
	if c.PushRateLimit > 0 && c.PushRateWindow <= 0 {
		errList = append(errList, errors.New("push rate window must be positive when the limit is enabled"))
	}
	for _, id := range c.AllowedDevices {
		if err := validation.ValidateDeviceID(id); err != nil {
			errList = append(errList, err)
		}
	}
	if err := checkLevel(c.LogLevel); err != nil {
		errList = append(errList, err)
	}

	if len(errList) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidServerConfig, errors.Join(errList...))
	}
	return nil
}

func (c *Client) validate() error {
	if c.ShowVersion {
		return nil
	}

	var errList []error
	if u, err := url.Parse(c.ServerURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errList = append(errList, fmt.Errorf("server url %q must be an absolute http(s) URL", c.ServerURL))
	}
	if c.DBPath == "" {
		errList = append(errList, errors.New("database path is required"))
	}
	if c.AppID <= 0 {
		errList = append(errList, errors.New("app id must be positive (-app or SAVESYNC_APP_ID)"))
	}
	if c.DeviceID != "" {
		if err := validation.ValidateDeviceID(c.DeviceID); err != nil {
			errList = append(errList, err)
		}
	}
	if _, err := engine.ParsePolicy(c.Policy); err != nil {
		errList = append(errList, err)
	}
	if c.Workers < 1 {
		errList = append(errList, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if c.Timeout <= 0 {
		errList = append(errList, errors.New("timeout must be positive"))
	}
	if err := checkLevel(c.LogLevel); err != nil {
		errList = append(errList, err)
	}

	if len(errList) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidClientConfig, errors.Join(errList...))
	}
	return nil
}

// Namespace returns the namespace the client works in
func (c *Client) Namespace() string {
	return validation.AppNamespace(c.AppID)
}

func checkLevel(s string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return fmt.Errorf("invalid log level %q", s)
	}
	return nil
}
