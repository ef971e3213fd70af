// Package config собирает конфигурацию сервера и клиента.
//
// Источники в порядке приоритета: флаги командной строки, переменные
// окружения, значения по умолчанию (теги envDefault). Пустое значение
// источника не перекрывает менее приоритетный.
package config

import (
	"log/slog"
	"time"
)

const (
	// ServerEnvPrefix - префикс переменных окружения сервера
	ServerEnvPrefix = "SAVESYNC_SERVER_"
	// ClientEnvPrefix - префикс переменных окружения клиента
	ClientEnvPrefix = "SAVESYNC_"
)

// Server holds the sync server settings.
type Server struct {
	// Address is the TCP address the HTTP API listens on ("host:port").
	// Env: SAVESYNC_SERVER_ADDRESS
	Address string `env:"ADDRESS" envDefault:":8080"`

	// DBPath is the SQLite database file.
	// Env: SAVESYNC_SERVER_DB_PATH
	DBPath string `env:"DB_PATH" envDefault:"savesync.db"`

	// LogLevel is one of debug, info, warn, error.
	// Env: SAVESYNC_SERVER_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// AllowedDevices restricts which device ids may appear in pushed records
	// and their clocks. Empty accepts any device.
	// Env: SAVESYNC_SERVER_ALLOWED_DEVICES (comma separated)
	AllowedDevices []string `env:"ALLOWED_DEVICES" envSeparator:","`

	// Workers is the size of the reconcile worker pool per push.
	// Env: SAVESYNC_SERVER_WORKERS
	Workers int `env:"WORKERS" envDefault:"4"`

	// PushRateLimit is the number of pushes allowed per client IP and
	// namespace within PushRateWindow. Zero disables the limit.
	// Env: SAVESYNC_SERVER_PUSH_RATE_LIMIT
	PushRateLimit int `env:"PUSH_RATE_LIMIT" envDefault:"120"`

	// Env: SAVESYNC_SERVER_PUSH_RATE_WINDOW
	PushRateWindow time.Duration `env:"PUSH_RATE_WINDOW" envDefault:"1m"`

	// ShowVersion is set by the -version flag only.
	ShowVersion bool
}

// Client holds the command-line client settings.
type Client struct {
	// ServerURL is the base URL of the sync server.
	// Env: SAVESYNC_SERVER_URL
	ServerURL string `env:"SERVER_URL" envDefault:"http://localhost:8080"`

	// DBPath is the local BoltDB replica file.
	// Env: SAVESYNC_DB_PATH
	DBPath string `env:"DB_PATH" envDefault:"savesync-client.db"`

	// DeviceID overrides the id generated on first run.
	// Env: SAVESYNC_DEVICE_ID
	DeviceID string `env:"DEVICE_ID"`

	// Policy is the conflict policy applied on sync: manual or tiebreak.
	// Env: SAVESYNC_POLICY
	Policy string `env:"POLICY" envDefault:"manual"`

	// Env: SAVESYNC_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL" envDefault:"warn"`

	// Args are the positional arguments left after flag parsing (command and its args).
	Args []string

	// AppID selects the namespace app-<AppID>.
	// Env: SAVESYNC_APP_ID
	AppID int64 `env:"APP_ID"`

	// Timeout bounds every HTTP request to the server.
	// Env: SAVESYNC_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`

	// Workers is the size of the reconcile worker pool.
	// Env: SAVESYNC_WORKERS
	Workers int `env:"WORKERS" envDefault:"4"`

	// ShowVersion is set by the -version flag only.
	ShowVersion bool
}

// Level returns the parsed server log level
func (c *Server) Level() slog.Level {
	return parseLevel(c.LogLevel)
}

// Level returns the parsed client log level
func (c *Client) Level() slog.Level {
	return parseLevel(c.LogLevel)
}

// parseLevel вызывается после validate, поэтому ошибка невозможна
func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
