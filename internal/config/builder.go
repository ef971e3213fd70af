package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
)

// builder накапливает частичные конфигурации; первая непустая побеждает
type builder[T any] struct {
	err     error
	configs []*T
}

func (b *builder[T]) add(cfg *T, err error) *builder[T] {
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, cfg)
	return b
}

func (b *builder[T]) build() (*T, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred during building config: %w", b.err)
	}

	cfg := new(T)
	for _, src := range b.configs {
		if err := mergo.Merge(cfg, src); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}
	return cfg, nil
}

func parseEnv[T any](prefix string) (*T, error) {
	cfg := new(T)
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: prefix}); err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}
	return cfg, nil
}

// LoadServer builds the server config from args (without the program name) and the environment.
func LoadServer(args []string) (*Server, error) {
	cfg, err := new(builder[Server]).
		add(parseServerFlags(args)).
		add(parseEnv[Server](ServerEnvPrefix)).
		build()
	if err != nil {
		return nil, err
	}
	return cfg, cfg.validate()
}

// LoadClient builds the client config from args (without the program name) and the environment.
func LoadClient(args []string) (*Client, error) {
	cfg, err := new(builder[Client]).
		add(parseClientFlags(args)).
		add(parseEnv[Client](ClientEnvPrefix)).
		build()
	if err != nil {
		return nil, err
	}
	return cfg, cfg.validate()
}

func parseServerFlags(args []string) (*Server, error) {
	cfg := &Server{}
	var allowed string

	fs := flag.NewFlagSet("savesync-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.Address, "a", "", "HTTP listen address host:port")
	fs.StringVar(&cfg.DBPath, "d", "", "SQLite database path")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&allowed, "allowed-devices", "", "Comma separated device allow-list")
	fs.IntVar(&cfg.Workers, "workers", 0, "Reconcile worker pool size")
	fs.IntVar(&cfg.PushRateLimit, "push-rate-limit", 0, "Pushes per window per client and namespace")
	fs.DurationVar(&cfg.PushRateWindow, "push-rate-window", 0, "Push rate limit window")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}
	cfg.AllowedDevices = splitList(allowed)
	return cfg, nil
}

func parseClientFlags(args []string) (*Client, error) {
	cfg := &Client{}

	fs := flag.NewFlagSet("savesync", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.ServerURL, "s", "", "Sync server URL")
	fs.StringVar(&cfg.DBPath, "d", "", "Local replica database path")
	fs.Int64Var(&cfg.AppID, "app", 0, "Application id (namespace app-<id>)")
	fs.StringVar(&cfg.DeviceID, "device", "", "Override device id")
	fs.StringVar(&cfg.Policy, "policy", "", "Conflict policy: manual or tiebreak")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.IntVar(&cfg.Workers, "workers", 0, "Reconcile worker pool size")
	fs.DurationVar(&cfg.Timeout, "timeout", 0, "HTTP request timeout")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}
	cfg.Args = fs.Args()
	return cfg, nil
}

func splitList(s string) []string {
	var result []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
