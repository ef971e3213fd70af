package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/savesync/internal/config"
	"github.com/iudanet/savesync/internal/server"
	"github.com/iudanet/savesync/internal/server/middleware"
	"github.com/iudanet/savesync/internal/server/service"
	"github.com/iudanet/savesync/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.LoadServer(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Show version and exit if requested
	if cfg.ShowVersion {
		printVersion()
		os.Exit(0)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))

	if err := run(cfg, logger); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Server, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("SaveSync Server starting",
		"version", Version,
		"address", cfg.Address,
		"db_path", cfg.DBPath,
		"workers", cfg.Workers,
		"allowed_devices", len(cfg.AllowedDevices))

	db, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	replicas := service.NewReplicas(db, logger, service.Config{
		AllowedDevices: cfg.AllowedDevices,
		Workers:        cfg.Workers,
	})

	var limiter *middleware.RateLimiter
	if cfg.PushRateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.PushRateLimit, cfg.PushRateWindow, logger)
		defer limiter.Stop()
	}

	router := server.NewRouter(server.RouterConfig{
		Logger:      logger,
		Replicas:    replicas,
		DB:          db,
		PushLimiter: limiter,
		Version:     Version,
	})

	return server.New(cfg.Address, router, logger).Run(ctx)
}

func printVersion() {
	fmt.Printf("SaveSync Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
