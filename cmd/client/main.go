package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/iudanet/savesync/internal/client/api"
	"github.com/iudanet/savesync/internal/client/cli"
	"github.com/iudanet/savesync/internal/client/iocli"
	"github.com/iudanet/savesync/internal/client/storage/boltdb"
	"github.com/iudanet/savesync/internal/client/sync"
	"github.com/iudanet/savesync/internal/config"
	"github.com/iudanet/savesync/internal/engine"
	"github.com/iudanet/savesync/internal/replica"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.LoadClient(os.Args[1:])
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		}
		cli.PrintUsage()
		os.Exit(2)
	}

	// Show version and exit if requested
	if cfg.ShowVersion {
		printVersion()
		os.Exit(0)
	}

	// Получаем команду
	if len(cfg.Args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))

	if err := run(cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, cli.ErrUnknownCommand) {
			cli.PrintUsage()
		}
		os.Exit(1)
	}
}

func run(cfg *config.Client, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Открываем BoltDB storage
	boltStorage, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	deviceID := cfg.DeviceID
	if deviceID == "" {
		deviceID, err = boltStorage.EnsureDeviceID(ctx)
		if err != nil {
			return fmt.Errorf("failed to get device id: %w", err)
		}
	}

	policy, err := engine.ParsePolicy(cfg.Policy)
	if err != nil {
		return err
	}

	// Создаем API клиент
	apiClient := api.NewClient(cfg.ServerURL, cfg.Timeout)

	// boltStorage реализует и replica.Backend, и хранилище курсоров
	store := replica.New(boltStorage, cfg.Namespace(), deviceID, logger)
	e := engine.New(store, logger,
		engine.WithWorkers(cfg.Workers),
		engine.WithPolicy(policy),
		engine.WithTransport(apiClient, boltStorage))

	syncService := sync.NewService(e, apiClient, boltStorage, boltStorage, logger)

	c := cli.New(iocli.NewStdio(), e, syncService)
	return c.Run(ctx, cfg.Args[0], cfg.Args[1:])
}

func printVersion() {
	fmt.Printf("SaveSync Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
