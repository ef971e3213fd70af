package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/savesync/internal/client/storage"
)

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	positional, flags, err := parseArgs(args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("missing save key. Usage: savesync delete <key> [--sync]")
	}
	key := positional[0]

	// Удаление - это tombstone с новыми часами, он синхронизируется как обычная правка
	record, err := c.store().Delete(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			return fmt.Errorf("save not found: %s", key)
		}
		return fmt.Errorf("failed to delete save: %w", err)
	}

	c.io.Printf("✓ Deleted %s (clock %s)\n", key, record.Clock.String())

	if _, ok := flags["sync"]; ok {
		c.io.Println()
		return c.runSync(ctx, nil)
	}
	return nil
}
