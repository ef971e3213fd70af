package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/iudanet/savesync/internal/client/storage"
)

const getUsage = "Usage: savesync get <key> [--out PATH | --raw]"

func (c *Cli) runGet(ctx context.Context, args []string) error {
	positional, flags, err := parseArgs(args, "out")
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("missing save key. %s", getUsage)
	}
	key := positional[0]

	entry, err := c.store().Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			return fmt.Errorf("save not found: %s", key)
		}
		return fmt.Errorf("failed to get save: %w", err)
	}

	current := entry.Current
	if current == nil {
		_, raw := flags["raw"]
		_, out := flags["out"]
		if raw || out {
			return fmt.Errorf("save %s is in conflict, resolve it first", key)
		}
		c.io.Printf("Save %s has no current version, %d concurrent versions:\n", key, len(entry.Conflict))
		c.printVersions(entry)
		c.io.Println()
		c.io.Printf("Run 'savesync resolve %s --pick N' to choose one.\n", key)
		return nil
	}

	if _, raw := flags["raw"]; raw {
		if current.Deleted {
			return fmt.Errorf("save %s is deleted", key)
		}
		_, err := c.io.Write(current.Payload)
		return err
	}

	c.io.Printf("=== Save %s ===\n", key)
	c.io.Println()
	c.printRecord("", current)

	if out, ok := flags["out"]; ok {
		if current.Deleted {
			return fmt.Errorf("save %s is deleted", key)
		}
		if err := os.WriteFile(out, current.Payload, 0o600); err != nil {
			return fmt.Errorf("failed to write save file: %w", err)
		}
		c.io.Println()
		c.io.Printf("✓ Payload written to %s\n", out)
	}

	return nil
}
