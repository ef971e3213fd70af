package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/savesync/internal/client/sync"
)

func (c *Cli) runSync(ctx context.Context, args []string) error {
	_, flags, err := parseArgs(args)
	if err != nil {
		return err
	}

	c.io.Println("=== Synchronization ===")
	c.io.Println()

	if _, full := flags["full"]; full {
		if err := c.syncService.ResetLocal(ctx); err != nil {
			if errors.Is(err, sync.ErrPendingChanges) {
				return fmt.Errorf("%w; run 'savesync sync' first", err)
			}
			return fmt.Errorf("failed to reset local replica: %w", err)
		}
		c.io.Println("Local replica cleared, downloading all saves...")
	}

	c.io.Println("Starting synchronization with server...")

	result, err := c.syncService.Sync(ctx)
	if err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Synchronization completed successfully!")
	c.io.Println()
	c.io.Printf("Pulled from server: %d records\n", result.Pulled)
	c.io.Printf("Pushed to server:   %d records\n", result.Pushed)
	if result.Resolved > 0 {
		c.io.Printf("Resolved by tie-break: %d\n", result.Resolved)
	}

	if result.Remote != nil && len(result.Remote.Rejected) > 0 {
		c.io.Println()
		c.io.Printf("⚠️  Server rejected %d record(s):\n", len(result.Remote.Rejected))
		for _, rejected := range result.Remote.Rejected {
			c.io.Printf("  - %s: %s\n", rejected.Code, rejected.Message)
		}
	}

	if len(result.Conflicts) > 0 {
		c.io.Println()
		c.io.Printf("⚠️  %d conflict(s) need manual resolution:\n", len(result.Conflicts))
		for _, entry := range result.Conflicts {
			c.io.Printf("  - %s (%d versions)\n", entry.Key, len(entry.Conflict))
		}
		c.io.Println("Run 'savesync conflicts' for details.")
	}

	return nil
}
