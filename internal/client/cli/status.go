package cli

import (
	"context"
	"fmt"
	"strings"
	"time"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Synchronization Status ===")
	c.io.Println()

	status, err := c.syncService.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	c.io.Printf("Namespace: %s\n", status.Namespace)
	c.io.Printf("Device:    %s\n", status.DeviceID)

	if status.LastSync.IsZero() {
		c.io.Println("Last sync: never")
	} else {
		c.io.Printf("Last sync: %s (%s ago)\n",
			status.LastSync.Local().Format(time.RFC3339),
			time.Since(status.LastSync).Round(time.Second))
	}
	c.io.Printf("Cursors:   pull %d, push %d\n", status.PullCursor, status.PushCursor)
	if len(status.Namespaces) > 1 {
		c.io.Printf("Local namespaces: %s\n", strings.Join(status.Namespaces, ", "))
	}

	c.io.Println()
	if status.Pending > 0 {
		c.io.Printf("⚠️  Pending sync: %d record(s) waiting to be synchronized\n", status.Pending)
		c.io.Println("Run 'savesync sync' to synchronize with server.")
	} else {
		c.io.Println("✓ All data synchronized with server")
	}

	if status.Conflicts > 0 {
		c.io.Printf("⚠️  %d conflict(s) waiting for resolution. Run 'savesync conflicts'.\n", status.Conflicts)
	}

	return nil
}
