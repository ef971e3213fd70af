package cli

import (
	"context"
	"fmt"
	"time"
)

func (c *Cli) runList(ctx context.Context, args []string) error {
	_, flags, err := parseArgs(args)
	if err != nil {
		return err
	}
	_, showDeleted := flags["all"]

	c.io.Printf("=== Saves in %s ===\n", c.store().Namespace())
	c.io.Println()

	count := 0
	for entry, err := range c.store().Entries(ctx) {
		if err != nil {
			return fmt.Errorf("failed to list saves: %w", err)
		}

		var state string
		switch {
		case entry.InConflict():
			state = fmt.Sprintf("conflict (%d versions)", len(entry.Conflict))
		case entry.Current == nil:
			continue
		case entry.Current.Deleted:
			if !showDeleted {
				continue
			}
			state = "deleted"
		default:
			state = formatSize(len(entry.Current.Payload))
		}

		count++
		c.io.Printf("%d. %s\n", count, entry.Key)
		c.io.Printf("   State:   %s\n", state)
		if entry.Current != nil {
			c.io.Printf("   Device:  %s\n", entry.Current.DeviceID)
			c.io.Printf("   Updated: %s\n", entry.Current.Timestamp.Local().Format(time.RFC3339))
		}
	}

	if count == 0 {
		c.io.Println("No saves found.")
		c.io.Println()
		c.io.Println("Use 'savesync commit <key> <file>' to add your first save.")
		return nil
	}

	c.io.Println()
	c.io.Printf("Total: %d save(s)\n", count)
	return nil
}
