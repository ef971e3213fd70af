package cli

import (
	"context"
	"fmt"
)

const commitUsage = "Usage: savesync commit <key> [file] [--sync]"

func (c *Cli) runCommit(ctx context.Context, args []string) error {
	positional, flags, err := parseArgs(args)
	if err != nil {
		return err
	}
	if len(positional) == 0 || len(positional) > 2 {
		return fmt.Errorf("missing save key. %s", commitUsage)
	}

	key := positional[0]
	path := ""
	if len(positional) == 2 {
		path = positional[1]
	}

	payload, err := c.readPayload(path)
	if err != nil {
		return err
	}

	record, err := c.store().Commit(ctx, key, payload)
	if err != nil {
		return fmt.Errorf("failed to commit save: %w", err)
	}

	c.io.Printf("✓ Committed %s (%s)\n", key, formatSize(len(payload)))
	c.io.Printf("  Clock:    %s\n", record.Clock.String())
	c.io.Printf("  Checksum: %s\n", record.Checksum)

	if _, ok := flags["sync"]; ok {
		c.io.Println()
		return c.runSync(ctx, nil)
	}
	return nil
}
