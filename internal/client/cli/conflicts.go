package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/savesync/internal/models"
)

func (c *Cli) runConflicts(ctx context.Context, args []string) error {
	_, flags, err := parseArgs(args)
	if err != nil {
		return err
	}

	var (
		conflicts []*models.ReplicaEntry
		where     = "local replica"
	)
	if _, ok := flags["server"]; ok {
		where = "server"
		conflicts, err = c.syncService.ServerConflicts(ctx)
	} else {
		conflicts, err = c.store().Conflicts(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to get conflicts: %w", err)
	}

	if len(conflicts) == 0 {
		c.io.Printf("✓ No conflicts in %s\n", where)
		return nil
	}

	c.io.Printf("Found %d conflict(s) in %s:\n", len(conflicts), where)
	for _, entry := range conflicts {
		c.io.Println()
		c.io.Printf("%s\n", entry.Key)
		c.printVersions(entry)
	}
	c.io.Println()
	c.io.Println("Run 'savesync resolve <key> --pick N' to keep a version,")
	c.io.Println("or 'savesync resolve <key> --file PATH' to commit a merged save.")

	return nil
}
