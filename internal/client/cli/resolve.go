package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/iudanet/savesync/internal/client/storage"
	"github.com/iudanet/savesync/internal/models"
)

const resolveUsage = "Usage: savesync resolve <key> (--pick N | --file PATH | --tiebreak) [--sync]"

func (c *Cli) runResolve(ctx context.Context, args []string) error {
	positional, flags, err := parseArgs(args, "pick", "file")
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("missing save key. %s", resolveUsage)
	}
	key := positional[0]

	entry, err := c.store().Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			return fmt.Errorf("save not found: %s", key)
		}
		return fmt.Errorf("failed to get save: %w", err)
	}
	if !entry.InConflict() {
		return fmt.Errorf("no pending conflict for %s", key)
	}

	var record *models.SaveRecord
	_, tieBreak := flags["tiebreak"]
	path, fromFile := flags["file"]

	switch {
	case tieBreak:
		record, err = c.engine.ResolveByTieBreak(ctx, key)
	case fromFile:
		var payload []byte
		payload, err = c.readPayload(path)
		if err != nil {
			return err
		}
		// Коммит доминирует над всеми версиями ключа и закрывает конфликт
		record, err = c.store().Commit(ctx, key, payload)
	default:
		var chosen *models.SaveRecord
		chosen, err = c.chooseVersion(entry, flags)
		if err != nil {
			return err
		}
		record, err = c.keepVersion(ctx, chosen)
	}
	if err != nil {
		return fmt.Errorf("failed to resolve conflict: %w", err)
	}

	c.io.Printf("✓ Resolved %s (clock %s)\n", key, record.Clock.String())

	if _, ok := flags["sync"]; ok {
		c.io.Println()
		return c.runSync(ctx, nil)
	}
	return nil
}

// chooseVersion выбирает версию по --pick либо спрашивает пользователя в терминале
func (c *Cli) chooseVersion(entry *models.ReplicaEntry, flags map[string]string) (*models.SaveRecord, error) {
	n := len(entry.Conflict)

	choice, ok := flags["pick"]
	if !ok {
		if !c.io.IsInteractive() {
			return nil, fmt.Errorf("no resolution given. %s", resolveUsage)
		}
		c.io.Printf("Save %s has %d concurrent versions:\n", entry.Key, n)
		c.printVersions(entry)
		c.io.Println()

		var err error
		choice, err = c.io.ReadInput(fmt.Sprintf("Choose version [1-%d]: ", n))
		if err != nil {
			return nil, fmt.Errorf("failed to read choice: %w", err)
		}
	}

	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 1 || idx > n {
		return nil, fmt.Errorf("invalid version %q: expected a number from 1 to %d", choice, n)
	}
	return entry.Conflict[idx-1], nil
}

// keepVersion перезаписывает выбранную версию локальным коммитом с часами,
// доминирующими над всем фронтом, чтобы выбор разошелся по остальным репликам.
func (c *Cli) keepVersion(ctx context.Context, chosen *models.SaveRecord) (*models.SaveRecord, error) {
	if chosen.Deleted {
		return c.store().Delete(ctx, chosen.Key)
	}
	return c.store().Commit(ctx, chosen.Key, chosen.Payload)
}
