package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/iudanet/savesync/internal/client/iocli"
	"github.com/iudanet/savesync/internal/client/sync"
	"github.com/iudanet/savesync/internal/engine"
	"github.com/iudanet/savesync/internal/replica"
)

// ErrUnknownCommand is returned by Run for commands the client does not know.
var ErrUnknownCommand = errors.New("unknown command")

type Cli struct {
	io          iocli.IO
	engine      *engine.Engine
	syncService sync.Service
}

func New(io iocli.IO, e *engine.Engine, syncService sync.Service) *Cli {
	return &Cli{
		io:          io,
		engine:      e,
		syncService: syncService,
	}
}

func (c *Cli) store() *replica.Store {
	return c.engine.Store()
}

// readPayload возвращает payload сохранения из файла или из stdin (pipe).
// Интерактивный терминал не считается источником payload.
func (c *Cli) readPayload(path string) ([]byte, error) {
	if path != "" {
		payload, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read save file: %w", err)
		}
		return payload, nil
	}

	if c.io.IsInteractive() {
		return nil, errors.New("missing payload: pass a save file or pipe data to stdin")
	}

	payload, err := c.io.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read payload from stdin: %w", err)
	}
	return payload, nil
}

func PrintUsage() {
	fmt.Println("SaveSync Client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  savesync [OPTIONS] COMMAND [ARGS]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -version                Show version information")
	fmt.Println("  -s URL                  Server URL (default: http://localhost:8080)")
	fmt.Println("  -d PATH                 Path to local database (default: savesync-client.db)")
	fmt.Println("  -app ID                 Application id, saves are scoped to namespace app-<ID>")
	fmt.Println("  -device ID              Override the device id generated on first run")
	fmt.Println("  -policy POLICY          Conflict policy: manual or tiebreak (default: manual)")
	fmt.Println("  -workers N              Reconcile workers (default: 4)")
	fmt.Println("  -timeout DURATION       HTTP timeout (default: 30s)")
	fmt.Println("  -log-level LEVEL        debug, info, warn or error (default: warn)")
	fmt.Println()
	fmt.Println("Every option can also be set with a SAVESYNC_ environment variable,")
	fmt.Println("for example SAVESYNC_SERVER_URL or SAVESYNC_APP_ID.")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  commit <key> [file]     Commit a save (reads stdin when no file is given)")
	fmt.Println("  get <key>               Show the current version of a save")
	fmt.Println("  list                    List saves of the application")
	fmt.Println("  delete <key>            Delete a save (tombstone)")
	fmt.Println("  conflicts [--server]    Show keys with concurrent versions")
	fmt.Println("  resolve <key>           Resolve a conflict (--pick N, --file PATH or --tiebreak)")
	fmt.Println("  sync [--full]           Synchronize local saves with server")
	fmt.Println("                          --full drops the local replica and downloads it again")
	fmt.Println("  status                  Show synchronization status")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  savesync -app 42 commit slot1 ./slot1.sav --sync")
	fmt.Println("  cat slot1.sav | savesync -app 42 commit slot1")
	fmt.Println("  savesync -app 42 get slot1 --out ./slot1.sav")
	fmt.Println("  savesync -app 42 resolve slot1 --pick 2")
	fmt.Println("  SAVESYNC_APP_ID=42 savesync sync")
}
