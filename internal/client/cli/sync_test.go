package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/savesync/internal/client/sync"
	"github.com/iudanet/savesync/internal/engine"
	"github.com/iudanet/savesync/internal/errs"
	"github.com/iudanet/savesync/internal/models"
)

// TestCli_runSync_Success проверяет успешное выполнение синхронизации и вывод отчёта
func TestCli_runSync_Success(t *testing.T) {
	ctx := context.Background()
	tc := newTestCli(t)

	tc.sync.SyncFunc = func(ctx context.Context) (*engine.SyncResult, error) {
		return &engine.SyncResult{
			Pulled:   3,
			Pushed:   2,
			Resolved: 1,
			Remote: &engine.PushReport{
				Accepted: 1,
				Rejected: []*errs.Error{errs.New(errs.CodeCorruptPayload, "checksum mismatch")},
			},
			Conflicts: []*models.ReplicaEntry{{Key: "slot1", Conflict: make([]*models.SaveRecord, 2)}},
		}, nil
	}

	require.NoError(t, tc.cli.Run(ctx, "sync", nil))

	out := tc.out.String()
	assert.Contains(t, out, "✓ Synchronization completed successfully!")
	assert.Contains(t, out, "Pulled from server: 3 records")
	assert.Contains(t, out, "Pushed to server:   2 records")
	assert.Contains(t, out, "Resolved by tie-break: 1")
	assert.Contains(t, out, "CORRUPT_PAYLOAD: checksum mismatch")
	assert.Contains(t, out, "slot1 (2 versions)")
}

// TestCli_runSync_Error проверяет обработку ошибки синхронизации
func TestCli_runSync_Error(t *testing.T) {
	tc := newTestCli(t)
	boom := errors.New("connection refused")
	tc.sync.SyncFunc = func(ctx context.Context) (*engine.SyncResult, error) {
		return nil, boom
	}

	err := tc.cli.Run(context.Background(), "sync", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "synchronization failed")
	assert.NotContains(t, tc.out.String(), "completed successfully")
}

func TestCli_runSync_Full(t *testing.T) {
	ctx := context.Background()

	t.Run("reset then sync", func(t *testing.T) {
		tc := newTestCli(t)
		tc.sync.ResetLocalFunc = func(ctx context.Context) error {
			return nil
		}

		require.NoError(t, tc.cli.Run(ctx, "sync", []string{"--full"}))
		assert.Len(t, tc.sync.ResetLocalCalls(), 1)
		assert.Len(t, tc.sync.SyncCalls(), 1)
		assert.Contains(t, tc.out.String(), "Local replica cleared")
	})

	t.Run("pending changes", func(t *testing.T) {
		tc := newTestCli(t)
		tc.sync.ResetLocalFunc = func(ctx context.Context) error {
			return fmt.Errorf("%w: 2 record(s) in app-42", sync.ErrPendingChanges)
		}

		err := tc.cli.Run(ctx, "sync", []string{"--full"})
		require.ErrorIs(t, err, sync.ErrPendingChanges)
		assert.Contains(t, err.Error(), "run 'savesync sync' first")
		assert.Empty(t, tc.sync.SyncCalls())
	})
}

func TestCli_runStatus(t *testing.T) {
	tests := []struct {
		status   *sync.Status
		name     string
		contains []string
	}{
		{
			name:   "never synced",
			status: &sync.Status{Namespace: "app-42", DeviceID: "device-a", Pending: 2},
			contains: []string{
				"Namespace: app-42",
				"Device:    device-a",
				"Last sync: never",
				"Pending sync: 2 record(s)",
			},
		},
		{
			name: "up to date with conflicts",
			status: &sync.Status{
				Namespace:  "app-42",
				DeviceID:   "device-a",
				LastSync:   time.Now().Add(-time.Minute),
				PullCursor: 7,
				PushCursor: 3,
				Conflicts:  1,
				Namespaces: []string{"app-42", "app-7"},
			},
			contains: []string{
				"Cursors:   pull 7, push 3",
				"Local namespaces: app-42, app-7",
				"✓ All data synchronized with server",
				"1 conflict(s) waiting for resolution",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := newTestCli(t)
			tc.sync.StatusFunc = func(ctx context.Context) (*sync.Status, error) {
				return tt.status, nil
			}

			require.NoError(t, tc.cli.Run(context.Background(), "status", nil))
			for _, s := range tt.contains {
				assert.Contains(t, tc.out.String(), s)
			}
		})
	}

	t.Run("error", func(t *testing.T) {
		tc := newTestCli(t)
		tc.sync.StatusFunc = func(ctx context.Context) (*sync.Status, error) {
			return nil, errors.New("storage is closed")
		}
		err := tc.cli.Run(context.Background(), "status", nil)
		assert.ErrorContains(t, err, "failed to get status")
	})
}
