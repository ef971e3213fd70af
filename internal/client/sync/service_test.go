package sync

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/savesync/internal/client/storage"
	"github.com/iudanet/savesync/internal/crdt"
	"github.com/iudanet/savesync/internal/engine"
	"github.com/iudanet/savesync/internal/errs"
	"github.com/iudanet/savesync/internal/models"
	"github.com/iudanet/savesync/internal/replica"
)

type fixture struct {
	service   Service
	engine    *engine.Engine
	transport *engine.TransportMock
	metadata  *storage.MetadataStorageMock
	replicas  *storage.ReplicaStorageMock
	remote    *RemoteMock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	cursors := map[string]models.SyncCursors{}
	metadata := &storage.MetadataStorageMock{
		GetCursorsFunc: func(ctx context.Context, namespace string) (models.SyncCursors, error) {
			return cursors[namespace], nil
		},
		SaveCursorsFunc: func(ctx context.Context, namespace string, c models.SyncCursors) error {
			cursors[namespace] = c
			return nil
		},
	}

	transport := &engine.TransportMock{
		PullFunc: func(ctx context.Context, namespace string, since uint64) (*engine.Batch, error) {
			return &engine.Batch{Cursor: since}, nil
		},
		PushFunc: func(ctx context.Context, namespace string, records []*models.SaveRecord) (*engine.PushReport, error) {
			return &engine.PushReport{Accepted: len(records)}, nil
		},
	}

	remote := &RemoteMock{
		ConflictsFunc: func(ctx context.Context, namespace string) ([]*models.ReplicaEntry, error) {
			return nil, nil
		},
	}

	// Clear подменяет in-memory backend пустым
	mem := replica.NewMemoryBackend()
	replicas := &storage.ReplicaStorageMock{
		LoadFunc: func(ctx context.Context, namespace string, key string) (*models.ReplicaEntry, error) {
			return mem.Load(ctx, namespace, key)
		},
		SaveFunc: func(ctx context.Context, namespace string, entry *models.ReplicaEntry) (uint64, error) {
			return mem.Save(ctx, namespace, entry)
		},
		ScanFunc: func(ctx context.Context, namespace string, after string, limit int) ([]*models.ReplicaEntry, error) {
			return mem.Scan(ctx, namespace, after, limit)
		},
		ChangedSinceFunc: func(ctx context.Context, namespace string, seq uint64) ([]*models.ReplicaEntry, error) {
			return mem.ChangedSince(ctx, namespace, seq)
		},
		NamespacesFunc: func(ctx context.Context) ([]string, error) {
			return []string{"app-42"}, nil
		},
		ClearFunc: func(ctx context.Context, namespace string) error {
			mem = replica.NewMemoryBackend()
			return nil
		},
	}

	store := replica.New(replicas, "app-42", "device-a", logger)
	e := engine.New(store, logger, engine.WithTransport(transport, metadata))

	return &fixture{
		service:   NewService(e, remote, replicas, metadata, logger),
		engine:    e,
		transport: transport,
		metadata:  metadata,
		replicas:  replicas,
		remote:    remote,
	}
}

func TestSync_PushesLocalChanges(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.engine.Store().Commit(ctx, "slot1", []byte("level 3"))
	require.NoError(t, err)
	_, err = f.engine.Store().Commit(ctx, "slot2", []byte("level 1"))
	require.NoError(t, err)

	pending, err := f.service.GetPendingSyncCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, pending)

	result, err := f.service.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Pushed)
	assert.Equal(t, 0, result.Pulled)

	require.Len(t, f.transport.PushCalls(), 1)
	assert.Equal(t, "app-42", f.transport.PushCalls()[0].Namespace)

	pending, err = f.service.GetPendingSyncCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, pending, "push cursor advanced after sync")
}

func TestSync_PullsRemoteChanges(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	remote := models.NewSaveRecord("slot1", "device-b", crdt.VectorClock{"device-b": 1}, []byte("remote"), time.Unix(1700000000, 0))
	f.transport.PullFunc = func(ctx context.Context, namespace string, since uint64) (*engine.Batch, error) {
		if since > 0 {
			return &engine.Batch{Cursor: since}, nil
		}
		return &engine.Batch{Records: []*models.SaveRecord{remote}, Cursor: 1}, nil
	}

	result, err := f.service.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Pulled)
	assert.Equal(t, 0, result.Pushed)

	entry, err := f.engine.Store().Get(ctx, "slot1")
	require.NoError(t, err)
	assert.Equal(t, []byte("remote"), entry.Current.Payload)

	status, err := f.service.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), status.PullCursor)
	assert.Equal(t, 0, status.Pending, "pulled records are not pending")
	assert.False(t, status.LastSync.IsZero())
}

func TestSync_Errors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection refused")

	t.Run("transport failure", func(t *testing.T) {
		f := newFixture(t)
		f.transport.PullFunc = func(ctx context.Context, namespace string, since uint64) (*engine.Batch, error) {
			return nil, boom
		}

		result, err := f.service.Sync(ctx)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, f.metadata.SaveCursorsCalls())
	})

	t.Run("rejected records are reported", func(t *testing.T) {
		f := newFixture(t)
		f.transport.PushFunc = func(ctx context.Context, namespace string, records []*models.SaveRecord) (*engine.PushReport, error) {
			return &engine.PushReport{
				Rejected: []*errs.Error{errs.New(errs.CodeUnknownDevice, "device is not allowed").With("device_id", "device-a")},
			}, nil
		}
		_, err := f.engine.Store().Commit(ctx, "slot1", []byte("x"))
		require.NoError(t, err)

		result, err := f.service.Sync(ctx)
		require.NoError(t, err)
		require.NotNil(t, result.Remote)
		require.Len(t, result.Remote.Rejected, 1)
		assert.ErrorIs(t, result.Remote.Rejected[0], errs.ErrUnknownDevice)
	})

	t.Run("cursor storage failure", func(t *testing.T) {
		f := newFixture(t)
		f.metadata.GetCursorsFunc = func(ctx context.Context, namespace string) (models.SyncCursors, error) {
			return models.SyncCursors{}, boom
		}

		_, err := f.service.GetPendingSyncCount(ctx)
		assert.ErrorIs(t, err, boom)

		_, err = f.service.Status(ctx)
		assert.ErrorIs(t, err, boom)
	})
}

func TestStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.engine.Store().Commit(ctx, "slot1", []byte("mine"))
	require.NoError(t, err)

	rival := models.NewSaveRecord("slot1", "device-b", crdt.VectorClock{"device-b": 1}, []byte("theirs"), time.Unix(1700000000, 0))
	_, err = f.engine.Store().Apply(ctx, rival)
	require.NoError(t, err)

	status, err := f.service.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "app-42", status.Namespace)
	assert.Equal(t, "device-a", status.DeviceID)
	assert.Equal(t, 1, status.Conflicts)
	assert.Equal(t, 2, status.Pending)
	assert.Equal(t, []string{"app-42"}, status.Namespaces)
	assert.True(t, status.LastSync.IsZero(), "never synced")
}

func TestServerConflicts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	entry := &models.ReplicaEntry{Key: "slot1"}
	f.remote.ConflictsFunc = func(ctx context.Context, namespace string) ([]*models.ReplicaEntry, error) {
		assert.Equal(t, "app-42", namespace)
		return []*models.ReplicaEntry{entry}, nil
	}

	conflicts, err := f.service.ServerConflicts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []*models.ReplicaEntry{entry}, conflicts)

	f.remote.ConflictsFunc = func(ctx context.Context, namespace string) ([]*models.ReplicaEntry, error) {
		return nil, errors.New("server error (500)")
	}
	_, err = f.service.ServerConflicts(ctx)
	assert.ErrorContains(t, err, "failed to get server conflicts")
}

func TestResetLocal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	record, err := f.engine.Store().Commit(ctx, "slot1", []byte("level 3"))
	require.NoError(t, err)

	err = f.service.ResetLocal(ctx)
	require.ErrorIs(t, err, ErrPendingChanges)
	assert.Empty(t, f.replicas.ClearCalls(), "unpushed changes are never dropped")

	_, err = f.service.Sync(ctx)
	require.NoError(t, err)

	require.NoError(t, f.service.ResetLocal(ctx))
	require.Len(t, f.replicas.ClearCalls(), 1)
	assert.Equal(t, "app-42", f.replicas.ClearCalls()[0].Namespace)

	_, err = f.engine.Store().Get(ctx, "slot1")
	assert.ErrorIs(t, err, replica.ErrEntryNotFound)

	status, err := f.service.Status(ctx)
	require.NoError(t, err)
	assert.Zero(t, status.PullCursor)
	assert.Zero(t, status.PushCursor)
	assert.True(t, status.LastSync.IsZero())

	// следующий Sync тянет все с начала
	f.transport.PullFunc = func(ctx context.Context, namespace string, since uint64) (*engine.Batch, error) {
		assert.Zero(t, since)
		return &engine.Batch{Records: []*models.SaveRecord{record}, Cursor: 1}, nil
	}
	result, err := f.service.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Pulled)

	entry, err := f.engine.Store().Get(ctx, "slot1")
	require.NoError(t, err)
	assert.Equal(t, []byte("level 3"), entry.Current.Payload)

	t.Run("clear failure", func(t *testing.T) {
		boom := errors.New("bucket is read-only")
		f.replicas.ClearFunc = func(ctx context.Context, namespace string) error {
			return boom
		}
		f.transport.PullFunc = func(ctx context.Context, namespace string, since uint64) (*engine.Batch, error) {
			return &engine.Batch{Cursor: since}, nil
		}

		err := f.service.ResetLocal(ctx)
		assert.ErrorIs(t, err, boom)
		assert.ErrorContains(t, err, "failed to clear local replica")
	})
}
