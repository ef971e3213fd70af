package capi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/savesync/internal/engine"
	"github.com/iudanet/savesync/internal/models"
	"github.com/iudanet/savesync/internal/replica"
	"github.com/iudanet/savesync/internal/resolver"
	"github.com/iudanet/savesync/pkg/api"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openSession(t *testing.T, lib *Library, appID int64) SessionID {
	t.Helper()
	var id SessionID
	require.Equal(t, StatusOK, lib.NewCloudSave(appID, &id))
	t.Cleanup(func() { lib.CloseCloudSave(id) })
	return id
}

// readString читает хэндл и освобождает его
func readString(t *testing.T, lib *Library, id SessionID, h Handle) string {
	t.Helper()
	var s string
	require.Equal(t, StatusOK, lib.Read(id, h, &s))
	require.Equal(t, StatusOK, lib.Free(id, h))
	return s
}

func lastError(t *testing.T, lib *Library, id SessionID) api.ErrorResponse {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(readString(t, lib, id, lib.LastErrorJSON(id))), &resp))
	return resp
}

// foreign - запись другого устройства в wire-форме
func foreign(device, key, clock, payload string) Record {
	return Record{
		DeviceID:    device,
		Key:         key,
		Checksum:    models.Checksum([]byte(payload)).String(),
		VectorClock: clock,
		Payload:     []byte(payload),
		Timestamp:   1700000000,
	}
}

func TestLibrary_Sessions(t *testing.T) {
	lib := NewLibrary(replica.NewMemoryBackend(), "device-a", testLogger())

	var id SessionID
	assert.Equal(t, StatusInvalidRequest, lib.NewCloudSave(0, &id))
	assert.Zero(t, id)
	assert.Equal(t, "INVALID_REQUEST", lastError(t, lib, 0).Code)

	require.Equal(t, StatusOK, lib.NewCloudSave(42, &id))
	assert.NotZero(t, id)

	var out CloudSave
	require.Equal(t, StatusOK, lib.Commit(id, "slot1", []byte("data"), &out))

	require.Equal(t, StatusOK, lib.CloseCloudSave(id))
	assert.Equal(t, StatusInvalidHandle, lib.CloseCloudSave(id))
	assert.Equal(t, StatusInvalidHandle, lib.Commit(id, "slot1", []byte("data"), nil))
	assert.Equal(t, StatusInvalidHandle, lib.Free(id, out.Key))
}

func TestLibrary_CommitGet(t *testing.T) {
	lib := NewLibrary(replica.NewMemoryBackend(), "device-a", testLogger())
	id := openSession(t, lib, 42)

	var committed CloudSave
	require.Equal(t, StatusOK, lib.Commit(id, "slot1", []byte("level 3"), &committed))
	assert.Equal(t, "slot1", readString(t, lib, id, committed.Key))
	assert.Equal(t, "device-a", readString(t, lib, id, committed.DeviceID))
	assert.JSONEq(t, `{"device-a":1}`, readString(t, lib, id, committed.VectorClock))

	var got CloudSave
	require.Equal(t, StatusOK, lib.Get(id, "slot1", &got))
	assert.Equal(t, "level 3", readString(t, lib, id, got.Payload))
	assert.Equal(t, models.Checksum([]byte("level 3")).String(), readString(t, lib, id, got.Checksum))
	assert.False(t, got.Deleted)

	t.Run("missing key", func(t *testing.T) {
		assert.Equal(t, StatusInvalidRequest, lib.Get(id, "slot9", &got))
		resp := lastError(t, lib, id)
		assert.Equal(t, "INVALID_REQUEST", resp.Code)
		assert.Equal(t, "slot9", resp.Details["key"])
	})

	t.Run("delete", func(t *testing.T) {
		var tomb CloudSave
		require.Equal(t, StatusOK, lib.Delete(id, "slot1", &tomb))
		assert.True(t, tomb.Deleted)
		assert.JSONEq(t, `{"device-a":2}`, readString(t, lib, id, tomb.VectorClock))
	})

	t.Run("namespaces are isolated", func(t *testing.T) {
		other := openSession(t, lib, 7)
		assert.Equal(t, StatusInvalidRequest, lib.Get(other, "slot1", nil))
	})
}

func TestLibrary_Apply(t *testing.T) {
	tests := []struct {
		record   Record
		name     string
		wantCode string
		status   Status
		kind     resolver.Kind
	}{
		{
			name:   "newer version accepted",
			record: foreign("device-b", "slot1", `{"device-a":1,"device-b":1}`, "theirs"),
			status: StatusOK,
			kind:   resolver.AcceptIncoming,
		},
		{
			name:   "concurrent version",
			record: foreign("device-b", "slot1", `{"device-b":1}`, "theirs"),
			status: StatusOK,
			kind:   resolver.Conflict,
		},
		{
			name: "corrupt payload",
			record: func() Record {
				r := foreign("device-b", "slot1", `{"device-a":1,"device-b":1}`, "theirs")
				r.Payload = []byte("tampered")
				return r
			}(),
			status:   StatusCorruptPayload,
			kind:     resolver.Rejected,
			wantCode: "CORRUPT_PAYLOAD",
		},
		{
			name:     "malformed clock",
			record:   foreign("device-b", "slot1", `{"device-b":-1`, "theirs"),
			status:   StatusMalformedClock,
			kind:     -1,
			wantCode: "MALFORMED_CLOCK",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib := NewLibrary(replica.NewMemoryBackend(), "device-a", testLogger())
			id := openSession(t, lib, 42)
			require.Equal(t, StatusOK, lib.Commit(id, "slot1", []byte("mine"), nil))

			kind := int32(-1)
			assert.Equal(t, tt.status, lib.Apply(id, tt.record, &kind))
			assert.Equal(t, int32(tt.kind), kind)

			if tt.wantCode != "" {
				resp := lastError(t, lib, id)
				assert.Equal(t, tt.wantCode, resp.Code)
				assert.NotEmpty(t, resp.Message)
				assert.Equal(t, "slot1", resp.Details["key"])
				assert.Equal(t, "device-b", resp.Details["device_id"])
			}
		})
	}
}

func TestLibrary_LastErrorPerSession(t *testing.T) {
	lib := NewLibrary(replica.NewMemoryBackend(), "device-a", testLogger())
	first := openSession(t, lib, 1)
	second := openSession(t, lib, 2)

	assert.Equal(t, "{}", readString(t, lib, first, lib.LastErrorJSON(first)))

	bad := foreign("device-b", "slot1", `{"device-b":1}`, "theirs")
	bad.Checksum = "sha256:nothex"
	assert.Equal(t, StatusCorruptPayload, lib.Apply(first, bad, nil))
	assert.Equal(t, StatusInvalidRequest, lib.Get(second, "slot9", nil))

	assert.Equal(t, "CORRUPT_PAYLOAD", lastError(t, lib, first).Code)
	assert.Equal(t, "INVALID_REQUEST", lastError(t, lib, second).Code)

	// успешный вызов не сбрасывает слот
	require.Equal(t, StatusOK, lib.Commit(first, "slot2", []byte("ok"), nil))
	assert.Equal(t, "CORRUPT_PAYLOAD", lastError(t, lib, first).Code)
}

func TestLibrary_Free(t *testing.T) {
	lib := NewLibrary(replica.NewMemoryBackend(), "device-a", testLogger())
	id := openSession(t, lib, 42)

	var out CloudSave
	require.Equal(t, StatusOK, lib.Commit(id, "slot1", []byte("data"), &out))
	for _, h := range out.Handles() {
		require.Equal(t, StatusOK, lib.Free(id, h))
	}

	assert.Equal(t, StatusInvalidHandle, lib.Free(id, out.Payload))
	resp := lastError(t, lib, id)
	assert.Equal(t, "INVALID_REQUEST", resp.Code)
	assert.Equal(t, "double_free", resp.Details["reason"])

	assert.Equal(t, StatusOK, lib.Free(id, 0))
	assert.Equal(t, StatusInvalidHandle, lib.Read(id, Handle(999), nil))

	t.Run("handles belong to their session", func(t *testing.T) {
		other := openSession(t, lib, 7)
		h := lib.LastErrorJSON(id)
		assert.Equal(t, StatusInvalidHandle, lib.Free(other, h+100))
		assert.Equal(t, StatusOK, lib.Free(id, h))
	})
}

func TestLibrary_LastErrorHandle(t *testing.T) {
	lib := NewLibrary(replica.NewMemoryBackend(), "device-a", testLogger())
	id := openSession(t, lib, 42)
	s, ok := lib.session(id)
	require.True(t, ok)

	require.Equal(t, StatusInvalidRequest, lib.Get(id, "slot9", nil))
	first := lib.LastErrorJSON(id)
	live := s.arena.Live()

	for range 5 {
		assert.Equal(t, first, lib.LastErrorJSON(id), "same handle until the slot changes")
	}
	assert.Equal(t, live, s.arena.Live())

	require.Equal(t, StatusInvalidRequest, lib.Get(id, "slot8", nil))
	assert.Equal(t, live-1, s.arena.Live(), "overwritten error releases its JSON")

	var str string
	assert.Equal(t, StatusInvalidHandle, lib.Read(id, first, &str))

	t.Run("freed by caller", func(t *testing.T) {
		h := lib.LastErrorJSON(id)
		require.Equal(t, StatusOK, lib.Free(id, h))
		before := s.arena.Live()

		require.Equal(t, StatusInvalidRequest, lib.Get(id, "slot7", nil))
		assert.Equal(t, before, s.arena.Live())

		next := lib.LastErrorJSON(id)
		assert.NotEqual(t, h, next)
		assert.Contains(t, readString(t, lib, id, next), "slot7")
	})
}

func TestLibrary_Resolve(t *testing.T) {
	lib := NewLibrary(replica.NewMemoryBackend(), "device-a", testLogger())
	id := openSession(t, lib, 42)

	require.Equal(t, StatusOK, lib.Commit(id, "slot1", []byte("mine"), nil))
	assert.Equal(t, StatusConflictUnresolved, lib.Resolve(id, "slot1", 0), "nothing to resolve")

	require.Equal(t, StatusOK, lib.Apply(id, foreign("device-b", "slot1", `{"device-b":1}`, "theirs"), nil))

	var count int32
	require.Equal(t, StatusOK, lib.ConflictCount(id, &count))
	assert.Equal(t, int32(1), count)

	var versions []CloudSave
	require.Equal(t, StatusOK, lib.Versions(id, "slot1", &versions))
	require.Len(t, versions, 2)

	assert.Equal(t, StatusConflictUnresolved, lib.Get(id, "slot1", nil), "no current version until resolution")
	resp := lastError(t, lib, id)
	assert.Equal(t, "CONFLICT_UNRESOLVED", resp.Code)
	assert.EqualValues(t, 2, resp.Details["versions"])

	assert.Equal(t, StatusConflictUnresolved, lib.Resolve(id, "slot1", 2))
	assert.Equal(t, StatusConflictUnresolved, lib.Resolve(id, "slot1", -1))
	require.Equal(t, StatusOK, lib.ConflictCount(id, &count))
	assert.Equal(t, int32(1), count, "a failed resolve leaves the conflict in place")

	var chosen int32 = -1
	for i, v := range versions {
		if readString(t, lib, id, v.DeviceID) == "device-b" {
			chosen = int32(i)
		}
	}
	require.NotEqual(t, int32(-1), chosen)
	require.Equal(t, StatusOK, lib.Resolve(id, "slot1", chosen))

	require.Equal(t, StatusOK, lib.ConflictCount(id, &count))
	assert.Zero(t, count)

	var got CloudSave
	require.Equal(t, StatusOK, lib.Get(id, "slot1", &got))
	assert.Equal(t, "theirs", readString(t, lib, id, got.Payload))
}

func TestLibrary_PanicRecovery(t *testing.T) {
	backend := &replica.BackendMock{
		LoadFunc: func(ctx context.Context, namespace string, key string) (*models.ReplicaEntry, error) {
			panic("bucket is nil")
		},
	}
	lib := NewLibrary(backend, "device-a", testLogger())
	id := openSession(t, lib, 42)

	assert.Equal(t, StatusInternal, lib.Commit(id, "slot1", []byte("data"), nil))
	resp := lastError(t, lib, id)
	assert.Equal(t, "INTERNAL", resp.Code)
	assert.Contains(t, resp.Message, "bucket is nil")

	// сессия остается пригодной после паники
	assert.Equal(t, StatusInternal, lib.Get(id, "slot1", nil))
}

func TestLibrary_Sync(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		lib := NewLibrary(replica.NewMemoryBackend(), "device-a", testLogger())
		id := openSession(t, lib, 42)
		assert.Equal(t, StatusInvalidRequest, lib.Sync(id, nil))
	})

	t.Run("pull and push", func(t *testing.T) {
		server := replica.New(replica.NewMemoryBackend(), "app-42", "server", testLogger())
		serverEngine := engine.New(server, testLogger())
		_, err := server.Commit(context.Background(), "slot2", []byte("from server"))
		require.NoError(t, err)

		var mu sync.Mutex
		cursors := map[string]models.SyncCursors{}
		transport := &engine.TransportMock{
			PullFunc: func(ctx context.Context, namespace string, since uint64) (*engine.Batch, error) {
				records, cursor, err := server.ChangesSince(ctx, since)
				if err != nil {
					return nil, err
				}
				return &engine.Batch{Records: records, Cursor: cursor}, nil
			},
			PushFunc: func(ctx context.Context, namespace string, records []*models.SaveRecord) (*engine.PushReport, error) {
				res, err := serverEngine.Reconcile(ctx, records)
				if err != nil {
					return nil, err
				}
				return engine.NewPushReport(res), nil
			},
		}
		cursorStore := &engine.CursorStoreMock{
			GetCursorsFunc: func(ctx context.Context, namespace string) (models.SyncCursors, error) {
				mu.Lock()
				defer mu.Unlock()
				return cursors[namespace], nil
			},
			SaveCursorsFunc: func(ctx context.Context, namespace string, c models.SyncCursors) error {
				mu.Lock()
				defer mu.Unlock()
				cursors[namespace] = c
				return nil
			},
		}

		lib := NewLibrary(replica.NewMemoryBackend(), "device-a", testLogger(),
			engine.WithTransport(transport, cursorStore))
		id := openSession(t, lib, 42)
		require.Equal(t, StatusOK, lib.Commit(id, "slot1", []byte("from device"), nil))

		var stats SyncStats
		require.Equal(t, StatusOK, lib.Sync(id, &stats))
		assert.Equal(t, int32(1), stats.Pulled)
		assert.Equal(t, int32(1), stats.Pushed)
		assert.Zero(t, stats.Conflicts)
		assert.Zero(t, stats.Rejected)

		var got CloudSave
		require.Equal(t, StatusOK, lib.Get(id, "slot2", &got))
		assert.Equal(t, "from server", readString(t, lib, id, got.Payload))

		entry, err := server.Get(context.Background(), "slot1")
		require.NoError(t, err)
		assert.Equal(t, []byte("from device"), entry.Current.Payload)
	})
}
