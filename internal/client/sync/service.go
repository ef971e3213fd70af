package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/savesync/internal/client/storage"
	"github.com/iudanet/savesync/internal/engine"
	"github.com/iudanet/savesync/internal/models"
)

//go:generate moq -out service_mock.go . Service
//go:generate moq -out remote_mock.go . Remote

// ErrPendingChanges возвращается ResetLocal, пока есть неотправленные локальные правки
var ErrPendingChanges = errors.New("local changes are not pushed yet")

// Service определяет интерфейс для sync.Service
type Service interface {
	// Sync выполняет полную синхронизацию с сервером
	Sync(ctx context.Context) (*engine.SyncResult, error)

	// GetPendingSyncCount возвращает количество записей, ожидающих отправки на сервер
	GetPendingSyncCount(ctx context.Context) (int, error)

	// Status собирает сводку о состоянии синхронизации пространства имен
	Status(ctx context.Context) (*Status, error)

	// ServerConflicts возвращает конфликты, которые видит сервер
	ServerConflicts(ctx context.Context) ([]*models.ReplicaEntry, error)

	// ResetLocal удаляет локальную реплику пространства имен и курсоры,
	// следующий Sync загрузит все версии с сервера заново
	ResetLocal(ctx context.Context) error
}

// Remote - часть API сервера, нужная сервису помимо Transport
type Remote interface {
	Conflicts(ctx context.Context, namespace string) ([]*models.ReplicaEntry, error)
}

// Status - сводка для команды status
type Status struct {
	LastSync   time.Time
	Namespace  string
	DeviceID   string
	Namespaces []string // все пространства имен в локальном хранилище
	Pending    int
	Conflicts  int
	PullCursor uint64
	PushCursor uint64
}

type service struct {
	engine          *engine.Engine
	remote          Remote
	replicaStorage  storage.ReplicaStorage
	metadataStorage storage.MetadataStorage
	logger          *slog.Logger
}

// NewService creates a new sync service on top of the reconciliation engine.
// The engine must be configured with a transport and metadataStorage as its cursor store,
// and its replica store must be backed by replicaStorage.
func NewService(
	e *engine.Engine,
	remote Remote,
	replicaStorage storage.ReplicaStorage,
	metadataStorage storage.MetadataStorage,
	logger *slog.Logger,
) Service {
	return &service{
		engine:          e,
		remote:          remote,
		replicaStorage:  replicaStorage,
		metadataStorage: metadataStorage,
		logger:          logger,
	}
}

// Sync performs full synchronization with server
func (s *service) Sync(ctx context.Context) (*engine.SyncResult, error) {
	start := time.Now()

	result, err := s.engine.Sync(ctx)
	if err != nil {
		s.logger.Error("Synchronization failed",
			"namespace", s.engine.Store().Namespace(),
			"error", err)
		return nil, err
	}

	s.logger.Debug("Sync pass finished",
		"namespace", s.engine.Store().Namespace(),
		"duration", time.Since(start))

	return result, nil
}

// GetPendingSyncCount возвращает количество записей, ожидающих синхронизации.
// Использует push-курсор из metadata storage.
func (s *service) GetPendingSyncCount(ctx context.Context) (int, error) {
	store := s.engine.Store()

	cursors, err := s.metadataStorage.GetCursors(ctx, store.Namespace())
	if err != nil {
		return 0, fmt.Errorf("failed to get sync cursors: %w", err)
	}

	records, _, err := store.ChangesSince(ctx, cursors.Push)
	if err != nil {
		return 0, fmt.Errorf("failed to get pending records: %w", err)
	}

	return len(records), nil
}

func (s *service) Status(ctx context.Context) (*Status, error) {
	store := s.engine.Store()

	cursors, err := s.metadataStorage.GetCursors(ctx, store.Namespace())
	if err != nil {
		return nil, fmt.Errorf("failed to get sync cursors: %w", err)
	}

	pending, err := s.GetPendingSyncCount(ctx)
	if err != nil {
		return nil, err
	}

	conflicts, err := store.Conflicts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get conflicts: %w", err)
	}

	namespaces, err := s.replicaStorage.Namespaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list namespaces: %w", err)
	}

	return &Status{
		LastSync:   cursors.LastSync,
		Namespace:  store.Namespace(),
		DeviceID:   store.DeviceID(),
		Namespaces: namespaces,
		Pending:    pending,
		Conflicts:  len(conflicts),
		PullCursor: cursors.Pull,
		PushCursor: cursors.Push,
	}, nil
}

func (s *service) ServerConflicts(ctx context.Context) ([]*models.ReplicaEntry, error) {
	conflicts, err := s.remote.Conflicts(ctx, s.engine.Store().Namespace())
	if err != nil {
		return nil, fmt.Errorf("failed to get server conflicts: %w", err)
	}
	return conflicts, nil
}

func (s *service) ResetLocal(ctx context.Context) error {
	ns := s.engine.Store().Namespace()

	pending, err := s.GetPendingSyncCount(ctx)
	if err != nil {
		return err
	}
	if pending > 0 {
		return fmt.Errorf("%w: %d record(s) in %s", ErrPendingChanges, pending, ns)
	}

	if err := s.replicaStorage.Clear(ctx, ns); err != nil {
		return fmt.Errorf("failed to clear local replica: %w", err)
	}
	if err := s.metadataStorage.SaveCursors(ctx, ns, models.SyncCursors{}); err != nil {
		return fmt.Errorf("failed to reset sync cursors: %w", err)
	}

	s.logger.Info("Local replica reset", "namespace", ns)
	return nil
}
