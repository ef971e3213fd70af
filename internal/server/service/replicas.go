// Package service связывает HTTP слой сервера с ядром синхронизации:
// по одному engine.Engine на namespace поверх общего хранилища.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/iudanet/savesync/internal/engine"
	"github.com/iudanet/savesync/internal/models"
	"github.com/iudanet/savesync/internal/replica"
	"github.com/iudanet/savesync/internal/server/storage"
	"github.com/iudanet/savesync/internal/validation"
)

// ServerDeviceID - id, под которым сервер ведет свои реплики.
// Сервер не коммитит и не разрешает конфликты сам, поэтому в часы он не попадает.
const ServerDeviceID = "server"

// Config - параметры реплик сервера
type Config struct {
	AllowedDevices []string // пусто - принимаются любые устройства
	Workers        int      // размер пула Reconcile
}

// Replicas держит по движку на каждый namespace
type Replicas struct {
	storage storage.ReplicaStorage
	logger  *slog.Logger
	engines map[string]*engine.Engine
	cfg     Config
	mu      sync.Mutex
}

// NewReplicas creates a new replica service
func NewReplicas(st storage.ReplicaStorage, logger *slog.Logger, cfg Config) *Replicas {
	return &Replicas{
		storage: st,
		logger:  logger,
		engines: make(map[string]*engine.Engine),
		cfg:     cfg,
	}
}

// Pull returns every version changed after since and the cursor for the next pull.
func (r *Replicas) Pull(ctx context.Context, namespace string, since uint64) ([]*models.SaveRecord, uint64, error) {
	e, err := r.engine(namespace)
	if err != nil {
		return nil, since, err
	}
	return e.Store().ChangesSince(ctx, since)
}

// Push применяет пакет записей клиента.
// Отклоненные записи попадают в отчет, а не в ошибку: остальной пакет применяется.
func (r *Replicas) Push(ctx context.Context, namespace string, records []*models.SaveRecord) (*engine.PushReport, error) {
	e, err := r.engine(namespace)
	if err != nil {
		return nil, err
	}

	res, err := e.Reconcile(ctx, records)
	if err != nil {
		return nil, err
	}
	for _, rejected := range res.Rejected {
		r.logger.Warn("Rejected pushed record", "namespace", namespace, "error", rejected)
	}
	return engine.NewPushReport(res), nil
}

// Conflicts returns the entries of namespace with a pending conflict
func (r *Replicas) Conflicts(ctx context.Context, namespace string) ([]*models.ReplicaEntry, error) {
	e, err := r.engine(namespace)
	if err != nil {
		return nil, err
	}
	return e.Store().Conflicts(ctx)
}

// Namespaces returns all namespaces known to the storage
func (r *Replicas) Namespaces(ctx context.Context) ([]string, error) {
	return r.storage.Namespaces(ctx)
}

// engine возвращает (и при первом обращении создает) движок namespace
func (r *Replicas) engine(namespace string) (*engine.Engine, error) {
	if err := validation.ValidateNamespace(namespace); err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrInvalidNamespace, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.engines[namespace]; ok {
		return e, nil
	}

	var opts []replica.Option
	if len(r.cfg.AllowedDevices) > 0 {
		opts = append(opts, replica.WithAllowedDevices(r.cfg.AllowedDevices...))
	}

	logger := r.logger.With("namespace", namespace)
	store := replica.New(r.storage, namespace, ServerDeviceID, logger, opts...)
	e := engine.New(store, logger, engine.WithWorkers(r.cfg.Workers))
	r.engines[namespace] = e

	r.logger.Debug("Replica opened", "namespace", namespace)
	return e, nil
}
