package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/savesync/internal/errs"
	"github.com/iudanet/savesync/internal/models"
	"github.com/iudanet/savesync/internal/resolver"
)

//go:generate moq -out transport_mock.go . Transport
//go:generate moq -out cursorstore_mock.go . CursorStore

// Transport - удаленная сторона синхронизации (сервер или другой узел).
// Ядро само не выполняет сетевой ввод-вывод.
type Transport interface {
	// Pull возвращает версии записей, измененных на удаленной стороне после since
	Pull(ctx context.Context, namespace string, since uint64) (*Batch, error)

	// Push отправляет записи на удаленную сторону
	Push(ctx context.Context, namespace string, records []*models.SaveRecord) (*PushReport, error)
}

// CursorStore хранит курсоры синхронизации.
type CursorStore interface {
	// GetCursors returns zero cursors if the namespace was never synced
	GetCursors(ctx context.Context, namespace string) (models.SyncCursors, error)
	SaveCursors(ctx context.Context, namespace string, cursors models.SyncCursors) error
}

// Batch - ответ Pull.
type Batch struct {
	Records []*models.SaveRecord
	// Cursor - позиция удаленной стороны, которую передают в следующий Pull.
	Cursor uint64
}

// PushReport - итог применения отправленных записей на удаленной стороне.
type PushReport struct {
	Rejected  []*errs.Error `json:"rejected,omitempty"`
	Accepted  int           `json:"accepted"`
	Kept      int           `json:"kept"`
	Conflicts int           `json:"conflicts"`
}

// NewPushReport builds the report a receiving side returns for a reconciled push.
func NewPushReport(res *Result) *PushReport {
	report := &PushReport{
		Accepted:  res.Accepted,
		Kept:      res.Kept,
		Conflicts: res.Conflicted,
	}
	for _, err := range res.Rejected {
		report.Rejected = append(report.Rejected, errs.As(err))
	}
	return report
}

// SyncResult - итог одного прохода Sync.
type SyncResult struct {
	Reconcile *Result
	Remote    *PushReport
	Conflicts []*models.ReplicaEntry // Conflicts ожидающие ручного разрешения
	Pulled    int                    // Pulled количество полученных записей
	Pushed    int                    // Pushed количество отправленных записей
	Resolved  int                    // Resolved конфликты, слитые по tie-break
}

// ErrNoTransport is returned by Sync when the engine has no remote side.
var ErrNoTransport = errors.New("sync transport is not configured")

// Sync выполняет полный проход синхронизации:
//  1. Pull изменений удаленной стороны после сохраненного курсора
//  2. Reconcile полученного пакета
//  3. при PolicyTieBreak - слияние всех конфликтов реплики
//  4. Push локальных изменений после push-курсора (кроме только что полученных)
//  5. сохранение обоих курсоров
func (e *Engine) Sync(ctx context.Context) (*SyncResult, error) {
	if e.transport == nil || e.cursors == nil {
		return nil, ErrNoTransport
	}

	ns := e.store.Namespace()
	e.logger.Info("Starting synchronization", "namespace", ns, "device_id", e.store.DeviceID())

	cursors, err := e.cursors.GetCursors(ctx, ns)
	if err != nil {
		return nil, fmt.Errorf("failed to get sync cursors: %w", err)
	}

	batch, err := e.transport.Pull(ctx, ns, cursors.Pull)
	if err != nil {
		return nil, fmt.Errorf("pull failed: %w", err)
	}
	e.logger.Info("Received remote changes", "count", len(batch.Records), "cursor", batch.Cursor)

	res, err := e.Reconcile(ctx, batch.Records)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile remote changes: %w", err)
	}

	result := &SyncResult{Reconcile: res, Pulled: len(batch.Records)}

	if e.policy == PolicyTieBreak {
		resolved, err := e.resolveAll(ctx)
		if err != nil {
			return nil, err
		}
		result.Resolved = resolved
	}

	pulled := make(map[string]struct{}, len(batch.Records))
	for _, r := range batch.Records {
		pulled[versionID(r)] = struct{}{}
	}

	changes, pushSeq, err := e.store.ChangesSince(ctx, cursors.Push)
	if err != nil {
		return nil, err
	}

	outgoing := make([]*models.SaveRecord, 0, len(changes))
	for _, r := range changes {
		if _, ok := pulled[versionID(r)]; ok {
			continue
		}
		outgoing = append(outgoing, r)
	}

	if len(outgoing) > 0 {
		report, err := e.transport.Push(ctx, ns, outgoing)
		if err != nil {
			return nil, fmt.Errorf("push failed: %w", err)
		}
		result.Remote = report
		result.Pushed = len(outgoing)

		for _, rejected := range report.Rejected {
			e.logger.Warn("Remote rejected record", "code", rejected.Code, "error", rejected.Message)
		}
	}

	next := models.SyncCursors{Pull: batch.Cursor, Push: pushSeq, LastSync: e.now().UTC()}
	if next.Pull < cursors.Pull {
		next.Pull = cursors.Pull
	}
	if err := e.cursors.SaveCursors(ctx, ns, next); err != nil {
		return nil, fmt.Errorf("failed to save sync cursors: %w", err)
	}

	result.Conflicts, err = e.store.Conflicts(ctx)
	if err != nil {
		return nil, err
	}

	e.logger.Info("Synchronization completed",
		"namespace", ns,
		"pulled", result.Pulled,
		"pushed", result.Pushed,
		"accepted", res.Accepted,
		"resolved", result.Resolved,
		"conflicts", len(result.Conflicts))

	return result, nil
}

// ResolveByTieBreak сливает конфликт по ключу в пользу победителя tie-break.
// Новая запись получает payload победителя и часы, доминирующие над всеми
// версиями, поэтому расходится на остальные реплики как обычная правка.
func (e *Engine) ResolveByTieBreak(ctx context.Context, key string) (*models.SaveRecord, error) {
	entry, err := e.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !entry.InConflict() {
		return nil, errs.New(errs.CodeConflictUnresolved, "no pending conflict for key %q", key).With("key", key)
	}

	winner := resolver.PickAll(entry.Conflict)
	e.logger.Debug("Tie-break winner",
		"key", key,
		"device_id", winner.DeviceID,
		"clock", winner.Clock.String())

	if winner.Deleted {
		return e.store.Delete(ctx, key)
	}
	return e.store.Commit(ctx, key, winner.Payload)
}

func (e *Engine) resolveAll(ctx context.Context) (int, error) {
	conflicts, err := e.store.Conflicts(ctx)
	if err != nil {
		return 0, err
	}

	for _, entry := range conflicts {
		if _, err := e.ResolveByTieBreak(ctx, entry.Key); err != nil {
			return 0, fmt.Errorf("failed to resolve conflict for key %q: %w", entry.Key, err)
		}
	}
	return len(conflicts), nil
}
