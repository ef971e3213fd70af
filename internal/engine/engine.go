// Package engine сводит пакеты записей в реплику и синхронизирует реплику
// с удаленной стороной через Transport.
package engine

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/savesync/internal/models"
	"github.com/iudanet/savesync/internal/replica"
	"github.com/iudanet/savesync/internal/resolver"
)

// DefaultWorkers - размер пула по умолчанию.
const DefaultWorkers = 4

// Policy определяет, что делать с конфликтами после синхронизации.
type Policy string

const (
	// PolicyManual оставляет конфликты до явного ResolveConflict.
	PolicyManual Policy = "manual"
	// PolicyTieBreak сразу сливает конфликт: payload победителя tie-break,
	// часы - слияние всех версий, увеличенное для локального устройства.
	PolicyTieBreak Policy = "tiebreak"
)

// ParsePolicy converts a config value into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyManual, "":
		return PolicyManual, nil
	case PolicyTieBreak:
		return PolicyTieBreak, nil
	default:
		return "", fmt.Errorf("unknown conflict policy %q (expected %q or %q)", s, PolicyManual, PolicyTieBreak)
	}
}

// Engine reconciles batches into a replica store.
type Engine struct {
	store     *replica.Store
	transport Transport
	cursors   CursorStore
	logger    *slog.Logger
	now       func() time.Time
	policy    Policy
	workers   int
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers задает размер пула Reconcile.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithPolicy задает политику разрешения конфликтов при Sync.
func WithPolicy(p Policy) Option {
	return func(e *Engine) {
		e.policy = p
	}
}

// WithTransport подключает удаленную сторону для Sync.
func WithTransport(t Transport, cursors CursorStore) Option {
	return func(e *Engine) {
		e.transport = t
		e.cursors = cursors
	}
}

// New creates an engine over store. Without WithTransport only Reconcile is usable.
func New(store *replica.Store, logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:   store,
		logger:  logger,
		now:     time.Now,
		policy:  PolicyManual,
		workers: DefaultWorkers,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Store returns the underlying replica store.
func (e *Engine) Store() *replica.Store {
	return e.store
}

// Result - итог Reconcile одного пакета.
type Result struct {
	// Outcomes в порядке записей пакета.
	Outcomes []resolver.Outcome
	// Conflicts - записи реплики, затронутые пакетом и находящиеся в конфликте
	// после применения всего пакета. Не зависит от порядка записей в пакете.
	Conflicts []*models.ReplicaEntry
	// Push - принятые и конфликтующие входящие записи без повторов.
	Push []*models.SaveRecord
	// Rejected - ошибки отклоненных записей.
	Rejected []error

	Accepted   int
	Kept       int
	Conflicted int
}

// Reconcile применяет пакет к реплике. Записи распределяются по воркерам по
// хешу ключа, поэтому записи одного ключа применяются в порядке пакета, а
// разные ключи - параллельно. При отмене контекста воркеры останавливаются
// между записями; уже примененные записи остаются в реплике.
func (e *Engine) Reconcile(ctx context.Context, batch []*models.SaveRecord) (*Result, error) {
	outcomes := make([]resolver.Outcome, len(batch))

	partitions := make([][]int, e.workers)
	for i, r := range batch {
		if r == nil {
			return nil, fmt.Errorf("batch record %d is nil", i)
		}
		p := partition(r.Key, e.workers)
		partitions[p] = append(partitions[p], i)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, indices := range partitions {
		if len(indices) == 0 {
			continue
		}
		g.Go(func() error {
			for _, i := range indices {
				if err := gctx.Err(); err != nil {
					return err
				}
				out, err := e.store.Apply(gctx, batch[i])
				if err != nil {
					return fmt.Errorf("failed to apply record for key %q: %w", batch[i].Key, err)
				}
				outcomes[i] = out
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		e.logger.Warn("Reconcile interrupted", "namespace", e.store.Namespace(), "error", err)
		return nil, err
	}

	result := &Result{Outcomes: outcomes}
	touched := make(map[string]struct{})
	seen := make(map[string]struct{})

	for _, out := range outcomes {
		switch out.Kind {
		case resolver.AcceptIncoming:
			result.Accepted++
		case resolver.KeepExisting:
			result.Kept++
		case resolver.Conflict:
			result.Conflicted++
		case resolver.Rejected:
			result.Rejected = append(result.Rejected, out.Err)
			continue
		}
		touched[out.Incoming.Key] = struct{}{}

		if out.Kind == resolver.AcceptIncoming || out.Kind == resolver.Conflict {
			id := versionID(out.Incoming)
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				result.Push = append(result.Push, out.Incoming)
			}
		}
	}

	keys := make([]string, 0, len(touched))
	for k := range touched {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		entry, err := e.store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to read entry %q: %w", key, err)
		}
		if entry.InConflict() {
			result.Conflicts = append(result.Conflicts, entry)
		}
	}

	e.logger.Info("Batch reconciled",
		"namespace", e.store.Namespace(),
		"records", len(batch),
		"accepted", result.Accepted,
		"kept", result.Kept,
		"conflicts", len(result.Conflicts),
		"rejected", len(result.Rejected))

	return result, nil
}

func partition(key string, n int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(n))
}

// versionID идентифицирует версию записи: ключ, часы и checksum.
func versionID(r *models.SaveRecord) string {
	return r.Key + "\x00" + r.Clock.String() + "\x00" + r.Checksum.String()
}
