// Package replica implements the per-device replica of the save state:
// a key -> latest accepted record table that applies resolver outcomes as
// records arrive.
package replica

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"iter"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/savesync/internal/crdt"
	"github.com/iudanet/savesync/internal/errs"
	"github.com/iudanet/savesync/internal/models"
	"github.com/iudanet/savesync/internal/resolver"
	"github.com/iudanet/savesync/internal/validation"
)

const (
	// lockStripes - число независимых мьютексов; ключи распределяются по хешу.
	lockStripes = 64
	// snapshotPageSize - размер страницы при ленивом обходе хранилища.
	snapshotPageSize = 128
)

// Store - реплика одного пространства имен (приложения) на одном устройстве.
// Apply сериализуется по ключу; разные ключи обрабатываются параллельно.
type Store struct {
	backend   Backend
	logger    *slog.Logger
	allowed   map[string]struct{}
	now       func() time.Time
	namespace string
	deviceID  string
	resolver  resolver.Resolver
	locks     [lockStripes]sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithAllowedDevices включает проверку allow-list: записи от устройств вне
// списка и часы, ссылающиеся на такие устройства, отклоняются с UNKNOWN_DEVICE.
func WithAllowedDevices(deviceIDs ...string) Option {
	return func(s *Store) {
		if len(deviceIDs) == 0 {
			return
		}
		s.allowed = make(map[string]struct{}, len(deviceIDs))
		for _, id := range deviceIDs {
			s.allowed[id] = struct{}{}
		}
	}
}

// WithNow подменяет источник времени для локальных коммитов.
func WithNow(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a replica store for namespace owned by deviceID.
func New(backend Backend, namespace, deviceID string, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		backend:   backend,
		logger:    logger,
		namespace: namespace,
		deviceID:  deviceID,
		resolver:  resolver.New(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Namespace returns the namespace the store operates on.
func (s *Store) Namespace() string {
	return s.namespace
}

// DeviceID returns the local device id.
func (s *Store) DeviceID() string {
	return s.deviceID
}

// Apply проверяет входящую запись, разрешает ее против всех актуальных версий
// ключа и применяет исход:
//   - AcceptIncoming - запись становится текущей, конфликт (если был) снимается;
//   - Conflict - новый frontier сохраняется в слот конфликта, текущей записи нет до разрешения;
//   - KeepExisting, Rejected - хранилище не меняется.
//
// Ошибка возвращается только при сбое хранилища или отмене контекста;
// отклоненная запись - это исход Rejected с заполненным Err.
func (s *Store) Apply(ctx context.Context, incoming *models.SaveRecord) (resolver.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return resolver.Outcome{}, err
	}

	if err := s.validate(incoming); err != nil {
		s.logger.Warn("Record rejected",
			"namespace", s.namespace,
			"key", incoming.Key,
			"device_id", incoming.DeviceID,
			"error", err)
		return resolver.Outcome{Kind: resolver.Rejected, Incoming: incoming, Err: err}, nil
	}

	unlock := s.lock(incoming.Key)
	defer unlock()

	entry, err := s.load(ctx, incoming.Key)
	if err != nil {
		return resolver.Outcome{}, err
	}

	return s.applyLocked(ctx, entry, incoming)
}

// applyLocked выполняет разрешение при удерживаемой блокировке ключа.
func (s *Store) applyLocked(ctx context.Context, entry *models.ReplicaEntry, incoming *models.SaveRecord) (resolver.Outcome, error) {
	var (
		kept     []*models.SaveRecord
		conflict *resolver.Outcome
		dropped  error
	)

	for _, existing := range entry.Versions() {
		out := s.resolver.Resolve(existing, incoming)
		switch out.Kind {
		case resolver.KeepExisting:
			s.logger.Debug("Skipping record (existing dominates or duplicate)",
				"key", incoming.Key,
				"device_id", incoming.DeviceID,
				"incoming_clock", incoming.Clock.String(),
				"existing_clock", existing.Clock.String())
			return out, nil
		case resolver.Rejected:
			return out, nil
		case resolver.Conflict:
			kept = append(kept, existing)
			if conflict == nil {
				conflict = &out
			}
		case resolver.AcceptIncoming:
			if out.Dropped != nil {
				s.logger.Warn("Dropping corrupt stored record",
					"key", existing.Key,
					"device_id", existing.DeviceID,
					"error", out.Dropped)
				dropped = out.Dropped
				if entry.Current == existing {
					entry.Current = nil
				}
			}
		}
	}

	previous := entry.Current
	stored := incoming.Clone()

	var outcome resolver.Outcome
	if len(kept) == 0 {
		entry.Current = stored
		entry.Conflict = nil
		outcome = resolver.Outcome{Kind: resolver.AcceptIncoming, Existing: previous, Incoming: incoming, Dropped: dropped}
	} else {
		frontier := append(kept, stored)
		models.SortVersions(frontier)
		entry.Current = nil
		entry.Conflict = frontier
		outcome = *conflict
		outcome.Dropped = dropped
	}

	seq, err := s.backend.Save(ctx, s.namespace, entry)
	if err != nil {
		return resolver.Outcome{}, fmt.Errorf("failed to save entry %q: %w", entry.Key, err)
	}

	if outcome.Kind == resolver.Conflict {
		s.logger.Info("Conflict detected",
			"key", incoming.Key,
			"device_id", incoming.DeviceID,
			"versions", len(entry.Conflict),
			"seq", seq)
	} else {
		s.logger.Debug("Record accepted",
			"key", incoming.Key,
			"device_id", incoming.DeviceID,
			"clock", incoming.Clock.String(),
			"seq", seq)
	}

	return outcome, nil
}

// ResolveConflict закрывает конфликт по ключу выбором вызывающего.
// chosen должен совпадать с одной из конфликтующих версий (часы и checksum)
// либо нести часы, равные слиянию всех версий или доминирующие его (явный
// merge). Иначе - CONFLICT_UNRESOLVED, состояние не меняется.
func (s *Store) ResolveConflict(ctx context.Context, key string, chosen *models.SaveRecord) error {
	if chosen == nil {
		return errs.New(errs.CodeConflictUnresolved, "no record chosen for key %q", key).With("key", key)
	}
	if chosen.Key != key {
		return errs.New(errs.CodeConflictUnresolved, "chosen record belongs to key %q, not %q", chosen.Key, key).
			With("key", key)
	}
	if err := s.validate(chosen); err != nil {
		return err
	}

	unlock := s.lock(key)
	defer unlock()

	entry, err := s.load(ctx, key)
	if err != nil {
		return err
	}
	if !entry.InConflict() {
		return errs.New(errs.CodeConflictUnresolved, "no pending conflict for key %q", key).With("key", key)
	}

	merged := crdt.NewVectorClock()
	isMember := false
	for _, v := range entry.Conflict {
		merged = merged.Merge(v.Clock)
		if v.SameVersion(chosen) {
			isMember = true
		}
	}

	if !isMember {
		if ord := chosen.Clock.Compare(merged); ord != crdt.Equal && ord != crdt.After {
			return errs.New(errs.CodeConflictUnresolved,
				"chosen record for key %q is neither a conflicting version nor a merge of them", key).
				With("key", key).
				With("chosen_clock", chosen.Clock.String()).
				With("required_clock", merged.String())
		}
	}

	entry.Current = chosen.Clone()
	entry.Conflict = nil

	seq, err := s.backend.Save(ctx, s.namespace, entry)
	if err != nil {
		return fmt.Errorf("failed to save resolved entry %q: %w", key, err)
	}

	s.logger.Info("Conflict resolved",
		"key", key,
		"device_id", chosen.DeviceID,
		"clock", chosen.Clock.String(),
		"seq", seq)

	return nil
}

// Commit создает локальную правку: часы = слияние всех известных версий ключа,
// увеличенное для локального устройства; checksum по финальному payload;
// timestamp - текущее время. Новая запись доминирует над всеми версиями,
// поэтому коммит в конфликтующий ключ является явным слиянием.
func (s *Store) Commit(ctx context.Context, key string, payload []byte) (*models.SaveRecord, error) {
	return s.commit(ctx, key, payload, false)
}

// Delete фиксирует tombstone для ключа.
// Returns ErrEntryNotFound if the key has never been written
func (s *Store) Delete(ctx context.Context, key string) (*models.SaveRecord, error) {
	return s.commit(ctx, key, nil, true)
}

func (s *Store) commit(ctx context.Context, key string, payload []byte, deleted bool) (*models.SaveRecord, error) {
	if err := validation.ValidateKey(key); err != nil {
		return nil, errs.Wrap(errs.CodeInvalidRequest, err, "invalid key")
	}

	unlock := s.lock(key)
	defer unlock()

	entry, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}
	if deleted && len(entry.Versions()) == 0 {
		return nil, ErrEntryNotFound
	}

	clock := crdt.NewVectorClock()
	for _, v := range entry.Versions() {
		clock = clock.Merge(v.Clock)
	}
	clock = clock.Increment(s.deviceID)

	record := models.NewSaveRecord(key, s.deviceID, clock, payload, s.now())
	record.Deleted = deleted

	out, err := s.applyLocked(ctx, entry, record)
	if err != nil {
		return nil, err
	}
	if out.Kind != resolver.AcceptIncoming {
		return nil, fmt.Errorf("local commit for key %q was not accepted: %s", key, out.Kind)
	}

	return record.Clone(), nil
}

// Get returns the replica entry for key.
// Returns ErrEntryNotFound if the key has never been written
func (s *Store) Get(ctx context.Context, key string) (*models.ReplicaEntry, error) {
	entry, err := s.backend.Load(ctx, s.namespace, key)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Entries лениво обходит все записи реплики страницами по ключу.
// Последовательность перезапускаема: каждый range читает хранилище заново.
func (s *Store) Entries(ctx context.Context) iter.Seq2[*models.ReplicaEntry, error] {
	return func(yield func(*models.ReplicaEntry, error) bool) {
		after := ""
		for {
			page, err := s.backend.Scan(ctx, s.namespace, after, snapshotPageSize)
			if err != nil {
				yield(nil, fmt.Errorf("failed to scan entries: %w", err))
				return
			}
			for _, entry := range page {
				if !yield(entry, nil) {
					return
				}
			}
			if len(page) < snapshotPageSize {
				return
			}
			after = page[len(page)-1].Key
		}
	}
}

// Snapshot лениво перечисляет все текущие записи для исходящей синхронизации:
// текущую запись каждого ключа или все версии конфликтующего ключа.
func (s *Store) Snapshot(ctx context.Context) iter.Seq2[*models.SaveRecord, error] {
	return func(yield func(*models.SaveRecord, error) bool) {
		for entry, err := range s.Entries(ctx) {
			if err != nil {
				yield(nil, err)
				return
			}
			for _, r := range entry.Versions() {
				if !yield(r, nil) {
					return
				}
			}
		}
	}
}

// Conflicts returns all entries with a pending conflict, ordered by key.
func (s *Store) Conflicts(ctx context.Context) ([]*models.ReplicaEntry, error) {
	var result []*models.ReplicaEntry
	for entry, err := range s.Entries(ctx) {
		if err != nil {
			return nil, err
		}
		if entry.InConflict() {
			result = append(result, entry)
		}
	}
	return result, nil
}

// ChangesSince returns the versions of every entry changed after seq and the
// highest sequence seen (seq itself when nothing changed).
func (s *Store) ChangesSince(ctx context.Context, seq uint64) ([]*models.SaveRecord, uint64, error) {
	entries, err := s.backend.ChangedSince(ctx, s.namespace, seq)
	if err != nil {
		return nil, seq, fmt.Errorf("failed to get changes since %d: %w", seq, err)
	}

	records := make([]*models.SaveRecord, 0, len(entries))
	maxSeq := seq
	for _, entry := range entries {
		records = append(records, entry.Versions()...)
		if entry.Seq > maxSeq {
			maxSeq = entry.Seq
		}
	}
	return records, maxSeq, nil
}

// validate проверяет контрольную сумму и allow-list устройств.
func (s *Store) validate(record *models.SaveRecord) error {
	if record == nil {
		return fmt.Errorf("record cannot be nil")
	}
	if err := record.Verify(); err != nil {
		return err
	}
	if s.allowed == nil {
		return nil
	}

	if _, ok := s.allowed[record.DeviceID]; !ok {
		return errs.New(errs.CodeUnknownDevice, "device %q is not allowed", record.DeviceID).
			With("key", record.Key).
			With("device_id", record.DeviceID)
	}
	for deviceID := range record.Clock {
		if _, ok := s.allowed[deviceID]; !ok {
			return errs.New(errs.CodeUnknownDevice, "clock references unknown device %q", deviceID).
				With("key", record.Key).
				With("device_id", record.DeviceID).
				With("clock", record.Clock.String())
		}
	}
	return nil
}

func (s *Store) load(ctx context.Context, key string) (*models.ReplicaEntry, error) {
	entry, err := s.backend.Load(ctx, s.namespace, key)
	if errors.Is(err, ErrEntryNotFound) {
		return &models.ReplicaEntry{Key: key}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load entry %q: %w", key, err)
	}
	return entry, nil
}

func (s *Store) lock(key string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	mu := &s.locks[h.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock
}
