package capi

import (
	"errors"

	"github.com/iudanet/savesync/internal/engine"
	"github.com/iudanet/savesync/internal/errs"
	"github.com/iudanet/savesync/internal/models"
	"github.com/iudanet/savesync/internal/replica"
	"github.com/iudanet/savesync/internal/resolver"
)

// SyncStats - плоский итог Sync
type SyncStats struct {
	Pulled    int32
	Pushed    int32
	Resolved  int32
	Conflicts int32
	Rejected  int32
}

// Commit фиксирует локальную правку key и возвращает новую версию в out.
func (l *Library) Commit(id SessionID, key string, payload []byte, out *CloudSave) Status {
	return l.call(id, func(s *session) error {
		record, err := s.engine.Store().Commit(s.ctx, key, payload)
		if err != nil {
			return internalf(err, "failed to commit %q", key)
		}
		if out != nil {
			*out = exportRecord(s.arena, record)
		}
		return nil
	})
}

// Delete фиксирует tombstone для key.
func (l *Library) Delete(id SessionID, key string, out *CloudSave) Status {
	return l.call(id, func(s *session) error {
		record, err := s.engine.Store().Delete(s.ctx, key)
		if err != nil {
			return notFoundOr(err, key)
		}
		if out != nil {
			*out = exportRecord(s.arena, record)
		}
		return nil
	})
}

// Get возвращает текущую версию key. Во время конфликта текущей версии нет:
// CONFLICT_UNRESOLVED, конкурирующие версии перечисляет Versions.
func (l *Library) Get(id SessionID, key string, out *CloudSave) Status {
	return l.call(id, func(s *session) error {
		entry, err := s.engine.Store().Get(s.ctx, key)
		if err != nil {
			return notFoundOr(err, key)
		}
		if entry.Current == nil {
			return errs.New(errs.CodeConflictUnresolved, "key %q has only conflicting versions", key).
				With("key", key).
				With("versions", len(entry.Conflict))
		}
		if out != nil {
			*out = exportRecord(s.arena, entry.Current)
		}
		return nil
	})
}

// Apply применяет версию, полученную вызывающим от другой реплики.
// outKind получает исход разрешения (resolver.Kind). Отклоненная запись
// возвращает статус ее ошибки (CORRUPT_PAYLOAD, UNKNOWN_DEVICE).
func (l *Library) Apply(id SessionID, in Record, outKind *int32) Status {
	return l.call(id, func(s *session) error {
		record, err := in.toModel()
		if err != nil {
			return err
		}

		outcome, err := s.engine.Store().Apply(s.ctx, record)
		if err != nil {
			return internalf(err, "failed to apply %q", in.Key)
		}
		if outKind != nil {
			*outKind = int32(outcome.Kind)
		}
		if outcome.Kind == resolver.Rejected {
			return outcome.Err
		}
		return nil
	})
}

// ConflictCount возвращает количество ключей в конфликте.
func (l *Library) ConflictCount(id SessionID, out *int32) Status {
	return l.call(id, func(s *session) error {
		conflicts, err := s.engine.Store().Conflicts(s.ctx)
		if err != nil {
			return internalf(err, "failed to list conflicts")
		}
		if out != nil {
			*out = int32(len(conflicts))
		}
		return nil
	})
}

// Versions возвращает конфликтующие версии key в порядке, по которому
// выбирает Resolve. Для ключа без конфликта - одна текущая версия.
func (l *Library) Versions(id SessionID, key string, out *[]CloudSave) Status {
	return l.call(id, func(s *session) error {
		entry, err := s.engine.Store().Get(s.ctx, key)
		if err != nil {
			return notFoundOr(err, key)
		}
		if out == nil {
			return nil
		}
		versions := entry.Versions()
		result := make([]CloudSave, 0, len(versions))
		for _, v := range versions {
			result = append(result, exportRecord(s.arena, v))
		}
		*out = result
		return nil
	})
}

// Resolve закрывает конфликт key выбором версии index (0-based, порядок Versions).
// Без конфликта или с неверным index - CONFLICT_UNRESOLVED, состояние не меняется.
func (l *Library) Resolve(id SessionID, key string, index int32) Status {
	return l.call(id, func(s *session) error {
		entry, err := s.engine.Store().Get(s.ctx, key)
		if err != nil {
			return notFoundOr(err, key)
		}

		var chosen *models.SaveRecord
		if index >= 0 && int(index) < len(entry.Conflict) {
			chosen = entry.Conflict[index]
		}
		if chosen == nil && entry.InConflict() {
			return errs.New(errs.CodeConflictUnresolved, "version %d out of range for key %q", index, key).
				With("key", key).
				With("versions", len(entry.Conflict))
		}
		return s.engine.Store().ResolveConflict(s.ctx, key, chosen)
	})
}

// Sync выполняет проход синхронизации, если библиотека создана с транспортом.
func (l *Library) Sync(id SessionID, out *SyncStats) Status {
	return l.call(id, func(s *session) error {
		result, err := s.engine.Sync(s.ctx)
		if err != nil {
			if errors.Is(err, engine.ErrNoTransport) {
				return errs.Wrap(errs.CodeInvalidRequest, err, "sync is not configured")
			}
			return internalf(err, "sync failed")
		}
		if out != nil {
			*out = SyncStats{
				Pulled:    int32(result.Pulled),
				Pushed:    int32(result.Pushed),
				Resolved:  int32(result.Resolved),
				Conflicts: int32(len(result.Conflicts)),
			}
			if result.Remote != nil {
				out.Rejected = int32(len(result.Remote.Rejected))
			}
		}
		return nil
	})
}

func notFoundOr(err error, key string) error {
	if errors.Is(err, replica.ErrEntryNotFound) {
		return errs.Wrap(errs.CodeInvalidRequest, err, "no save for key %q", key).With("key", key)
	}
	return internalf(err, "failed to load %q", key)
}
