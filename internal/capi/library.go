package capi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/iudanet/savesync/internal/engine"
	"github.com/iudanet/savesync/internal/errs"
	"github.com/iudanet/savesync/internal/replica"
	"github.com/iudanet/savesync/internal/validation"
)

// SessionID идентифицирует сессию, открытую NewCloudSave. 0 - "нет сессии".
type SessionID uint64

// Library - точка входа границы: реестр сессий поверх одного хранилища.
type Library struct {
	backend  replica.Backend
	logger   *slog.Logger
	arena    *Arena
	sessions map[SessionID]*session
	deviceID string
	opts     []engine.Option
	lastErr  *errorSlot
	next     SessionID
	mu       sync.Mutex
}

type session struct {
	ctx     context.Context
	cancel  context.CancelFunc
	engine  *engine.Engine
	arena   *Arena
	lastErr *errorSlot
}

// NewLibrary создает библиотеку для устройства deviceID. opts передаются
// движку каждой сессии (например engine.WithTransport для Sync).
func NewLibrary(backend replica.Backend, deviceID string, logger *slog.Logger, opts ...engine.Option) *Library {
	arena := NewArena()
	return &Library{
		backend:  backend,
		logger:   logger,
		arena:    arena,
		sessions: make(map[SessionID]*session),
		deviceID: deviceID,
		opts:     opts,
		lastErr:  newErrorSlot(arena),
	}
}

// NewCloudSave открывает сессию для приложения appID (пространство имен app-<appID>).
func (l *Library) NewCloudSave(appID int64, out *SessionID) Status {
	return l.guard(l.lastErr, func() error {
		if appID <= 0 {
			return errs.New(errs.CodeInvalidRequest, "app id must be positive, got %d", appID).
				With("app_id", appID)
		}
		ns := validation.AppNamespace(appID)

		store := replica.New(l.backend, ns, l.deviceID, l.logger)
		ctx, cancel := context.WithCancel(context.Background())
		arena := NewArena()
		s := &session{
			ctx:     ctx,
			cancel:  cancel,
			engine:  engine.New(store, l.logger, l.opts...),
			arena:   arena,
			lastErr: newErrorSlot(arena),
		}

		l.mu.Lock()
		l.next++
		id := l.next
		l.sessions[id] = s
		l.mu.Unlock()

		l.logger.Debug("Cloud save session opened", "session", uint64(id), "namespace", ns)
		if out != nil {
			*out = id
		}
		return nil
	})
}

// CloseCloudSave закрывает сессию и освобождает все ее хэндлы.
func (l *Library) CloseCloudSave(id SessionID) Status {
	return l.guard(l.lastErr, func() error {
		l.mu.Lock()
		s, ok := l.sessions[id]
		delete(l.sessions, id)
		l.mu.Unlock()

		if !ok {
			return unknownSession(id)
		}
		s.cancel()
		s.arena.FreeAll()
		return nil
	})
}

// LastErrorJSON возвращает хэндл на JSON последней ошибки сессии
// (или ошибок вне сессии при id = 0). Хэндл можно освободить через Free с тем же id;
// иначе его освобождает следующая ошибка, перезаписывающая слот.
func (l *Library) LastErrorJSON(id SessionID) Handle {
	slot := l.lastErr
	if s, ok := l.session(id); ok {
		slot = s.lastErr
	}
	return slot.jsonHandle()
}

// Free освобождает хэндл, выданный сессией id (или библиотекой при id = 0).
// Повторное освобождение возвращает StatusInvalidHandle.
func (l *Library) Free(id SessionID, h Handle) Status {
	if id == 0 {
		return l.guard(l.lastErr, func() error {
			return l.arena.Free(h)
		})
	}
	return l.call(id, func(s *session) error {
		return s.arena.Free(h)
	})
}

// Read копирует строку по хэндлу в out.
func (l *Library) Read(id SessionID, h Handle, out *string) Status {
	read := func(arena *Arena) error {
		str, err := arena.Read(h)
		if err != nil {
			return err
		}
		if out != nil {
			*out = str
		}
		return nil
	}

	if id == 0 {
		return l.guard(l.lastErr, func() error { return read(l.arena) })
	}
	return l.call(id, func(s *session) error { return read(s.arena) })
}

func (l *Library) session(id SessionID) (*session, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.sessions[id]
	return s, ok
}

// call выполняет fn в контексте сессии; ошибка попадает в слот сессии.
func (l *Library) call(id SessionID, fn func(s *session) error) Status {
	s, ok := l.session(id)
	if !ok {
		return l.guard(l.lastErr, func() error { return unknownSession(id) })
	}
	return l.guard(s.lastErr, func() error { return fn(s) })
}

// guard переводит ошибку или панику fn в статус и запоминает ее в slot.
func (l *Library) guard(slot *errorSlot, fn func() error) (status Status) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("Panic recovered at boundary",
				"panic", r,
				"stack", string(debug.Stack()))
			slot.set(errs.New(errs.CodeInternal, "panic: %v", r))
			status = StatusInternal
		}
	}()

	if err := fn(); err != nil {
		slot.set(err)
		return statusOf(err)
	}
	return StatusOK
}

func unknownSession(id SessionID) error {
	return errs.Wrap(errs.CodeInvalidRequest, ErrInvalidHandle, "unknown session %d", id).
		With("session", uint64(id))
}

// internalf оборачивает сбой хранилища, сохраняя коды errs
func internalf(err error, format string, args ...any) error {
	var coded *errs.Error
	if errors.As(err, &coded) {
		return err
	}
	return errs.Wrap(errs.CodeInternal, err, "%s", fmt.Sprintf(format, args...))
}
