package capi

import (
	"errors"
	"sync"

	"github.com/iudanet/savesync/internal/errs"
)

// ErrInvalidHandle - хэндл не выдавался или уже освобожден
var ErrInvalidHandle = errors.New("invalid handle")

// Handle ссылается на строку, принадлежащую арене. Нулевой хэндл - "NULL".
type Handle uint64

// Arena выдает хэндлы на строки и держит их до явного Free.
// Хэндлы не переиспользуются, поэтому повторный Free распознается.
type Arena struct {
	live map[Handle]string
	next Handle
	mu   sync.Mutex
}

func NewArena() *Arena {
	return &Arena{live: make(map[Handle]string)}
}

// Alloc копирует s в арену и возвращает новый хэндл
func (a *Arena) Alloc(s string) Handle {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.next++
	a.live[a.next] = s
	return a.next
}

// Read возвращает строку по живому хэндлу
func (a *Arena) Read(h Handle) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, ok := a.live[h]
	if !ok {
		return "", a.invalid(h)
	}
	return s, nil
}

// Free освобождает хэндл. Free(0) ничего не делает.
func (a *Arena) Free(h Handle) error {
	if h == 0 {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.live[h]; !ok {
		return a.invalid(h)
	}
	delete(a.live, h)
	return nil
}

// Live - количество неосвобожденных хэндлов
func (a *Arena) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}

// FreeAll освобождает все хэндлы (закрытие сессии)
func (a *Arena) FreeAll() {
	a.mu.Lock()
	defer a.mu.Unlock()
	clear(a.live)
}

// invalid вызывается под a.mu
func (a *Arena) invalid(h Handle) *errs.Error {
	if h != 0 && h <= a.next {
		return errs.Wrap(errs.CodeInvalidRequest, ErrInvalidHandle, "handle %d was already freed", h).
			With("handle", uint64(h)).
			With("reason", "double_free")
	}
	return errs.Wrap(errs.CodeInvalidRequest, ErrInvalidHandle, "handle %d was never allocated", h).
		With("handle", uint64(h)).
		With("reason", "unknown_handle")
}
