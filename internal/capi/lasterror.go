package capi

import (
	"encoding/json"
	"sync"

	"github.com/iudanet/savesync/internal/errs"
	"github.com/iudanet/savesync/pkg/api"
)

// errorSlot хранит не более одной ошибки; новая ошибка перезаписывает старую
// и освобождает JSON прошлой ошибки, выданный через handle.
type errorSlot struct {
	arena  *Arena
	err    *errs.Error
	handle Handle
	mu     sync.Mutex
}

func newErrorSlot(arena *Arena) *errorSlot {
	return &errorSlot{arena: arena}
}

func (s *errorSlot) set(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.err = errs.As(err)
	if s.handle != 0 {
		// вызывающий мог уже освободить хэндл сам
		_ = s.arena.Free(s.handle)
		s.handle = 0
	}
}

// jsonHandle возвращает хэндл на JSON текущей ошибки. Пока хэндл жив,
// повторные вызовы возвращают его же.
func (s *errorSlot) jsonHandle() Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle != 0 {
		if _, err := s.arena.Read(s.handle); err == nil {
			return s.handle
		}
	}
	s.handle = s.arena.Alloc(s.json())
	return s.handle
}

// json сериализует ошибку в {"code","message","details"}; "{}" если ошибок не было.
// Вызывается под s.mu.
func (s *errorSlot) json() string {
	if s.err == nil {
		return "{}"
	}

	data, err := json.Marshal(api.FromError(s.err))
	if err != nil {
		// details с несериализуемыми значениями отбрасываются
		data, _ = json.Marshal(api.ErrorResponse{Code: string(s.err.Code), Message: s.err.Message})
	}
	return string(data)
}
