// Package capi моделирует C-совместимую границу библиотеки на чистом Go.
//
// Каждая операция возвращает целочисленный Status (0 - успех). Подробности
// ошибки лежат в слоте last error той сессии, в которой произошел вызов,
// и читаются как JSON {"code","message","details"}. Строки, выдаваемые
// наружу, живут в арене сессии под хэндлами и освобождаются вызывающим
// через Free; повторное освобождение сообщается, а не игнорируется.
package capi

import (
	"errors"

	"github.com/iudanet/savesync/internal/errs"
)

// Status - код возврата операции границы.
type Status int32

const (
	StatusOK Status = iota
	StatusCorruptPayload
	StatusUnknownDevice
	StatusConflictUnresolved
	StatusMalformedClock
	StatusInvalidRequest
	StatusInvalidHandle
	StatusInternal
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusCorruptPayload:
		return string(errs.CodeCorruptPayload)
	case StatusUnknownDevice:
		return string(errs.CodeUnknownDevice)
	case StatusConflictUnresolved:
		return string(errs.CodeConflictUnresolved)
	case StatusMalformedClock:
		return string(errs.CodeMalformedClock)
	case StatusInvalidRequest:
		return string(errs.CodeInvalidRequest)
	case StatusInvalidHandle:
		return "INVALID_HANDLE"
	default:
		return string(errs.CodeInternal)
	}
}

// statusOf отображает код ошибки в статус
func statusOf(err error) Status {
	if err == nil {
		return StatusOK
	}
	if errors.Is(err, ErrInvalidHandle) {
		return StatusInvalidHandle
	}
	switch errs.CodeOf(err) {
	case errs.CodeCorruptPayload:
		return StatusCorruptPayload
	case errs.CodeUnknownDevice:
		return StatusUnknownDevice
	case errs.CodeConflictUnresolved:
		return StatusConflictUnresolved
	case errs.CodeMalformedClock:
		return StatusMalformedClock
	case errs.CodeInvalidRequest:
		return StatusInvalidRequest
	default:
		return StatusInternal
	}
}
