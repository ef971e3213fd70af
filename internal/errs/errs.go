// Package errs содержит типизированные ошибки ядра синхронизации.
//
// Каждая ошибка несет строковый код (удобен для JSON и логов), человекочитаемое
// сообщение и необязательные детали (ключ, устройство, ожидаемая и фактическая
// контрольная сумма). Сравнение через errors.Is работает по коду.
package errs

import (
	"errors"
	"fmt"
)

// Code identifies an error condition of the sync core.
type Code string

const (
	// CodeCorruptPayload - контрольная сумма не совпала с payload, запись отброшена.
	CodeCorruptPayload Code = "CORRUPT_PAYLOAD"

	// CodeUnknownDevice - часы или запись ссылаются на устройство вне allow-list.
	CodeUnknownDevice Code = "UNKNOWN_DEVICE"

	// CodeConflictUnresolved - попытка закрыть конфликт без корректного выбора.
	CodeConflictUnresolved Code = "CONFLICT_UNRESOLVED"

	// CodeMalformedClock - векторные часы не разбираются из wire-представления.
	CodeMalformedClock Code = "MALFORMED_CLOCK"

	// CodeInvalidRequest - аргумент не прошел проверку на границе (HTTP, C API).
	CodeInvalidRequest Code = "INVALID_REQUEST"

	// CodeInternal - все остальное (ошибки хранилища, паники на границе).
	CodeInternal Code = "INTERNAL"
)

// Sentinels for errors.Is checks. Any *Error with the same code matches.
var (
	ErrCorruptPayload     = &Error{Code: CodeCorruptPayload, Message: "corrupt payload"}
	ErrUnknownDevice      = &Error{Code: CodeUnknownDevice, Message: "unknown device"}
	ErrConflictUnresolved = &Error{Code: CodeConflictUnresolved, Message: "conflict unresolved"}
	ErrMalformedClock     = &Error{Code: CodeMalformedClock, Message: "malformed vector clock"}
	ErrInvalidRequest     = &Error{Code: CodeInvalidRequest, Message: "invalid request"}
)

// Error is a coded error with diagnostic details.
type Error struct {
	Err     error          `json:"-"`
	Details map[string]any `json:"details,omitempty"`
	Code    Code           `json:"code"`
	Message string         `json:"message"`
}

// New creates a coded error.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a coded error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: cause}
}

// With returns a copy of e with an extra detail attached.
func (e *Error) With(key string, value any) *Error {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value

	cp := *e
	cp.Details = details
	return &cp
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// CodeOf returns the code of the first *Error in err's chain, CodeInternal otherwise.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// As converts any error into an *Error, wrapping foreign errors as CodeInternal.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(CodeInternal, err, "internal error")
}
