package errs

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_With(t *testing.T) {
	base := New(CodeCorruptPayload, "checksum mismatch").With("key", "slot1")
	derived := base.With("device", "device-b")

	assert.Equal(t, map[string]any{"key": "slot1"}, base.Details, "original details untouched")
	assert.Equal(t, map[string]any{"key": "slot1", "device": "device-b"}, derived.Details)
	assert.Equal(t, base.Code, derived.Code)
	assert.Equal(t, base.Message, derived.Message)

	overwritten := derived.With("key", "slot2")
	assert.Equal(t, "slot1", derived.Details["key"])
	assert.Equal(t, "slot2", overwritten.Details["key"])

	// сентинелы тоже не мутируются
	_ = ErrUnknownDevice.With("device", "x")
	assert.Nil(t, ErrUnknownDevice.Details)
}

func TestError_Is(t *testing.T) {
	tests := []struct {
		err    error
		target error
		name   string
		want   bool
	}{
		{
			name:   "same code different message",
			err:    New(CodeCorruptPayload, "checksum mismatch for %q", "slot1"),
			target: ErrCorruptPayload,
			want:   true,
		},
		{
			name:   "different code",
			err:    New(CodeCorruptPayload, "checksum mismatch"),
			target: ErrUnknownDevice,
			want:   false,
		},
		{
			name:   "wrapped by fmt",
			err:    fmt.Errorf("apply: %w", New(CodeMalformedClock, "bad clock").With("raw", "{")),
			target: ErrMalformedClock,
			want:   true,
		},
		{
			name:   "cause is reachable",
			err:    Wrap(CodeInternal, io.ErrUnexpectedEOF, "read failed"),
			target: io.ErrUnexpectedEOF,
			want:   true,
		},
		{
			name:   "foreign error",
			err:    io.EOF,
			target: ErrInvalidRequest,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want Code
	}{
		{name: "coded", err: ErrConflictUnresolved, want: CodeConflictUnresolved},
		{name: "wrapped twice", err: fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", ErrUnknownDevice)), want: CodeUnknownDevice},
		{name: "outermost code wins", err: Wrap(CodeInvalidRequest, ErrCorruptPayload, "bad input"), want: CodeInvalidRequest},
		{name: "foreign", err: io.EOF, want: CodeInternal},
		{name: "nil", err: nil, want: CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestAs(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, As(nil))
	})

	t.Run("coded in chain", func(t *testing.T) {
		inner := New(CodeUnknownDevice, "device %q not allowed", "device-x").With("device", "device-x")
		got := As(fmt.Errorf("apply: %w", inner))
		assert.Same(t, inner, got)
	})

	t.Run("foreign", func(t *testing.T) {
		got := As(io.ErrClosedPipe)
		require.NotNil(t, got)
		assert.Equal(t, CodeInternal, got.Code)
		assert.ErrorIs(t, got, io.ErrClosedPipe)
		assert.Equal(t, "INTERNAL: internal error: io: read/write on closed pipe", got.Error())
	})
}

func TestError_Error(t *testing.T) {
	assert.Equal(t, "MALFORMED_CLOCK: bad clock", New(CodeMalformedClock, "bad clock").Error())
	assert.Equal(t, "INTERNAL: load failed: EOF", Wrap(CodeInternal, io.EOF, "load failed").Error())
	assert.Nil(t, New(CodeInternal, "x").Unwrap())
}
