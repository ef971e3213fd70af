// Package resolver решает, какая из версий сохранения побеждает.
//
// Resolver не хранит состояния и не удерживает ссылок на переданные записи:
// это чистые синхронные вычисления, безопасные для вызова из любой горутины.
package resolver

import (
	"fmt"

	"github.com/iudanet/savesync/internal/crdt"
	"github.com/iudanet/savesync/internal/models"
)

// Kind - вариант исхода разрешения.
type Kind int

const (
	// AcceptIncoming - входящая запись причинно доминирует или существующей нет.
	AcceptIncoming Kind = iota
	// KeepExisting - существующая запись доминирует, либо это повторная доставка.
	KeepExisting
	// Conflict - истории несравнимы, нужен выбор (ручной или tie-break).
	Conflict
	// Rejected - входящая запись не прошла проверку контрольной суммы.
	Rejected
)

func (k Kind) String() string {
	switch k {
	case AcceptIncoming:
		return "accept_incoming"
	case KeepExisting:
		return "keep_existing"
	case Conflict:
		return "conflict"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Outcome - результат Resolve.
type Outcome struct {
	Existing *models.SaveRecord
	Incoming *models.SaveRecord
	// Err - причина Rejected (CORRUPT_PAYLOAD или UNKNOWN_DEVICE).
	Err error
	// Dropped - ошибка проверки существующей записи, которая была отброшена
	// в пользу корректной входящей. Сообщается, а не проглатывается.
	Dropped error
	Kind    Kind
}

// Pick возвращает запись, которую выбирает детерминированный tie-break.
// Для не-конфликтных исходов возвращается запись, которая и так побеждает.
func (o Outcome) Pick() *models.SaveRecord {
	switch o.Kind {
	case AcceptIncoming:
		return o.Incoming
	case KeepExisting:
		return o.Existing
	case Conflict:
		return TieBreak(o.Existing, o.Incoming)
	default:
		return nil
	}
}

// Resolver применяет модель причинности к паре записей одного ключа.
type Resolver struct{}

// New создает Resolver.
func New() Resolver {
	return Resolver{}
}

// Resolve сравнивает существующую (может быть nil) и входящую записи.
//
// Правила:
//  1. Поврежденная входящая запись - Rejected, сравнение не выполняется.
//  2. Существующей нет или она повреждена - AcceptIncoming.
//  3. existing Before incoming - AcceptIncoming; After - KeepExisting.
//  4. Equal и одинаковый checksum - KeepExisting (повторная доставка).
//  5. Equal с разным checksum или Concurrent - Conflict.
func (Resolver) Resolve(existing, incoming *models.SaveRecord) Outcome {
	out := Outcome{Existing: existing, Incoming: incoming}

	if err := incoming.Verify(); err != nil {
		out.Kind = Rejected
		out.Err = err
		return out
	}

	if existing == nil {
		out.Kind = AcceptIncoming
		return out
	}
	if err := existing.Verify(); err != nil {
		out.Kind = AcceptIncoming
		out.Dropped = err
		return out
	}

	switch existing.Clock.Compare(incoming.Clock) {
	case crdt.Before:
		out.Kind = AcceptIncoming
	case crdt.After:
		out.Kind = KeepExisting
	case crdt.Equal:
		if existing.Checksum == incoming.Checksum {
			out.Kind = KeepExisting
		} else {
			// одна и та же история, но разное содержимое
			out.Kind = Conflict
		}
	default:
		out.Kind = Conflict
	}

	return out
}

// TieBreak детерминированно выбирает одну из двух записей: больший Timestamp,
// при равенстве - лексикографически больший DeviceID, затем больший Checksum.
// Порядок тотальный и одинаков на всех репликах.
func TieBreak(a, b *models.SaveRecord) *models.SaveRecord {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}

	if !a.Timestamp.Equal(b.Timestamp) {
		if a.Timestamp.After(b.Timestamp) {
			return a
		}
		return b
	}
	if a.DeviceID != b.DeviceID {
		if a.DeviceID > b.DeviceID {
			return a
		}
		return b
	}
	if b.Checksum > a.Checksum {
		return b
	}
	return a
}

// PickAll применяет TieBreak ко всем записям.
func PickAll(records []*models.SaveRecord) *models.SaveRecord {
	var winner *models.SaveRecord
	for _, r := range records {
		winner = TieBreak(winner, r)
	}
	return winner
}
