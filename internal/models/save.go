package models

import (
	"bytes"
	_ "crypto/sha256" // регистрирует sha256 для go-digest
	"time"

	"github.com/opencontainers/go-digest"

	"github.com/iudanet/savesync/internal/crdt"
	"github.com/iudanet/savesync/internal/errs"
)

// SaveRecord представляет одну версию сохранения для ключа.
// Запись неизменяема после создания: новая правка создает новую запись,
// которая вытесняет (но не модифицирует) предыдущие.
type SaveRecord struct {
	Timestamp time.Time        `json:"timestamp"` // Timestamp локальное время устройства в момент коммита
	Clock     crdt.VectorClock `json:"clock"`     // Clock векторные часы, принадлежат записи
	Key       string           `json:"key"`       // Key ключ слота сохранения (например "slot1")
	DeviceID  string           `json:"device_id"` // DeviceID устройство, создавшее эту версию
	Checksum  digest.Digest    `json:"checksum"`  // Checksum sha256 digest от Payload
	Payload   []byte           `json:"payload"`   // Payload байты сохранения
	Deleted   bool             `json:"deleted"`   // Deleted tombstone (soft delete)
}

// Checksum вычисляет контрольную сумму payload (sha256, 32 байта).
func Checksum(payload []byte) digest.Digest {
	return digest.FromBytes(payload)
}

// NewSaveRecord создает запись локальной правки. Вызывающий обязан уже
// увеличить счетчик своего устройства в clock. Часы и payload копируются,
// контрольная сумма считается по финальному payload.
func NewSaveRecord(key, deviceID string, clock crdt.VectorClock, payload []byte, ts time.Time) *SaveRecord {
	data := make([]byte, len(payload))
	copy(data, payload)

	return &SaveRecord{
		Key:       key,
		DeviceID:  deviceID,
		Clock:     clock.Copy(),
		Checksum:  Checksum(data),
		Payload:   data,
		Timestamp: ts.UTC().Truncate(time.Second),
	}
}

// Verify пересчитывает контрольную сумму по payload и сравнивает с record.Checksum.
// Несовпадение (или неразбираемый digest) - ошибка CORRUPT_PAYLOAD с ключом,
// устройством, ожидаемой и фактической суммой в деталях.
func Verify(record *SaveRecord, payload []byte) error {
	actual := Checksum(payload)

	corrupt := func(reason string) error {
		return errs.New(errs.CodeCorruptPayload, "checksum mismatch for key %q from device %q: %s",
			record.Key, record.DeviceID, reason).
			With("key", record.Key).
			With("device_id", record.DeviceID).
			With("expected", record.Checksum.String()).
			With("actual", actual.String())
	}

	if err := record.Checksum.Validate(); err != nil {
		return corrupt(err.Error())
	}
	if record.Checksum.Algorithm() != digest.Canonical {
		return corrupt("unsupported digest algorithm " + record.Checksum.Algorithm().String())
	}

	verifier := record.Checksum.Verifier()
	if _, err := verifier.Write(payload); err != nil {
		return corrupt(err.Error())
	}
	if !verifier.Verified() {
		return corrupt("digest does not match payload")
	}

	return nil
}

// Verify проверяет запись по ее собственному payload.
func (r *SaveRecord) Verify() error {
	return Verify(r, r.Payload)
}

// SameVersion сообщает, что две записи описывают одну и ту же версию:
// одинаковые часы и одинаковая контрольная сумма. Метаданные (устройство,
// время) не учитываются - это повторная доставка.
func (r *SaveRecord) SameVersion(other *SaveRecord) bool {
	return r.Checksum == other.Checksum && r.Clock.Equal(other.Clock)
}

// Clone создает глубокую копию записи.
func (r *SaveRecord) Clone() *SaveRecord {
	if r == nil {
		return nil
	}

	cp := *r
	cp.Clock = r.Clock.Copy()
	cp.Payload = bytes.Clone(r.Payload)
	return &cp
}
