package capi

import (
	"github.com/iudanet/savesync/internal/models"
	"github.com/iudanet/savesync/pkg/api"
)

// CloudSave - плоское представление версии сохранения на границе.
// Строковые поля - хэндлы арены сессии, их освобождает вызывающий.
type CloudSave struct {
	DeviceID    Handle
	Key         Handle
	Checksum    Handle
	VectorClock Handle // JSON-текст часов, например {"A":2,"B":1}
	Payload     Handle
	Timestamp   int64 // Unix seconds
	Deleted     bool
}

// Handles перечисляет все хэндлы записи (для освобождения одним циклом)
func (c CloudSave) Handles() []Handle {
	return []Handle{c.DeviceID, c.Key, c.Checksum, c.VectorClock, c.Payload}
}

// Record - входящая версия от вызывающего. Строки принадлежат вызывающему
// и копируются при вызове.
type Record struct {
	DeviceID    string
	Key         string
	Checksum    string
	VectorClock string
	Payload     []byte
	Timestamp   int64
	Deleted     bool
}

// toModel разбирает часы (MALFORMED_CLOCK); checksum проверяется хранилищем
func (r Record) toModel() (*models.SaveRecord, error) {
	return api.ToRecord(api.SaveRecord{
		DeviceID:    r.DeviceID,
		Key:         r.Key,
		Checksum:    r.Checksum,
		VectorClock: r.VectorClock,
		Payload:     r.Payload,
		Timestamp:   r.Timestamp,
		Deleted:     r.Deleted,
	})
}

func exportRecord(arena *Arena, r *models.SaveRecord) CloudSave {
	w := api.FromRecord(r)
	return CloudSave{
		DeviceID:    arena.Alloc(w.DeviceID),
		Key:         arena.Alloc(w.Key),
		Checksum:    arena.Alloc(w.Checksum),
		VectorClock: arena.Alloc(w.VectorClock),
		Payload:     arena.Alloc(string(w.Payload)),
		Timestamp:   w.Timestamp,
		Deleted:     w.Deleted,
	}
}
