package models

import "time"

// SyncCursors хранит позиции синхронизации одного пространства имен на клиенте.
type SyncCursors struct {
	LastSync time.Time `json:"last_sync"` // время последней успешной синхронизации
	Pull     uint64    `json:"pull"`      // Seq сервера, до которого изменения уже получены
	Push     uint64    `json:"push"`      // локальный Seq, до которого изменения уже отправлены
}
