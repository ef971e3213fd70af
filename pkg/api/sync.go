package api

// SaveRecord представляет одну версию сохранения на проводе
type SaveRecord struct {
	DeviceID    string `json:"device_id"`    // устройство, создавшее версию
	Key         string `json:"key"`          // ключ слота сохранения
	Checksum    string `json:"checksum"`     // digest payload, например "sha256:<hex>"
	VectorClock string `json:"vector_clock"` // JSON-текст векторных часов: {"A":1,"B":2}
	Payload     []byte `json:"payload"`      // байты сохранения (base64 в JSON)
	Timestamp   int64  `json:"timestamp"`    // Unix seconds
	Deleted     bool   `json:"deleted"`      // tombstone
}

// PullResponse представляет ответ GET /api/v1/namespaces/{ns}/records?since=N
type PullResponse struct {
	Records []SaveRecord `json:"records"` // версии записей, измененных после since
	Cursor  uint64       `json:"cursor"`  // позиция сервера для следующего запроса
}

// PushRequest представляет тело POST /api/v1/namespaces/{ns}/records
type PushRequest struct {
	Records []SaveRecord `json:"records"`
}

// PushResponse представляет итог применения записей на сервере
type PushResponse struct {
	Rejected  []ErrorResponse `json:"rejected,omitempty"` // отклоненные записи с диагностикой
	Accepted  int             `json:"accepted"`
	Kept      int             `json:"kept"`
	Conflicts int             `json:"conflicts"`
}

// ReplicaEntry представляет ключ с текущей записью и версиями конфликта
type ReplicaEntry struct {
	Current  *SaveRecord  `json:"current,omitempty"`
	Key      string       `json:"key"`
	Conflict []SaveRecord `json:"conflict,omitempty"`
	Seq      uint64       `json:"seq"`
}

// ConflictsResponse представляет ответ GET /api/v1/namespaces/{ns}/conflicts
type ConflictsResponse struct {
	Conflicts []ReplicaEntry `json:"conflicts"`
}

// ErrorResponse представляет ошибку в формате {code, message, details}
type ErrorResponse struct {
	Details map[string]any `json:"details,omitempty"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// NamespacesResponse представляет ответ GET /api/v1/namespaces
type NamespacesResponse struct {
	Namespaces []string `json:"namespaces"`
}
