package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/savesync/internal/engine"
	"github.com/iudanet/savesync/internal/errs"
	"github.com/iudanet/savesync/internal/models"
	"github.com/iudanet/savesync/internal/server/storage"
	"github.com/iudanet/savesync/pkg/api"
)

//go:generate moq -out replicas_mock.go . Replicas

// MaxPushBodySize ограничивает тело POST /records
const MaxPushBodySize = 64 << 20

// Replicas определяет интерфейс серверных реплик
type Replicas interface {
	Pull(ctx context.Context, namespace string, since uint64) ([]*models.SaveRecord, uint64, error)
	Push(ctx context.Context, namespace string, records []*models.SaveRecord) (*engine.PushReport, error)
	Conflicts(ctx context.Context, namespace string) ([]*models.ReplicaEntry, error)
	Namespaces(ctx context.Context) ([]string, error)
}

// SyncHandler handles synchronization requests
type SyncHandler struct {
	logger   *slog.Logger
	replicas Replicas
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(logger *slog.Logger, replicas Replicas) *SyncHandler {
	return &SyncHandler{
		logger:   logger,
		replicas: replicas,
	}
}

// Pull обрабатывает GET /api/v1/namespaces/{namespace}/records?since=N
// Возвращает все версии ключей, измененных после позиции since
func (h *SyncHandler) Pull(w http.ResponseWriter, r *http.Request) {
	namespace := chi.URLParam(r, "namespace")

	var since uint64
	if sinceStr := r.URL.Query().Get("since"); sinceStr != "" {
		var err error
		since, err = strconv.ParseUint(sinceStr, 10, 64)
		if err != nil {
			h.logger.Warn("Invalid since parameter", "since", sinceStr, "error", err)
			writeError(w, h.logger, http.StatusBadRequest, errs.New(errs.CodeInvalidRequest, "invalid since parameter").
				With("since", sinceStr))
			return
		}
	}

	records, cursor, err := h.replicas.Pull(r.Context(), namespace, since)
	if err != nil {
		h.fail(w, "Failed to pull records", namespace, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, api.PullResponse{
		Records: api.FromRecords(records),
		Cursor:  cursor,
	})

	h.logger.Debug("Pull completed", "namespace", namespace, "since", since, "cursor", cursor, "records", len(records))
}

// Push обрабатывает POST /api/v1/namespaces/{namespace}/records
// Битые часы отклоняют весь запрос (400), битый payload - только свою запись
func (h *SyncHandler) Push(w http.ResponseWriter, r *http.Request) {
	namespace := chi.URLParam(r, "namespace")

	var req api.PushRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxPushBodySize)).Decode(&req); err != nil {
		h.logger.Warn("Failed to decode push request", "namespace", namespace, "error", err)
		writeError(w, h.logger, http.StatusBadRequest, errs.Wrap(errs.CodeInvalidRequest, err, "invalid request body"))
		return
	}

	records, err := api.ToRecords(req.Records)
	if err != nil {
		h.fail(w, "Malformed record in push", namespace, err)
		return
	}

	report, err := h.replicas.Push(r.Context(), namespace, records)
	if err != nil {
		h.fail(w, "Failed to push records", namespace, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, api.FromPushReport(report))

	h.logger.Info("Push completed",
		"namespace", namespace,
		"received", len(records),
		"accepted", report.Accepted,
		"kept", report.Kept,
		"conflicts", report.Conflicts,
		"rejected", len(report.Rejected))
}

// Conflicts обрабатывает GET /api/v1/namespaces/{namespace}/conflicts
func (h *SyncHandler) Conflicts(w http.ResponseWriter, r *http.Request) {
	namespace := chi.URLParam(r, "namespace")

	entries, err := h.replicas.Conflicts(r.Context(), namespace)
	if err != nil {
		h.fail(w, "Failed to list conflicts", namespace, err)
		return
	}

	resp := api.ConflictsResponse{Conflicts: make([]api.ReplicaEntry, 0, len(entries))}
	for _, entry := range entries {
		resp.Conflicts = append(resp.Conflicts, api.FromEntry(entry))
	}
	writeJSON(w, h.logger, http.StatusOK, resp)
}

// Namespaces обрабатывает GET /api/v1/namespaces
func (h *SyncHandler) Namespaces(w http.ResponseWriter, r *http.Request) {
	namespaces, err := h.replicas.Namespaces(r.Context())
	if err != nil {
		h.fail(w, "Failed to list namespaces", "", err)
		return
	}
	if namespaces == nil {
		namespaces = []string{}
	}
	writeJSON(w, h.logger, http.StatusOK, api.NamespacesResponse{Namespaces: namespaces})
}

// fail выбирает HTTP статус по ошибке и пишет ответ
func (h *SyncHandler) fail(w http.ResponseWriter, msg, namespace string, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(msg, "namespace", namespace, "error", err)
		// Детали внутренних ошибок клиенту не отдаем
		writeError(w, h.logger, status, errs.New(errs.CodeInternal, "internal server error"))
		return
	}

	h.logger.Warn(msg, "namespace", namespace, "error", err)
	if errors.Is(err, storage.ErrInvalidNamespace) {
		err = errs.Wrap(errs.CodeInvalidRequest, err, "invalid namespace").With("namespace", namespace)
	}
	writeError(w, h.logger, status, errs.As(err))
}

// statusOf maps sync errors onto HTTP status codes
func statusOf(err error) int {
	switch {
	case errors.Is(err, storage.ErrInvalidNamespace):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrMalformedClock), errors.Is(err, errs.ErrCorruptPayload), errors.Is(err, errs.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrUnknownDevice):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrConflictUnresolved):
		return http.StatusConflict
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, err *errs.Error) {
	writeJSON(w, logger, status, api.FromError(err))
}
