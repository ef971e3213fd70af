package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/iudanet/savesync/internal/errs"
	"github.com/iudanet/savesync/pkg/api"
)

// writeError отвечает клиенту в формате api.ErrorResponse
func writeError(w http.ResponseWriter, status int, code errs.Code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Code: string(code), Message: message})
}
