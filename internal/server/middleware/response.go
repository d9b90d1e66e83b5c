package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/medsync/pkg/api"
)

// writeError пишет ответ с ошибкой в общем конверте API
func writeError(w http.ResponseWriter, logger *slog.Logger, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := api.ErrorResponse{
		Success: false,
		Message: message,
		Error:   code,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("Failed to encode error response", "error", err)
	}
}
