package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/iudanet/medsync/pkg/api"
)

// maxBodySize ограничивает тело запроса: 1000 изменений по 1 МБ не пройдут валидацию раньше
const maxBodySize = 64 << 20

// errEmptyBody is returned by decodeJSON for a body-less request
var errEmptyBody = errors.New("request body is empty")

// writeJSON пишет ответ в формате JSON с указанным статусом
func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// respond пишет успешный ответ в общем конверте
func respond[T any](w http.ResponseWriter, logger *slog.Logger, message string, data T) {
	writeJSON(w, logger, http.StatusOK, api.Response[T]{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// writeError пишет ответ с ошибкой
func writeError(w http.ResponseWriter, logger *slog.Logger, status int, code, message string) {
	writeJSON(w, logger, status, api.ErrorResponse{
		Success: false,
		Message: message,
		Error:   code,
	})
}

// decodeJSON читает тело запроса в dst. Неизвестные поля отклоняются.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
