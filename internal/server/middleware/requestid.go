package middleware

import (
	"context"
	"net/http"

	"github.com/segmentio/ksuid"
)

// RequestIDHeader заголовок для корреляции запросов клиента и логов сервера
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLen ограничивает длину идентификатора, присланного клиентом
const maxRequestIDLen = 64

type requestIDKey struct{}

// RequestID присваивает каждому запросу идентификатор.
// Идентификатор клиента сохраняется, иначе генерируется KSUID (упорядочен по времени).
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = ksuid.New().String()
		}

		w.Header().Set(RequestIDHeader, requestID)

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID возвращает идентификатор запроса или пустую строку
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
