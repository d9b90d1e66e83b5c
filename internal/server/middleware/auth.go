package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/medsync/internal/server/handlers"
	"github.com/iudanet/medsync/pkg/api"
)

// AuthMiddleware создает middleware для проверки JWT токена.
// Tenant, пользователь и разрешенные типы сущностей берутся только из токена.
func AuthMiddleware(logger *slog.Logger, jwtConfig handlers.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Извлекаем токен из заголовка Authorization
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("Missing Authorization header", "request_id", GetRequestID(r.Context()))
				writeError(w, logger, http.StatusUnauthorized, api.CodeUnauthorized, "missing token")
				return
			}

			// Ожидаем формат: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Warn("Invalid Authorization header format", "request_id", GetRequestID(r.Context()))
				writeError(w, logger, http.StatusUnauthorized, api.CodeUnauthorized, "invalid token format")
				return
			}

			// Валидируем токен
			claims, err := handlers.ValidateAccessToken(jwtConfig, parts[1])
			if err != nil {
				logger.Warn("Invalid access token",
					"request_id", GetRequestID(r.Context()),
					"error", err)
				writeError(w, logger, http.StatusUnauthorized, api.CodeUnauthorized, "invalid token")
				return
			}

			id := claims.Identity()
			ctx := handlers.WithIdentity(r.Context(), id)

			logger.Debug("Request authenticated",
				"tenant_id", id.TenantID,
				"user_id", id.UserID)

			// Передаем запрос дальше с обновленным контекстом
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
