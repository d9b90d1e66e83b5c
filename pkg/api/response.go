package api

// Response общий конверт ответов API
// Data отсутствует в ответах с ошибкой
type Response[T any] struct {
	Data    T      `json:"data,omitempty"`
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// ErrorResponse представляет ответ с ошибкой.
// Data заполняется, если часть операции успела выполниться
// (pull в двунаправленной синхронизации при сбое push).
type ErrorResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`         // описание ошибки
	Error   string `json:"error,omitempty"` // машинно-читаемый код
	Success bool   `json:"success"`         // всегда false
}

// Pagination описывает страницу списка
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version,omitempty"`
	Database string `json:"database,omitempty"`
}

// Error codes returned in ErrorResponse.Error
const (
	CodeBadRequest   = "bad_request"
	CodeUnauthorized = "unauthorized"
	CodeForbidden    = "forbidden"
	CodeNotFound     = "not_found"
	CodeConflict     = "conflict"
	CodeRateLimited  = "rate_limited"
	CodeInternal     = "internal_error"
)
