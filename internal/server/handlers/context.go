package handlers

import (
	"context"
	"slices"
)

// contextKey тип для ключей контекста
type contextKey string

// identityKey ключ для хранения Identity в контексте
const identityKey contextKey = "identity"

// Identity is the caller resolved from the access token.
// Empty EntityTypes means every registered type is allowed.
type Identity struct {
	TenantID    string
	UserID      string
	EntityTypes []string
}

// Allows reports whether the caller may sync entityType
func (i Identity) Allows(entityType string) bool {
	if len(i.EntityTypes) == 0 {
		return true
	}
	return slices.Contains(i.EntityTypes, entityType)
}

// WithIdentity сохраняет Identity в контексте запроса
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// GetIdentity извлекает Identity из контекста запроса
func GetIdentity(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
