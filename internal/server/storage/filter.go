package storage

import (
	"strings"

	"github.com/iudanet/medsync/internal/models"
)

// DefaultListLimit применяется, если в фильтре не задан Limit
const DefaultListLimit = 50

// MaxListLimit верхняя граница размера страницы
const MaxListLimit = 500

// Where builds the WHERE clause (without the keyword) and its arguments.
// placeholder returns the bind parameter for the n-th argument, 1-based,
// so the same filter serves both "?" and "$n" dialects.
// Time bounds are compared as unix nanoseconds: From is inclusive, To exclusive.
func (f LedgerFilter) Where(placeholder func(n int) string) (string, []any) {
	var (
		conds []string
		args  []any
	)

	add := func(expr string, arg any) {
		args = append(args, arg)
		conds = append(conds, strings.Replace(expr, "?", placeholder(len(args)), 1))
	}

	add("tenant_id = ?", f.TenantID)

	if f.UserID != nil {
		add("user_id = ?", *f.UserID)
	}
	if f.SessionID != "" {
		add("session_id = ?", f.SessionID)
	}
	if f.SyncType != "" {
		add("sync_type = ?", string(f.SyncType))
	}
	if f.EntityType != "" {
		add("entity_type = ?", f.EntityType)
	}
	if f.EntitySyncID != "" {
		add("entity_sync_id = ?", f.EntitySyncID)
	}
	if f.From != nil {
		add("started_at >= ?", f.From.UnixNano())
	}
	if f.To != nil {
		add("started_at < ?", f.To.UnixNano())
	}
	if f.ExcludeSessions {
		add("entity_type <> ?", models.SessionEntityType)
	}

	if len(f.Statuses) > 0 {
		in := make([]string, 0, len(f.Statuses))
		for _, st := range f.Statuses {
			args = append(args, string(st))
			in = append(in, placeholder(len(args)))
		}
		conds = append(conds, "status IN ("+strings.Join(in, ", ")+")")
	}

	return strings.Join(conds, " AND "), args
}

// Page returns normalized limit and offset.
func (f LedgerFilter) Page() (limit, offset int) {
	limit = f.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	offset = f.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
