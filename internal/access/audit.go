//-------------------------------------------------------------------------
//
// LootBox Admin
//
// Portions copyright (c) 2025 - 2026, LootBox
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package access

import (
	"context"
	"strings"
	"time"

	"github.com/lootbox/lootbox-admin/internal/db"
)

// AuditOperations lists the operations recorded by the audit triggers.
var AuditOperations = []string{"INSERT", "UPDATE", "DELETE"}

// AuditFilter selects audit entries. Zero values disable a filter.
type AuditFilter struct {
	Table     string
	Operation string
	// User matches the acting user id as a substring of its text form.
	User string
	From *time.Time
	To   *time.Time
	Page db.Page
}

// Audit is the read-only audit log module.
type Audit struct {
	store Store
}

// List returns one page of audit entries, newest first.
func (a *Audit) List(ctx context.Context, f AuditFilter) []db.Record {
	sql, args := db.Select(`
SELECT
    id,
    event_at,
    table_name,
    operation,
    record_id,
    user_id
FROM audit_log`).
		Equal("table_name", strings.TrimSpace(f.Table)).
		Equal("operation", strings.ToUpper(strings.TrimSpace(f.Operation))).
		Contains("user_id::text", f.User).
		DateFrom("event_at", f.From).
		DateTo("event_at", f.To).
		OrderBy("event_at DESC, id DESC").
		Paginate(f.Page).
		Build()
	return a.store.Read(ctx, sql, args...)
}
