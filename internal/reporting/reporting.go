//-------------------------------------------------------------------------
//
// LootBox Admin
//
// Portions copyright (c) 2025 - 2026, LootBox
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package reporting runs the allow-listed analytic views and the closed
// catalog of analytic queries. It never accepts SQL from callers.
package reporting

import (
	"context"

	"github.com/lootbox/lootbox-admin/internal/db"
	"github.com/lootbox/lootbox-admin/internal/logging"
)

// Reader is the read surface of the executor.
type Reader interface {
	Read(ctx context.Context, sql string, args ...any) []db.Record
}

// Reports runs views and analytic queries.
type Reports struct {
	store Reader
}

// New creates a report runner over store.
func New(store Reader) *Reports {
	return &Reports{store: store}
}

// View returns every row of an allow-listed view. Unknown names are
// rejected before any statement is built.
func (r *Reports) View(ctx context.Context, name string) []db.Record {
	v, ok := LookupView(name)
	if !ok {
		logging.Warn().Str("view", name).Msg("View not allowed")
		return []db.Record{}
	}
	return r.store.Read(ctx, "SELECT * FROM "+v.Name)
}

// Query runs a catalog query by name, or its plan when explain is set.
func (r *Reports) Query(ctx context.Context, name string, explain bool) []db.Record {
	q, ok := LookupQuery(name)
	if !ok {
		logging.Warn().Str("query", name).Msg("Unknown analytic query")
		return []db.Record{}
	}
	return r.store.Read(ctx, Statement(q, explain))
}

// Statement returns the SQL for q, prefixed with EXPLAIN when requested.
func Statement(q QueryDefinition, explain bool) string {
	if explain {
		return "EXPLAIN " + q.SQL
	}
	return q.SQL
}

// Page slices records in memory for display. Bounds follow db.NewPage.
func Page(records []db.Record, page, size int) []db.Record {
	p := db.NewPage(page, size)
	start := p.Offset()
	if start < 0 || start >= len(records) {
		return []db.Record{}
	}
	end := start + min(p.Limit(), len(records)-start)
	return records[start:end]
}

// PageCount returns the number of pages needed for n records.
func PageCount(n, size int) int {
	p := db.NewPage(0, size)
	if n == 0 {
		return 1
	}
	return (n + p.Limit() - 1) / p.Limit()
}
