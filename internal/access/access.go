//-------------------------------------------------------------------------
//
// LootBox Admin
//
// Portions copyright (c) 2025 - 2026, LootBox
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package access implements the entity access modules of the admin
// dashboard. Every function is stateless: filters and inputs arrive as
// explicit structs and each call performs its own store round-trips.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/lootbox/lootbox-admin/internal/db"
	"github.com/lootbox/lootbox-admin/internal/logging"
)

// Store is the executor surface used by the access modules.
// *db.Executor satisfies it.
type Store interface {
	Read(ctx context.Context, sql string, args ...any) []db.Record
	Query(ctx context.Context, sql string, args ...any) ([]db.Record, error)
	Execute(ctx context.Context, sql string, args ...any) int64
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
	CallProcedure(ctx context.Context, name string, args ...any) []db.Record
	Call(ctx context.Context, name string, args ...any) ([]db.Record, error)
}

// ErrNotFound is returned when an update or lookup matches no row.
var ErrNotFound = errors.New("record not found")

// Service groups the access modules over one store.
type Service struct {
	Customers  *Customers
	Products   *Products
	Orders     *Orders
	Inventory  *Inventory
	Promotions *Promotions
	Loyalty    *Loyalty
	Audit      *Audit
	Lookups    *Lookups
}

// New wires every access module to store.
func New(store Store) *Service {
	return &Service{
		Customers:  &Customers{store: store},
		Products:   &Products{store: store},
		Orders:     &Orders{store: store},
		Inventory:  &Inventory{store: store},
		Promotions: &Promotions{store: store},
		Loyalty:    &Loyalty{store: store},
		Audit:      &Audit{store: store},
		Lookups:    &Lookups{store: store},
	}
}

// first returns the first record, if any.
func first(records []db.Record) (db.Record, bool) {
	if len(records) == 0 {
		return db.Record{}, false
	}
	return records[0], true
}

// outcomeMessages holds the user-facing texts for an (ok, message) write.
type outcomeMessages struct {
	entity    string
	integrity string
	generic   string
}

// failure maps a write error to its user-facing message.
func (m outcomeMessages) failure(err error) string {
	switch {
	case db.IsIntegrity(err):
		return m.integrity
	default:
		return fmt.Sprintf("%s: %v", m.generic, err)
	}
}

// deleteByID removes one row from table. table is always a package constant.
func deleteByID(ctx context.Context, store Store, table string, id int64, msgs outcomeMessages) (bool, string) {
	affected, err := store.Exec(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		logging.Warn().
			Err(err).
			Str("table", table).
			Int64("id", id).
			Msg("Delete failed")
		return false, msgs.failure(err)
	}
	if affected == 0 {
		return false, fmt.Sprintf("%s %d not found.", msgs.entity, id)
	}
	return true, fmt.Sprintf("%s %d deleted.", msgs.entity, id)
}
