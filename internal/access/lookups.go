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

	"github.com/lootbox/lootbox-admin/internal/db"
)

// Lookups serves the small reference lists used to fill selection inputs.
type Lookups struct {
	store Store
}

// Countries returns every country by name.
func (l *Lookups) Countries(ctx context.Context) []db.Record {
	return l.store.Read(ctx, `SELECT id, name FROM countries ORDER BY name`)
}

// Cities returns cities, optionally of one country.
func (l *Lookups) Cities(ctx context.Context, countryID *int64) []db.Record {
	sql, args := db.Select(`
SELECT ci.id, ci.name, co.id AS country_id, co.name AS country
FROM cities ci
JOIN countries co ON co.id = ci.country_id`).
		Equal("co.id", countryID).
		OrderBy("co.name, ci.name").
		Build()
	return l.store.Read(ctx, sql, args...)
}

// Categories returns every product category.
func (l *Lookups) Categories(ctx context.Context) []db.Record {
	return l.store.Read(ctx, `SELECT id, name, description FROM categories ORDER BY name`)
}

// Suppliers returns every supplier.
func (l *Lookups) Suppliers(ctx context.Context) []db.Record {
	return l.store.Read(ctx, `SELECT id, name, contact, email FROM suppliers ORDER BY name`)
}

// Warehouses returns every warehouse with its city.
func (l *Lookups) Warehouses(ctx context.Context) []db.Record {
	return l.store.Read(ctx, `
        SELECT w.id, w.name, ci.name AS city
        FROM warehouses w
        JOIN cities ci ON ci.id = w.city_id
        ORDER BY w.id`)
}

// Employees returns every employee.
func (l *Lookups) Employees(ctx context.Context) []db.Record {
	return l.store.Read(ctx, `SELECT id, name, surname, role FROM employees ORDER BY id`)
}
