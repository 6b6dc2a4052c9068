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
	"fmt"
	"strings"

	"github.com/lootbox/lootbox-admin/internal/db"
)

const customerListSQL = `
SELECT
    cu.id,
    cu.name,
    cu.surname,
    cu.email,
    cu.phone,
    cu.address,
    cu.created_at,
    ci.name AS city,
    co.name AS country,
    ci.id   AS city_id,
    co.id   AS country_id
FROM customers cu
JOIN cities ci ON ci.id = cu.city_id
JOIN countries co ON co.id = ci.country_id`

var customerDeleteMessages = outcomeMessages{
	entity:    "Customer",
	integrity: "The customer cannot be deleted because it has related records (for example returns or orders).",
	generic:   "Error deleting customer",
}

// CustomerFilter selects customers. Zero values disable a filter.
type CustomerFilter struct {
	// Name matches name or surname as a substring.
	Name string
	// Email matches case-insensitively.
	Email     string
	CountryID *int64
	Page      db.Page
}

// CustomerInput carries the writable customer fields.
type CustomerInput struct {
	Name    string `json:"name" validate:"required"`
	Surname string `json:"surname" validate:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address"`
	CityID  int64  `json:"city_id"`
}

func (in *CustomerInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Surname = strings.TrimSpace(in.Surname)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
}

// Customers is the customer access module.
type Customers struct {
	store Store
}

// List returns one page of customers ordered by id.
func (c *Customers) List(ctx context.Context, f CustomerFilter) []db.Record {
	sql, args := db.Select(customerListSQL).
		ContainsAny(f.Name, "cu.name", "cu.surname").
		EqualFold("cu.email", f.Email).
		Equal("co.id", f.CountryID).
		OrderBy("cu.id ASC").
		Paginate(f.Page).
		Build()
	return c.store.Read(ctx, sql, args...)
}

// Get returns a customer by id.
func (c *Customers) Get(ctx context.Context, id int64) (db.Record, bool) {
	return first(c.store.Read(ctx, `
        SELECT
            cu.id,
            cu.name,
            cu.surname,
            cu.email,
            cu.phone,
            cu.address,
            cu.created_at,
            cu.city_id
        FROM customers cu
        WHERE cu.id = $1`, id))
}

// Create inserts a customer when the referenced city exists and returns
// the new id.
func (c *Customers) Create(ctx context.Context, in CustomerInput) (int64, error) {
	in.normalize()
	if err := validateInput(in); err != nil {
		return 0, err
	}

	records, err := c.store.Query(ctx, `
        INSERT INTO customers (name, surname, email, phone, address, city_id)
        SELECT $1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), ci.id
        FROM cities ci
        WHERE ci.id = $6
        RETURNING id`,
		in.Name, in.Surname, in.Email, in.Phone, in.Address, in.CityID)
	if err != nil {
		return 0, fmt.Errorf("create customer: %w", err)
	}
	if len(records) != 1 {
		return 0, fmt.Errorf("create customer: city %d: %w", in.CityID, ErrNotFound)
	}
	return records[0].Int64("id"), nil
}

// Update overwrites a customer's fields.
func (c *Customers) Update(ctx context.Context, id int64, in CustomerInput) error {
	in.normalize()
	if err := validateInput(in); err != nil {
		return err
	}

	affected, err := c.store.Exec(ctx, `
        UPDATE customers
        SET
            name = $1,
            surname = $2,
            email = NULLIF($3, ''),
            phone = $4,
            address = NULLIF($5, ''),
            city_id = $6
        WHERE id = $7`,
		in.Name, in.Surname, in.Email, in.Phone, in.Address, in.CityID, id)
	if err != nil {
		return fmt.Errorf("update customer %d: %w", id, err)
	}
	if affected != 1 {
		return fmt.Errorf("update customer %d: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes a customer. Customers with orders, returns or other
// dependent rows are refused with the integrity message.
func (c *Customers) Delete(ctx context.Context, id int64) (bool, string) {
	return deleteByID(ctx, c.store, "customers", id, customerDeleteMessages)
}
