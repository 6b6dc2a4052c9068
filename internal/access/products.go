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

	"github.com/shopspring/decimal"

	"github.com/lootbox/lootbox-admin/internal/db"
)

const productListSQL = `
SELECT
    p.id,
    p.name,
    p.price,
    p.created_at,
    c.name AS category_name,
    s.name AS supplier_name
FROM products p
JOIN categories c ON c.id = p.category_id
JOIN suppliers s ON s.id = p.supplier_id`

var productDeleteMessages = outcomeMessages{
	entity:    "Product",
	integrity: "The product cannot be deleted because it appears in orders or inventory movements.",
	generic:   "Error deleting product",
}

// ProductFilter selects products. Zero values disable a filter.
type ProductFilter struct {
	CategoryID   *int64
	CategoryName string
	SupplierID   *int64
	Name         string
	Page         db.Page
}

// ProductInput carries the writable product fields.
type ProductInput struct {
	Name       string           `json:"name" validate:"required"`
	Price      *decimal.Decimal `json:"price" validate:"required"`
	CategoryID int64            `json:"category_id" validate:"required"`
	SupplierID int64            `json:"supplier_id" validate:"required"`
}

// Products is the product access module.
type Products struct {
	store Store
}

// List returns one page of products ordered by id.
func (p *Products) List(ctx context.Context, f ProductFilter) []db.Record {
	sql, args := db.Select(productListSQL).
		Equal("p.category_id", f.CategoryID).
		Contains("c.name", f.CategoryName).
		Equal("p.supplier_id", f.SupplierID).
		Contains("p.name", f.Name).
		OrderBy("p.id").
		Paginate(f.Page).
		Build()
	return p.store.Read(ctx, sql, args...)
}

// Get returns a product by id.
func (p *Products) Get(ctx context.Context, id int64) (db.Record, bool) {
	return first(p.store.Read(ctx, `
        SELECT
            p.id,
            p.name,
            p.price,
            p.created_at,
            p.category_id,
            p.supplier_id
        FROM products p
        WHERE p.id = $1`, id))
}

// Create inserts a product and returns its id.
func (p *Products) Create(ctx context.Context, in ProductInput) (int64, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return 0, err
	}

	records, err := p.store.Query(ctx, `
        INSERT INTO products (name, price, category_id, supplier_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id`,
		in.Name, in.Price.String(), in.CategoryID, in.SupplierID)
	if err != nil {
		return 0, fmt.Errorf("create product: %w", err)
	}
	rec, ok := first(records)
	if !ok {
		return 0, fmt.Errorf("create product: %w", ErrNotFound)
	}
	return rec.Int64("id"), nil
}

// Update overwrites a product's fields.
func (p *Products) Update(ctx context.Context, id int64, in ProductInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return err
	}

	affected, err := p.store.Exec(ctx, `
        UPDATE products
        SET
            name = $1,
            price = $2,
            category_id = $3,
            supplier_id = $4
        WHERE id = $5`,
		in.Name, in.Price.String(), in.CategoryID, in.SupplierID, id)
	if err != nil {
		return fmt.Errorf("update product %d: %w", id, err)
	}
	if affected != 1 {
		return fmt.Errorf("update product %d: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes a product. Products referenced by orders or inventory
// movements are refused with the integrity message.
func (p *Products) Delete(ctx context.Context, id int64) (bool, string) {
	return deleteByID(ctx, p.store, "products", id, productDeleteMessages)
}
