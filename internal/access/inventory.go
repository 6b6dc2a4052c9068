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
	"github.com/lootbox/lootbox-admin/internal/logging"
)

// Movement directions.
const (
	DirectionIn  = "IN"
	DirectionOut = "OUT"
)

const (
	stockRoutine            = "sp_product_warehouse_stock"
	registerMovementRoutine = "sp_register_inventory_movement"
)

// Stock is never shown as negative.
const inventoryViewSQL = `
SELECT
    product_id,
    product_name,
    warehouse_id,
    warehouse_name,
    GREATEST(stock, 0) AS stock
FROM vw_product_warehouse_inventory`

var movementMessages = outcomeMessages{
	entity:    "Inventory movement",
	integrity: "Could not register the movement: check that the product, warehouse and employee exist.",
	generic:   "Error registering inventory movement",
}

// InventoryFilter selects rows of the stock view.
type InventoryFilter struct {
	ProductID   *int64
	WarehouseID *int64
	Page        db.Page
}

// MovementInput carries an inventory movement.
type MovementInput struct {
	ProductID   int64  `json:"product_id" validate:"required"`
	WarehouseID int64  `json:"warehouse_id" validate:"required"`
	EmployeeID  int64  `json:"employee_id" validate:"required"`
	Quantity    int64  `json:"quantity" validate:"required"`
	Direction   string `json:"direction" validate:"required,oneof=IN OUT"`
}

// Inventory is the stock access module.
type Inventory struct {
	store Store
}

// List returns one page of per product and warehouse stock ordered by
// product and warehouse name.
func (i *Inventory) List(ctx context.Context, f InventoryFilter) []db.Record {
	sql, args := db.Select(inventoryViewSQL).
		Equal("product_id", f.ProductID).
		Equal("warehouse_id", f.WarehouseID).
		OrderBy("product_name, warehouse_name").
		Paginate(f.Page).
		Build()
	return i.store.Read(ctx, sql, args...)
}

// Summary returns one page of stock ordered by product and warehouse id.
func (i *Inventory) Summary(ctx context.Context, page db.Page) []db.Record {
	sql, args := db.Select(inventoryViewSQL).
		OrderBy("product_id, warehouse_id").
		Paginate(page).
		Build()
	return i.store.Read(ctx, sql, args...)
}

// Stock returns the current stock of a product in a warehouse. Missing
// rows, values that are not integers and negative stock all yield 0.
func (i *Inventory) Stock(ctx context.Context, productID, warehouseID int64) int64 {
	rec, ok := first(i.store.CallProcedure(ctx, stockRoutine, productID, warehouseID))
	if !ok || rec.Len() == 0 {
		return 0
	}
	return ClampStock(db.ToInt64(rec.Values()[0]))
}

// ClampStock floors stock at zero.
func ClampStock(n int64) int64 {
	return max(n, 0)
}

// RegisterMovement records stock entering or leaving a warehouse.
func (i *Inventory) RegisterMovement(ctx context.Context, in MovementInput) (bool, string) {
	in.Direction = strings.ToUpper(strings.TrimSpace(in.Direction))
	if err := validateInput(in); err != nil {
		return false, err.Error()
	}

	_, err := i.store.Call(ctx, registerMovementRoutine,
		in.ProductID, in.WarehouseID, in.EmployeeID, in.Quantity, in.Direction)
	if err != nil {
		logging.Warn().
			Err(err).
			Int64("product_id", in.ProductID).
			Int64("warehouse_id", in.WarehouseID).
			Str("direction", in.Direction).
			Msg("Inventory movement failed")
		return false, movementMessages.failure(err)
	}
	return true, fmt.Sprintf("Registered %s movement of %d units.", in.Direction, in.Quantity)
}
