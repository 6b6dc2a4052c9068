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
	"time"

	"github.com/lootbox/lootbox-admin/internal/db"
	"github.com/lootbox/lootbox-admin/internal/logging"
)

// Order statuses.
const (
	OrderPending   = "pending"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderReturned  = "returned"
)

// OrderStatuses lists the valid order statuses.
var OrderStatuses = []string{OrderPending, OrderShipped, OrderDelivered, OrderReturned}

const createOrderRoutine = "sp_create_simple_order"

const orderListSQL = `
SELECT
    o.id,
    o.ordered_at,
    o.status,
    o.total,
    c.name    AS customer_name,
    c.surname AS customer_surname,
    pay.method AS payment_method,
    s.status  AS shipment_status
FROM orders o
JOIN customers c ON c.id = o.customer_id
JOIN payments pay ON pay.id = o.payment_id
JOIN shipments s ON s.id = o.shipment_id`

var orderCreateMessages = outcomeMessages{
	entity:    "Order",
	integrity: "Could not create the order: check that the customer, product, employee and warehouse exist.",
	generic:   "Error creating the order",
}

// OrderFilter selects orders. Date bounds compare calendar days inclusively.
type OrderFilter struct {
	CustomerID *int64
	Status     string
	From       *time.Time
	To         *time.Time
	Page       db.Page
}

// OrderInput carries the arguments of a single-product order.
type OrderInput struct {
	CustomerID  int64 `json:"customer_id" validate:"required"`
	ProductID   int64 `json:"product_id" validate:"required"`
	Quantity    int64 `json:"quantity" validate:"required"`
	EmployeeID  int64 `json:"employee_id" validate:"required"`
	WarehouseID int64 `json:"warehouse_id" validate:"required"`
}

// OrderDetail is an order header with its items and returns.
type OrderDetail struct {
	Order   db.Record   `json:"order"`
	Items   []db.Record `json:"items"`
	Returns []db.Record `json:"returns"`
}

// Orders is the order access module.
type Orders struct {
	store Store
}

// List returns one page of orders, newest first.
func (o *Orders) List(ctx context.Context, f OrderFilter) []db.Record {
	sql, args := db.Select(orderListSQL).
		Equal("o.customer_id", f.CustomerID).
		Equal("o.status", strings.TrimSpace(f.Status)).
		DateFrom("o.ordered_at", f.From).
		DateTo("o.ordered_at", f.To).
		OrderBy("o.ordered_at DESC, o.id DESC").
		Paginate(f.Page).
		Build()
	return o.store.Read(ctx, sql, args...)
}

// Detail returns the order header, its items with subtotals and any
// returns. found is false when the order does not exist.
func (o *Orders) Detail(ctx context.Context, id int64) (detail OrderDetail, found bool) {
	header, found := first(o.store.Read(ctx, `
        SELECT
            o.id,
            o.ordered_at,
            o.status,
            o.total,
            c.name         AS customer_name,
            c.surname      AS customer_surname,
            c.email        AS customer_email,
            pay.method     AS payment_method,
            pay.paid_at    AS paid_at,
            s.shipped_at   AS shipped_at,
            s.delivered_at AS delivered_at,
            s.status       AS shipment_status
        FROM orders o
        JOIN customers c ON c.id = o.customer_id
        JOIN payments pay ON pay.id = o.payment_id
        JOIN shipments s ON s.id = o.shipment_id
        WHERE o.id = $1`, id))
	if !found {
		return OrderDetail{Items: []db.Record{}, Returns: []db.Record{}}, false
	}

	items := o.store.Read(ctx, `
        SELECT
            oi.product_id,
            p.name AS product_name,
            oi.quantity,
            oi.unit_price,
            (oi.quantity * oi.unit_price) AS subtotal,
            oi.return_id
        FROM order_items oi
        JOIN products p ON p.id = oi.product_id
        WHERE oi.order_id = $1
        ORDER BY oi.id`, id)

	returns := o.store.Read(ctx, `
        SELECT
            r.id,
            r.reason,
            r.returned_at,
            r.refund_amount
        FROM returns r
        WHERE r.order_id = $1
        ORDER BY r.returned_at`, id)

	return OrderDetail{Order: header, Items: items, Returns: returns}, true
}

// Create places a single-product order through the stored routine, which
// writes the payment, shipment, order, item and stock movement together.
func (o *Orders) Create(ctx context.Context, in OrderInput) (bool, string) {
	if err := validateInput(in); err != nil {
		return false, err.Error()
	}

	records, err := o.store.Call(ctx, createOrderRoutine,
		in.CustomerID, in.ProductID, in.Quantity, in.EmployeeID, in.WarehouseID)
	if err != nil {
		logging.Warn().
			Err(err).
			Int64("customer_id", in.CustomerID).
			Int64("product_id", in.ProductID).
			Msg("Order creation failed")
		return false, orderCreateMessages.failure(err)
	}

	if rec, ok := first(records); ok {
		return true, fmt.Sprintf("Order %d created.", rec.Int64("order_id"))
	}
	return true, "Order created."
}
