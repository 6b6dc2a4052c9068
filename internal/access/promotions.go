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

	"github.com/shopspring/decimal"

	"github.com/lootbox/lootbox-admin/internal/db"
	"github.com/lootbox/lootbox-admin/internal/logging"
)

const (
	registerLoyaltyRoutine = "sp_register_loyalty_movement"

	// DefaultLoyaltyDescription is used when a movement has no description.
	DefaultLoyaltyDescription = "Manual adjustment"
)

const promotionListSQL = `
SELECT
    p.id,
    p.name,
    p.description,
    p.discount_percent,
    p.starts_at,
    p.ends_at,
    p.active,
    c.name AS category_name
FROM promotions p
LEFT JOIN categories c ON c.id = p.category_id`

var promotionDeleteMessages = outcomeMessages{
	entity:    "Promotion",
	integrity: "The promotion cannot be deleted because other records reference it.",
	generic:   "Error deleting promotion",
}

var loyaltyMessages = outcomeMessages{
	entity:    "Loyalty movement",
	integrity: "Could not register the movement: check that the customer and, if given, the order exist.",
	generic:   "Error registering loyalty movement",
}

// PromotionFilter selects promotions.
type PromotionFilter struct {
	// OnlyActive keeps active promotions whose date range contains today.
	OnlyActive bool
	Page       db.Page
}

// PromotionInput carries the writable promotion fields.
type PromotionInput struct {
	Name            string           `json:"name" validate:"required"`
	Description     string           `json:"description"`
	DiscountPercent *decimal.Decimal `json:"discount_percent" validate:"required"`
	StartsAt        time.Time        `json:"starts_at" validate:"required"`
	EndsAt          time.Time        `json:"ends_at" validate:"required"`
	Active          bool             `json:"active"`
	CategoryID      *int64           `json:"category_id"`
}

// LoyaltyInput carries a loyalty points movement. Points are signed.
type LoyaltyInput struct {
	CustomerID  int64  `json:"customer_id" validate:"required"`
	OrderID     *int64 `json:"order_id"`
	Points      int64  `json:"points" validate:"required"`
	Description string `json:"description"`
}

// Promotions is the promotion access module.
type Promotions struct {
	store Store
}

// List returns promotions, latest start first.
func (p *Promotions) List(ctx context.Context, f PromotionFilter) []db.Record {
	b := db.Select(promotionListSQL)
	if f.OnlyActive {
		b.Where("p.active").Where("CURRENT_DATE BETWEEN p.starts_at AND p.ends_at")
	}
	sql, args := b.OrderBy("p.starts_at DESC, p.id").Paginate(f.Page).Build()
	return p.store.Read(ctx, sql, args...)
}

// Get returns a promotion by id.
func (p *Promotions) Get(ctx context.Context, id int64) (db.Record, bool) {
	return first(p.store.Read(ctx, `
        SELECT id, name, description, discount_percent, starts_at, ends_at, active, category_id
        FROM promotions
        WHERE id = $1`, id))
}

// Create inserts a promotion and returns its id.
func (p *Promotions) Create(ctx context.Context, in PromotionInput) (int64, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return 0, err
	}

	records, err := p.store.Query(ctx, `
        INSERT INTO promotions (name, description, discount_percent, starts_at, ends_at, active, category_id)
        VALUES ($1, NULLIF($2, ''), $3, $4::date, $5::date, $6, $7)
        RETURNING id`,
		in.Name, strings.TrimSpace(in.Description), in.DiscountPercent.String(),
		in.StartsAt.Format(time.DateOnly), in.EndsAt.Format(time.DateOnly), in.Active, in.CategoryID)
	if err != nil {
		return 0, fmt.Errorf("create promotion: %w", err)
	}
	rec, ok := first(records)
	if !ok {
		return 0, fmt.Errorf("create promotion: %w", ErrNotFound)
	}
	return rec.Int64("id"), nil
}

// Update overwrites a promotion's fields.
func (p *Promotions) Update(ctx context.Context, id int64, in PromotionInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return err
	}

	affected, err := p.store.Exec(ctx, `
        UPDATE promotions
        SET
            name = $1,
            description = NULLIF($2, ''),
            discount_percent = $3,
            starts_at = $4::date,
            ends_at = $5::date,
            active = $6,
            category_id = $7
        WHERE id = $8`,
		in.Name, strings.TrimSpace(in.Description), in.DiscountPercent.String(),
		in.StartsAt.Format(time.DateOnly), in.EndsAt.Format(time.DateOnly), in.Active, in.CategoryID, id)
	if err != nil {
		return fmt.Errorf("update promotion %d: %w", id, err)
	}
	if affected != 1 {
		return fmt.Errorf("update promotion %d: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes a promotion.
func (p *Promotions) Delete(ctx context.Context, id int64) (bool, string) {
	return deleteByID(ctx, p.store, "promotions", id, promotionDeleteMessages)
}

// Loyalty is the loyalty points access module.
type Loyalty struct {
	store Store
}

// Movements returns a customer's loyalty movements with order info, newest first.
func (l *Loyalty) Movements(ctx context.Context, customerID int64) []db.Record {
	return l.store.Read(ctx, `
        SELECT
            lm.id,
            lm.moved_at,
            lm.points,
            lm.description,
            lm.order_id,
            o.ordered_at AS order_date,
            o.total      AS order_total
        FROM loyalty_movements lm
        LEFT JOIN orders o ON o.id = lm.order_id
        WHERE lm.customer_id = $1
        ORDER BY lm.moved_at DESC, lm.id DESC`, customerID)
}

// Balance returns the sum of a customer's loyalty points.
func (l *Loyalty) Balance(ctx context.Context, customerID int64) int64 {
	rec, ok := first(l.store.Read(ctx, `
        SELECT COALESCE(SUM(points), 0) AS balance
        FROM loyalty_movements
        WHERE customer_id = $1`, customerID))
	if !ok {
		return 0
	}
	return rec.Int64("balance")
}

// Register records a loyalty movement. A blank description becomes
// DefaultLoyaltyDescription.
func (l *Loyalty) Register(ctx context.Context, in LoyaltyInput) (bool, string) {
	if err := validateInput(in); err != nil {
		return false, err.Error()
	}
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		desc = DefaultLoyaltyDescription
	}

	_, err := l.store.Call(ctx, registerLoyaltyRoutine, in.CustomerID, in.OrderID, in.Points, desc)
	if err != nil {
		logging.Warn().
			Err(err).
			Int64("customer_id", in.CustomerID).
			Int64("points", in.Points).
			Msg("Loyalty movement failed")
		return false, loyaltyMessages.failure(err)
	}
	return true, fmt.Sprintf("Registered %+d points.", in.Points)
}
