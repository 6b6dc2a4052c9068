//-------------------------------------------------------------------------
//
// LootBox Admin
//
// Portions copyright (c) 2025 - 2026, LootBox
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package api

import (
	"maps"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lootbox/lootbox-admin/internal/access"
	"github.com/lootbox/lootbox-admin/internal/db"
)

type idResponse struct {
	ID int64 `json:"id"`
}

type loyaltyResponse struct {
	CustomerID int64       `json:"customer_id"`
	Balance    int64       `json:"balance"`
	Movements  []db.Record `json:"movements"`
}

type stockResponse struct {
	ProductID   int64 `json:"product_id"`
	WarehouseID int64 `json:"warehouse_id"`
	Stock       int64 `json:"stock"`
}

// Customers

func (h *handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	f := access.CustomerFilter{
		Name:      q.str("name"),
		Email:     q.str("email"),
		CountryID: q.optionalID("country_id"),
		Page:      q.page(),
	}
	if err := q.err(); err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, h.svc.Customers.List(r.Context(), f))
}

func (h *handler) getCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rec, ok := h.svc.Customers.Get(r.Context(), id)
	if !ok {
		writeNotFound(w, "customer")
		return
	}
	writeData(w, http.StatusOK, rec)
}

func (h *handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var in access.CustomerInput
	if err := decodeJSONBody(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	id, err := h.svc.Customers.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, idResponse{ID: id})
}

func (h *handler) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in access.CustomerInput
	if err := decodeJSONBody(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.Customers.Update(r.Context(), id, in); err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, idResponse{ID: id})
}

func (h *handler) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok, message := h.svc.Customers.Delete(r.Context(), id)
	writeOutcome(w, ok, message)
}

func (h *handler) customerLoyalty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, loyaltyResponse{
		CustomerID: id,
		Balance:    h.svc.Loyalty.Balance(r.Context(), id),
		Movements:  h.svc.Loyalty.Movements(r.Context(), id),
	})
}

// Products

func (h *handler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	f := access.ProductFilter{
		CategoryID:   q.optionalID("category_id"),
		CategoryName: q.str("category"),
		SupplierID:   q.optionalID("supplier_id"),
		Name:         q.str("name"),
		Page:         q.page(),
	}
	if err := q.err(); err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, h.svc.Products.List(r.Context(), f))
}

func (h *handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rec, ok := h.svc.Products.Get(r.Context(), id)
	if !ok {
		writeNotFound(w, "product")
		return
	}
	writeData(w, http.StatusOK, rec)
}

func (h *handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var in access.ProductInput
	if err := decodeJSONBody(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	id, err := h.svc.Products.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, idResponse{ID: id})
}

func (h *handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in access.ProductInput
	if err := decodeJSONBody(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.Products.Update(r.Context(), id, in); err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, idResponse{ID: id})
}

func (h *handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok, message := h.svc.Products.Delete(r.Context(), id)
	writeOutcome(w, ok, message)
}

// Orders

func (h *handler) listOrders(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	f := access.OrderFilter{
		CustomerID: q.optionalID("customer_id"),
		Status:     q.str("status"),
		From:       q.date("from"),
		To:         q.date("to"),
		Page:       q.page(),
	}
	if err := q.err(); err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, h.svc.Orders.List(r.Context(), f))
}

func (h *handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	detail, ok := h.svc.Orders.Detail(r.Context(), id)
	if !ok {
		writeNotFound(w, "order")
		return
	}
	writeData(w, http.StatusOK, detail)
}

func (h *handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var in access.OrderInput
	if err := decodeJSONBody(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	ok, message := h.svc.Orders.Create(r.Context(), in)
	writeOutcome(w, ok, message)
}

// Inventory

func (h *handler) listInventory(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	f := access.InventoryFilter{
		ProductID:   q.optionalID("product_id"),
		WarehouseID: q.optionalID("warehouse_id"),
		Page:        q.page(),
	}
	if err := q.err(); err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, h.svc.Inventory.List(r.Context(), f))
}

func (h *handler) inventorySummary(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	page := q.page()
	if err := q.err(); err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, h.svc.Inventory.Summary(r.Context(), page))
}

func (h *handler) stock(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	productID := q.requiredID("product_id")
	warehouseID := q.requiredID("warehouse_id")
	if err := q.err(); err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, stockResponse{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Stock:       h.svc.Inventory.Stock(r.Context(), productID, warehouseID),
	})
}

func (h *handler) registerMovement(w http.ResponseWriter, r *http.Request) {
	var in access.MovementInput
	if err := decodeJSONBody(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	ok, message := h.svc.Inventory.RegisterMovement(r.Context(), in)
	writeOutcome(w, ok, message)
}

// Promotions and loyalty

type promotionRequest struct {
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	StartsAt        string           `json:"starts_at"`
	EndsAt          string           `json:"ends_at"`
	Active          *bool            `json:"active"`
	CategoryID      *int64           `json:"category_id"`
}

// toInput parses the dates. Active defaults to true.
func (p promotionRequest) toInput() (access.PromotionInput, error) {
	fields := map[string]string{}
	startsAt, err := parseDate("starts_at", p.StartsAt)
	if ve, ok := err.(*access.ValidationError); ok {
		maps.Copy(fields, ve.Fields)
	}
	endsAt, err := parseDate("ends_at", p.EndsAt)
	if ve, ok := err.(*access.ValidationError); ok {
		maps.Copy(fields, ve.Fields)
	}
	if len(fields) > 0 {
		return access.PromotionInput{}, &access.ValidationError{Fields: fields}
	}

	active := true
	if p.Active != nil {
		active = *p.Active
	}
	return access.PromotionInput{
		Name:            strings.TrimSpace(p.Name),
		Description:     strings.TrimSpace(p.Description),
		DiscountPercent: p.DiscountPercent,
		StartsAt:        startsAt,
		EndsAt:          endsAt,
		Active:          active,
		CategoryID:      p.CategoryID,
	}, nil
}

func (h *handler) decodePromotion(w http.ResponseWriter, r *http.Request) (access.PromotionInput, error) {
	var req promotionRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		return access.PromotionInput{}, err
	}
	return req.toInput()
}

func (h *handler) listPromotions(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	f := access.PromotionFilter{
		OnlyActive: q.boolean("active"),
		Page:       q.page(),
	}
	if err := q.err(); err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, h.svc.Promotions.List(r.Context(), f))
}

func (h *handler) getPromotion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rec, ok := h.svc.Promotions.Get(r.Context(), id)
	if !ok {
		writeNotFound(w, "promotion")
		return
	}
	writeData(w, http.StatusOK, rec)
}

func (h *handler) createPromotion(w http.ResponseWriter, r *http.Request) {
	in, err := h.decodePromotion(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := h.svc.Promotions.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, idResponse{ID: id})
}

func (h *handler) updatePromotion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	in, err := h.decodePromotion(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.Promotions.Update(r.Context(), id, in); err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, idResponse{ID: id})
}

func (h *handler) deletePromotion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok, message := h.svc.Promotions.Delete(r.Context(), id)
	writeOutcome(w, ok, message)
}

func (h *handler) registerLoyalty(w http.ResponseWriter, r *http.Request) {
	var in access.LoyaltyInput
	if err := decodeJSONBody(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	ok, message := h.svc.Loyalty.Register(r.Context(), in)
	writeOutcome(w, ok, message)
}

// Audit and lookups

func (h *handler) listAudit(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	f := access.AuditFilter{
		Table:     q.str("table"),
		Operation: strings.ToUpper(q.str("operation")),
		User:      q.str("user"),
		From:      q.date("from"),
		To:        q.date("to"),
		Page:      q.page(),
	}
	if err := q.err(); err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, h.svc.Audit.List(r.Context(), f))
}

func (h *handler) countries(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.svc.Lookups.Countries(r.Context()))
}

func (h *handler) cities(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	countryID := q.optionalID("country_id")
	if err := q.err(); err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, h.svc.Lookups.Cities(r.Context(), countryID))
}

func (h *handler) categories(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.svc.Lookups.Categories(r.Context()))
}

func (h *handler) suppliers(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.svc.Lookups.Suppliers(r.Context()))
}

func (h *handler) warehouses(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.svc.Lookups.Warehouses(r.Context()))
}

func (h *handler) employees(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.svc.Lookups.Employees(r.Context()))
}
