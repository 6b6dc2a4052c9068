//-------------------------------------------------------------------------
//
// LootBox Admin
//
// Portions copyright (c) 2025 - 2026, LootBox
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package seed generates the synthetic LootBox dataset and bulk loads it.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/lootbox/lootbox-admin/internal/datagen"
	"github.com/lootbox/lootbox-admin/internal/logging"
)

// DateWindowDays is how far back generated dates reach.
const DateWindowDays = 365

// MaxItemsPerOrder bounds the distinct products on one order.
const MaxItemsPerOrder = 5

// Counts holds the number of rows generated per entity.
type Counts struct {
	Suppliers          int
	Products           int
	Customers          int
	Employees          int
	Warehouses         int
	InventoryMovements int
	Shipments          int
	Payments           int
	Orders             int
	Returns            int
	Promotions         int
	LoyaltyMovements   int
}

// DefaultCounts returns the row counts at scale 1.0.
func DefaultCounts() Counts {
	return Counts{
		Suppliers:          50,
		Products:           2000,
		Customers:          500,
		Employees:          10,
		Warehouses:         5,
		InventoryMovements: 2000,
		Shipments:          2000,
		Payments:           3000,
		Orders:             5000,
		Returns:            600,
		Promotions:         10,
		LoyaltyMovements:   200,
	}
}

// Scale multiplies every count by scale, keeping at least one row each.
// Countries, cities and categories are fixed reference data.
func (c Counts) Scale(scale float64) Counts {
	return Counts{
		Suppliers:          datagen.ScaleCount(c.Suppliers, scale),
		Products:           datagen.ScaleCount(c.Products, scale),
		Customers:          datagen.ScaleCount(c.Customers, scale),
		Employees:          datagen.ScaleCount(c.Employees, scale),
		Warehouses:         datagen.ScaleCount(c.Warehouses, scale),
		InventoryMovements: datagen.ScaleCount(c.InventoryMovements, scale),
		Shipments:          datagen.ScaleCount(c.Shipments, scale),
		Payments:           datagen.ScaleCount(c.Payments, scale),
		Orders:             datagen.ScaleCount(c.Orders, scale),
		Returns:            datagen.ScaleCount(c.Returns, scale),
		Promotions:         datagen.ScaleCount(c.Promotions, scale),
		LoyaltyMovements:   datagen.ScaleCount(c.LoyaltyMovements, scale),
	}
}

// Options configures a seeding run.
type Options struct {
	// Seed fixes the random sequence.
	Seed uint64

	// Scale multiplies the default counts.
	Scale float64

	// Now anchors generated dates. Zero means the current time.
	Now time.Time

	// PasswordCost is the bcrypt cost of seeded accounts.
	PasswordCost int

	// Batch controls COPY batching.
	Batch datagen.BatchInsertConfig
}

func (o Options) withDefaults() Options {
	if o.Scale <= 0 {
		o.Scale = 1.0
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	if o.PasswordCost == 0 {
		o.PasswordCost = bcrypt.MinCost
	}
	if o.Batch.BatchSize == 0 {
		o.Batch = datagen.DefaultBatchConfig()
	}
	return o
}

// Dataset is the generated data, tables in load order.
type Dataset struct {
	Counts Counts
	Tables []*datagen.Table
}

// Table returns the named table or nil.
func (d *Dataset) Table(name string) *datagen.Table {
	for _, t := range d.Tables {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Rows returns the total row count.
func (d *Dataset) Rows() int {
	n := 0
	for _, t := range d.Tables {
		n += t.Len()
	}
	return n
}

// Loader is the write surface used to load a dataset.
type Loader interface {
	datagen.Copier
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Seeder builds and loads a dataset.
type Seeder struct {
	opts Options
}

// New creates a seeder.
func New(opts Options) *Seeder {
	return &Seeder{opts: opts.withDefaults()}
}

// Generate builds the dataset and loads it into dst.
func (s *Seeder) Generate(ctx context.Context, dst Loader) (*Dataset, error) {
	ds, err := Build(s.opts)
	if err != nil {
		return nil, err
	}

	logging.Info().
		Uint64("seed", s.opts.Seed).
		Float64("scale", s.opts.Scale).
		Int("rows", ds.Rows()).
		Msg("Loading seed data")

	if err := Load(ctx, dst, ds, s.opts.Batch); err != nil {
		return nil, err
	}
	return ds, nil
}

// Load copies every table and then moves each id sequence past the
// explicit ids written.
func Load(ctx context.Context, dst Loader, ds *Dataset, cfg datagen.BatchInsertConfig) error {
	for _, t := range ds.Tables {
		if err := datagen.CopyTable(ctx, dst, t, cfg); err != nil {
			return err
		}
	}

	b := &pgx.Batch{}
	for _, t := range ds.Tables {
		b.Queue(ResetSequenceSQL(t.Name))
	}
	if err := dst.SendBatch(ctx, b).Close(); err != nil {
		return fmt.Errorf("failed to reset sequences: %w", err)
	}
	return nil
}

// ResetSequenceSQL returns the statement that aligns table's id sequence
// with its current maximum id.
func ResetSequenceSQL(table string) string {
	return fmt.Sprintf(
		"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE(MAX(id), 0) + 1, false) FROM %s",
		table, table)
}

// Build generates the dataset in memory.
func Build(opts Options) (*Dataset, error) {
	opts = opts.withDefaults()
	b := &builder{
		f:      datagen.NewFakerAt(opts.Seed, opts.Now),
		counts: DefaultCounts().Scale(opts.Scale),
		cost:   opts.PasswordCost,
	}

	steps := []struct {
		name string
		fn   func() error
	}{
		{"geography", b.geography},
		{"catalog", b.catalog},
		{"people", b.people},
		{"logistics", b.logistics},
		{"sales", b.sales},
		{"returns", b.returns},
		{"promotions", b.promotions},
		{"loyalty", b.loyalty},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			return nil, fmt.Errorf("failed to generate %s: %w", step.name, err)
		}
	}

	return &Dataset{Counts: b.counts, Tables: b.tables}, nil
}

type orderItem struct {
	id       int64
	orderID  int64
	product  int64
	quantity int
	price    decimal.Decimal
	returnID *int64
}

type orderInfo struct {
	customer  int64
	orderedAt time.Time
	items     []int // indexes into builder.items
}

type builder struct {
	f      *datagen.Faker
	counts Counts
	cost   int
	tables []*datagen.Table

	cities int
	prices []decimal.Decimal
	orders []orderInfo
	items  []orderItem
}

func (b *builder) table(name string, columns ...string) *datagen.Table {
	t := &datagen.Table{Name: name, Columns: columns}
	b.tables = append(b.tables, t)
	return t
}

func (b *builder) since() time.Time {
	return b.f.Now().AddDate(0, 0, -DateWindowDays)
}

func (b *builder) recent() time.Time {
	return b.f.RecentDate(DateWindowDays)
}

func (b *builder) pick(n int) int64 {
	return int64(b.f.Int(1, n))
}

func (b *builder) geography() error {
	countries := b.table("countries", "id", "name")
	cities := b.table("cities", "id", "name", "country_id")

	var cityID int64
	for i, g := range geography {
		countryID := int64(i + 1)
		countries.Add(countryID, g.country)
		for _, city := range g.cities {
			cityID++
			cities.Add(cityID, city, countryID)
		}
	}
	b.cities = cities.Len()
	return nil
}

func (b *builder) catalog() error {
	categories := b.table("categories", "id", "name", "description")
	for i, name := range categoryNames {
		categories.Add(int64(i+1), name, b.f.Sentence(8))
	}

	suppliers := b.table("suppliers", "id", "name", "contact", "email", "phone", "country_id")
	for i := 1; i <= b.counts.Suppliers; i++ {
		suppliers.Add(
			int64(i),
			fmt.Sprintf("%s #%d", datagen.Choose(b.f, supplierBrands), i),
			b.f.Name(),
			b.f.Email(),
			b.f.Phone(),
			b.pick(len(geography)),
		)
	}

	products := b.table("products", "id", "name", "price", "category_id", "supplier_id", "created_at")
	b.prices = make([]decimal.Decimal, 0, b.counts.Products)
	for i := 1; i <= b.counts.Products; i++ {
		kind := datagen.Choose(b.f, itemKinds)
		name := fmt.Sprintf("%s %s: %s", datagen.Choose(b.f, franchises), kind, b.f.FirstName())
		price := b.f.Price(10, 800)
		category, ok := itemCategory[kind]
		if !ok {
			category = b.pick(len(categoryNames))
		}
		b.prices = append(b.prices, price)
		products.Add(
			int64(i),
			datagen.Truncate(name, 200),
			numeric(price),
			category,
			b.pick(b.counts.Suppliers),
			b.recent(),
		)
	}
	return nil
}

func (b *builder) people() error {
	customers := b.table("customers", "id", "name", "surname", "email", "phone", "address", "city_id", "created_at")
	for i := 1; i <= b.counts.Customers; i++ {
		customers.Add(
			int64(i),
			b.f.FirstName(),
			b.f.LastName(),
			b.f.Email(),
			b.f.Phone(),
			b.f.Address(),
			b.pick(b.cities),
			b.recent(),
		)
	}

	hashes := make(map[string]string, 3)
	for _, pw := range []string{customerPassword, adminPassword, employeePassword} {
		h, err := bcrypt.GenerateFromPassword([]byte(pw), b.cost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		hashes[pw] = string(h)
	}

	// Customer accounts first, then the administrator, then one account
	// per employee.
	users := b.table("users", "id", "username", "email", "password_hash", "role", "status", "customer_id")
	for i := 1; i <= b.counts.Customers; i++ {
		users.Add(int64(i), fmt.Sprintf("user%d", i), fmt.Sprintf("user%d@lootbox.com", i),
			hashes[customerPassword], "customer", "active", int64(i))
	}
	adminID := int64(b.counts.Customers + 1)
	users.Add(adminID, "admin", "admin@lootbox.com", hashes[adminPassword], "admin", "active", nil)

	employees := b.table("employees", "id", "name", "surname", "email", "phone", "role", "user_id")
	for i := 1; i <= b.counts.Employees; i++ {
		userID := adminID + int64(i)
		username := fmt.Sprintf("employee%d", i)
		email := username + "@lootbox.com"
		users.Add(userID, username, email, hashes[employeePassword], "employee", "active", nil)
		employees.Add(int64(i), b.f.FirstName(), b.f.LastName(), email, b.f.Phone(),
			datagen.Choose(b.f, employeeRoles), userID)
	}
	return nil
}

func (b *builder) logistics() error {
	warehouses := b.table("warehouses", "id", "name", "address", "city_id")
	for i := 1; i <= b.counts.Warehouses; i++ {
		warehouses.Add(int64(i), fmt.Sprintf("Warehouse %d", i), b.f.Street(), b.pick(b.cities))
	}

	movements := b.table("inventory_movements", "id", "product_id", "warehouse_id", "quantity", "direction", "moved_at", "employee_id")
	for i := 1; i <= b.counts.InventoryMovements; i++ {
		movements.Add(
			int64(i),
			b.pick(b.counts.Products),
			b.pick(b.counts.Warehouses),
			b.f.Int(1, 50),
			datagen.Choose(b.f, []string{"IN", "OUT"}),
			b.recent(),
			b.pick(b.counts.Employees),
		)
	}

	shipments := b.table("shipments", "id", "shipped_at", "delivered_at", "status", "warehouse_id")
	for i := 1; i <= b.counts.Shipments; i++ {
		shippedAt := b.recent()
		status := datagen.ChooseWeighted(b.f, shipmentStatuses, []int{2, 6, 2})

		var deliveredAt any
		switch status {
		case "delivered":
			deliveredAt = shippedAt.Add(time.Duration(b.f.Int(1, 5)) * 24 * time.Hour)
		case "delayed":
			deliveredAt = shippedAt.Add(time.Duration(b.f.Int(6, 14)) * 24 * time.Hour)
		}
		shipments.Add(int64(i), shippedAt, deliveredAt, status, b.pick(b.counts.Warehouses))
	}
	return nil
}

func (b *builder) sales() error {
	payments := b.table("payments", "id", "paid_at", "method", "amount", "customer_id")
	for i := 1; i <= b.counts.Payments; i++ {
		payments.Add(
			int64(i),
			b.recent(),
			datagen.Choose(b.f, paymentMethods),
			numeric(b.f.Price(50, 8000)),
			b.pick(b.counts.Customers),
		)
	}

	orders := b.table("orders", "id", "ordered_at", "status", "total", "payment_id", "shipment_id", "customer_id", "employee_id")
	maxItems := min(MaxItemsPerOrder, b.counts.Products)
	b.orders = make([]orderInfo, 0, b.counts.Orders)

	for i := 1; i <= b.counts.Orders; i++ {
		orderID := int64(i)
		info := orderInfo{customer: b.pick(b.counts.Customers), orderedAt: b.recent()}

		total := decimal.Zero
		seen := make(map[int64]bool, maxItems)
		for n := b.f.Int(1, maxItems); len(seen) < n; {
			product := b.pick(b.counts.Products)
			if seen[product] {
				continue
			}
			seen[product] = true

			item := orderItem{
				id:       int64(len(b.items) + 1),
				orderID:  orderID,
				product:  product,
				quantity: b.f.Int(1, 5),
				price:    b.prices[product-1],
			}
			total = total.Add(item.subtotal())
			info.items = append(info.items, len(b.items))
			b.items = append(b.items, item)
		}

		b.orders = append(b.orders, info)
		orders.Add(
			orderID,
			info.orderedAt,
			datagen.Choose(b.f, orderStatuses),
			numeric(total),
			b.pick(b.counts.Payments),
			b.pick(b.counts.Shipments),
			info.customer,
			b.pick(b.counts.Employees),
		)
	}
	return nil
}

// returns writes returns and then the order items, since items reference
// the return they were sent back under. The first half of the returns is
// linked to an unreturned item of the same order.
func (b *builder) returns() error {
	returns := b.table("returns", "id", "reason", "returned_at", "refund_amount", "order_id", "customer_id")
	linked := min(b.counts.Returns, b.counts.Orders/2)

	for i := 1; i <= b.counts.Returns; i++ {
		returnID := int64(i)
		orderID := b.pick(b.counts.Orders)
		order := b.orders[orderID-1]
		refund := b.f.Price(50, 2000)

		if i <= linked {
			for _, idx := range order.items {
				if b.items[idx].returnID == nil {
					b.items[idx].returnID = &returnID
					refund = b.items[idx].subtotal()
					break
				}
			}
		}

		returnedAt := order.orderedAt.Add(time.Duration(b.f.Int(1, 30)) * 24 * time.Hour)
		if returnedAt.After(b.f.Now()) {
			returnedAt = b.f.Now()
		}
		returns.Add(returnID, datagen.Choose(b.f, returnReasons), returnedAt, numeric(refund), orderID, order.customer)
	}

	items := b.table("order_items", "id", "order_id", "product_id", "quantity", "unit_price", "return_id")
	for _, it := range b.items {
		var returnID any
		if it.returnID != nil {
			returnID = *it.returnID
		}
		items.Add(it.id, it.orderID, it.product, it.quantity, numeric(it.price), returnID)
	}
	return nil
}

func (b *builder) promotions() error {
	promotions := b.table("promotions", "id", "name", "description", "discount_percent", "starts_at", "ends_at", "active", "category_id")
	for i := 1; i <= b.counts.Promotions; i++ {
		startsAt := b.f.DateRange(b.since(), b.f.Now().AddDate(0, 0, -30))
		endsAt := startsAt.AddDate(0, 0, b.f.Int(10, 60))
		promotions.Add(
			int64(i),
			promotionNames[(i-1)%len(promotionNames)],
			b.f.Sentence(10),
			numeric(b.f.Price(5, 40)),
			startsAt,
			endsAt,
			b.f.Bool(),
			b.pick(len(categoryNames)),
		)
	}
	return nil
}

func (b *builder) loyalty() error {
	movements := b.table("loyalty_movements", "id", "moved_at", "points", "description", "customer_id", "order_id")
	for i := 1; i <= b.counts.LoyaltyMovements; i++ {
		orderID := b.pick(b.counts.Orders)
		order := b.orders[orderID-1]
		movements.Add(
			int64(i),
			b.recent(),
			b.f.Int(-50, 150),
			datagen.Choose(b.f, loyaltyDescriptions),
			order.customer,
			orderID,
		)
	}
	return nil
}

func (it orderItem) subtotal() decimal.Decimal {
	return it.price.Mul(decimal.NewFromInt(int64(it.quantity)))
}

func numeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}
