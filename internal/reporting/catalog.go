//-------------------------------------------------------------------------
//
// LootBox Admin
//
// Portions copyright (c) 2025 - 2026, LootBox
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package reporting

// ViewDefinition describes an allow-listed analytic view.
type ViewDefinition struct {
	// Name is the view identifier in the store.
	Name string

	// Description describes what the view reports.
	Description string
}

// QueryDefinition describes a predefined analytic query.
type QueryDefinition struct {
	// Name is the query identifier.
	Name string

	// Label is a short human-readable title.
	Label string

	// Description describes what the query does.
	Description string

	// SQL is the statement text. It never takes parameters.
	SQL string
}

var views = []ViewDefinition{
	{Name: "vw_sales_by_category", Description: "Units and revenue per product category."},
	{Name: "vw_monthly_avg_ticket", Description: "Order count and average ticket per month."},
	{Name: "vw_shipment_sla", Description: "Shipment outcomes and delivery times per warehouse."},
	{Name: "vw_monthly_return_rate", Description: "Returns as a percentage of orders per month."},
	{Name: "vw_high_ltv_customers", Description: "Customers in the top decile of lifetime value."},
	{Name: "vw_product_warehouse_inventory", Description: "Derived stock per product and warehouse."},
	{Name: "vw_customers_by_country", Description: "Customer count per country."},
	{Name: "vw_product_abc", Description: "ABC classification of products by cumulative sales."},
}

var queries = []QueryDefinition{
	{
		Name:        "multi_country_customers",
		Label:       "Multi-country customers",
		Description: "Customers whose orders shipped from warehouses in more than one country.",
		SQL: `SELECT
    c.id AS customer_id,
    c.name,
    c.surname,
    COUNT(DISTINCT ci.country_id) AS countries
FROM customers c
JOIN orders o ON o.customer_id = c.id
JOIN shipments s ON s.id = o.shipment_id
JOIN warehouses w ON w.id = s.warehouse_id
JOIN cities ci ON ci.id = w.city_id
GROUP BY c.id, c.name, c.surname
HAVING COUNT(DISTINCT ci.country_id) > 1
ORDER BY countries DESC, c.id`,
	},
	{
		Name:        "churned_customers_180d",
		Label:       "Churned customers (180+ days)",
		Description: "Customers whose last order is more than 180 days old.",
		SQL: `SELECT
    c.id AS customer_id,
    c.name,
    c.surname,
    MAX(o.ordered_at) AS last_order,
    CURRENT_DATE - MAX(o.ordered_at)::date AS days_since_last_order
FROM customers c
LEFT JOIN orders o ON o.customer_id = c.id
GROUP BY c.id, c.name, c.surname
HAVING MAX(o.ordered_at) IS NOT NULL
   AND CURRENT_DATE - MAX(o.ordered_at)::date > 180
ORDER BY days_since_last_order DESC`,
	},
	{
		Name:        "product_abc_detail",
		Label:       "Product ABC detail",
		Description: "Per product sales, running total and ABC class.",
		SQL: `SELECT
    product_id,
    product_name,
    total_sales,
    cumulative,
    grand_total,
    abc_class
FROM vw_product_abc
ORDER BY total_sales DESC, product_id`,
	},
	{
		Name:        "order_total_mismatch",
		Label:       "Order total mismatches",
		Description: "Orders whose stored total differs from the sum of their item subtotals.",
		SQL: `SELECT
    o.id AS order_id,
    o.total,
    COALESCE(SUM(oi.quantity * oi.unit_price), 0) AS items_total,
    o.total - COALESCE(SUM(oi.quantity * oi.unit_price), 0) AS difference
FROM orders o
LEFT JOIN order_items oi ON oi.order_id = o.id
GROUP BY o.id, o.total
HAVING o.total <> COALESCE(SUM(oi.quantity * oi.unit_price), 0)
ORDER BY ABS(o.total - COALESCE(SUM(oi.quantity * oi.unit_price), 0)) DESC`,
	},
	{
		Name:        "loyalty_balances",
		Label:       "Loyalty balances",
		Description: "Current loyalty points balance per customer.",
		SQL: `SELECT
    c.id AS customer_id,
    c.name,
    c.surname,
    COUNT(lm.id) AS movements,
    SUM(lm.points) AS balance
FROM customers c
JOIN loyalty_movements lm ON lm.customer_id = c.id
GROUP BY c.id, c.name, c.surname
ORDER BY balance DESC, c.id`,
	},
}

// Views returns the allow-listed views in display order.
func Views() []ViewDefinition {
	return append([]ViewDefinition(nil), views...)
}

// Queries returns the predefined analytic queries in display order.
func Queries() []QueryDefinition {
	return append([]QueryDefinition(nil), queries...)
}

// LookupView returns the view definition for name.
func LookupView(name string) (ViewDefinition, bool) {
	for _, v := range views {
		if v.Name == name {
			return v, true
		}
	}
	return ViewDefinition{}, false
}

// LookupQuery returns the query definition for name.
func LookupQuery(name string) (QueryDefinition, bool) {
	for _, q := range queries {
		if q.Name == name {
			return q, true
		}
	}
	return QueryDefinition{}, false
}
