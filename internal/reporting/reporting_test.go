package reporting

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lootbox/lootbox-admin/internal/db"
)

type recordingReader struct {
	queries []string
	rows    []db.Record
}

func (r *recordingReader) Read(_ context.Context, sql string, _ ...any) []db.Record {
	r.queries = append(r.queries, sql)
	return r.rows
}

func TestViewRunsAllowListedView(t *testing.T) {
	store := &recordingReader{rows: []db.Record{db.NewRecord([]string{"category_name"}, []any{"Retro"})}}

	rows := New(store).View(context.Background(), "vw_sales_by_category")

	require.Len(t, rows, 1)
	assert.Equal(t, []string{"SELECT * FROM vw_sales_by_category"}, store.queries)
}

func TestViewRejectsUnknownNames(t *testing.T) {
	names := []string{
		"customers",
		"vw_sales_by_category; DROP TABLE customers",
		"VW_SALES_BY_CATEGORY",
		"",
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			store := &recordingReader{}
			rows := New(store).View(context.Background(), name)

			assert.NotNil(t, rows)
			assert.Empty(t, rows)
			assert.Empty(t, store.queries, "no statement may be issued for %q", name)
		})
	}
}

func TestQueryExplainPrefix(t *testing.T) {
	store := &recordingReader{}
	r := New(store)

	r.Query(context.Background(), "loyalty_balances", false)
	r.Query(context.Background(), "loyalty_balances", true)

	require.Len(t, store.queries, 2)
	assert.True(t, strings.HasPrefix(store.queries[0], "SELECT"))
	assert.Equal(t, "EXPLAIN "+store.queries[0], store.queries[1])
}

func TestQueryUnknownName(t *testing.T) {
	store := &recordingReader{}

	rows := New(store).Query(context.Background(), "SELECT 1", false)

	assert.Empty(t, rows)
	assert.Empty(t, store.queries)
}

func TestCatalogs(t *testing.T) {
	assert.Len(t, Views(), 8)

	want := []string{
		"multi_country_customers",
		"churned_customers_180d",
		"product_abc_detail",
		"order_total_mismatch",
		"loyalty_balances",
	}
	var got []string
	for _, q := range Queries() {
		got = append(got, q.Name)
		assert.NotEmpty(t, q.Description, q.Name)
		assert.NotContains(t, q.SQL, "$1", "catalog queries take no parameters")
		assert.NotContains(t, q.SQL, ";", "catalog queries are single statements")
	}
	assert.Equal(t, want, got)

	for _, v := range Views() {
		assert.True(t, db.ValidIdentifier(v.Name), v.Name)
	}
}

func TestCatalogsAreCopies(t *testing.T) {
	v := Views()
	v[0].Name = "tampered"

	_, ok := LookupView("tampered")
	assert.False(t, ok)
}

func TestPage(t *testing.T) {
	records := make([]db.Record, 45)
	for i := range records {
		records[i] = db.NewRecord([]string{"n"}, []any{int64(i)})
	}

	tests := []struct {
		page, size int
		wantLen    int
		wantFirst  int64
	}{
		{0, 20, 20, 0},
		{2, 20, 5, 40},
		{3, 20, 0, -1},
		{-1, 10, 10, 0},
		{0, 0, db.DefaultPageSize, 0},
	}

	for _, tt := range tests {
		got := Page(records, tt.page, tt.size)
		if len(got) != tt.wantLen {
			t.Errorf("Page(%d, %d): expected %d rows, got %d", tt.page, tt.size, tt.wantLen, len(got))
			continue
		}
		if tt.wantLen > 0 && got[0].Int64("n") != tt.wantFirst {
			t.Errorf("Page(%d, %d): expected first %d, got %d", tt.page, tt.size, tt.wantFirst, got[0].Int64("n"))
		}
	}

	assert.Empty(t, Page(records, 100000000000000000, 100))
	assert.Empty(t, Page(records, math.MaxInt, 1))

	assert.Equal(t, 3, PageCount(45, 20))
	assert.Equal(t, 1, PageCount(0, 20))
	assert.Equal(t, 1, PageCount(20, 20))
}
