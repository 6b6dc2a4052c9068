package db

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lootbox/lootbox-admin/internal/metrics"
)

func TestExecutorReadPreservesColumnOrder(t *testing.T) {
	conn := &fakeConn{rows: &fakeRows{
		cols: []string{"id", "name", "email"},
		data: [][]any{
			{int64(1), "Ada", "ada@example.com"},
			{int64(2), "Linus", "linus@example.com"},
		},
	}}
	exec := NewExecutor(&fakeOpener{conn: conn}, nil)

	records := exec.Read(context.Background(), "SELECT id, name, email FROM customers WHERE id > $1", 0)

	require.Len(t, records, 2)
	assert.Equal(t, []string{"id", "name", "email"}, records[0].Columns())
	assert.Equal(t, int64(2), records[1].Int64("id"))
	assert.Equal(t, "Linus", records[1].String("name"))
	assert.True(t, conn.rows.closed)
	assert.True(t, conn.closed, "connection must be closed after the call")
	assert.Equal(t, []any{0}, conn.args[0])
}

func TestExecutorReadAbsorbsErrors(t *testing.T) {
	conn := &fakeConn{queryErr: errors.New("relation does not exist")}
	exec := NewExecutor(&fakeOpener{conn: conn}, nil)

	records := exec.Read(context.Background(), "SELECT 1")

	assert.NotNil(t, records)
	assert.Empty(t, records)
	assert.True(t, conn.closed)
}

func TestExecutorReadConnectionFailure(t *testing.T) {
	opener := &fakeOpener{err: &Error{Kind: KindConnection, Op: "connect", Err: errors.New("refused")}}
	exec := NewExecutor(opener, nil)

	assert.Empty(t, exec.Read(context.Background(), "SELECT 1"))

	_, err := exec.Query(context.Background(), "SELECT 1")
	require.Error(t, err)
	assert.True(t, IsConnection(err))
	assert.ErrorIs(t, err, ErrConnection)
}

func TestExecutorQueryClassifiesIntegrity(t *testing.T) {
	conn := &fakeConn{queryErr: &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"}}
	exec := NewExecutor(&fakeOpener{conn: conn}, nil)

	_, err := exec.Query(context.Background(), "SELECT 1")
	require.Error(t, err)
	assert.True(t, IsIntegrity(err))
	assert.ErrorIs(t, err, ErrIntegrity)
}

func TestExecutorExecCommits(t *testing.T) {
	conn := &fakeConn{execTag: "UPDATE 3"}
	exec := NewExecutor(&fakeOpener{conn: conn}, nil)

	n := exec.Execute(context.Background(), "UPDATE products SET price = $1", 10)

	assert.Equal(t, int64(3), n)
	assert.True(t, conn.committed)
	assert.False(t, conn.rolledBack)
	assert.True(t, conn.closed)
}

func TestExecutorExecRollsBackOnFailure(t *testing.T) {
	conn := &fakeConn{execErr: &pgconn.PgError{Code: "23503"}}
	exec := NewExecutor(&fakeOpener{conn: conn}, nil)

	assert.Equal(t, int64(0), exec.Execute(context.Background(), "DELETE FROM customers WHERE id = $1", 1))

	_, err := exec.Exec(context.Background(), "DELETE FROM customers WHERE id = $1", 1)
	require.Error(t, err)
	assert.True(t, IsIntegrity(err))
	assert.True(t, conn.rolledBack)
	assert.False(t, conn.committed)
}

func TestExecutorExecCommitFailure(t *testing.T) {
	conn := &fakeConn{execTag: "INSERT 0 1", commitErr: errors.New("commit failed")}
	exec := NewExecutor(&fakeOpener{conn: conn}, nil)

	n, err := exec.Exec(context.Background(), "INSERT INTO categories (name) VALUES ($1)", "x")
	require.Error(t, err)
	assert.Equal(t, int64(0), n)
}

func TestExecutorCloseErrorIsCombined(t *testing.T) {
	conn := &fakeConn{execErr: errors.New("boom"), closeErr: errors.New("close failed")}
	exec := NewExecutor(&fakeOpener{conn: conn}, nil)

	_, err := exec.Exec(context.Background(), "UPDATE x SET y = 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Contains(t, err.Error(), "close failed")
}

func TestExecutorCallFlattensRows(t *testing.T) {
	conn := &fakeConn{rows: &fakeRows{
		cols: []string{"stock"},
		data: [][]any{{int64(4)}},
	}}
	exec := NewExecutor(&fakeOpener{conn: conn}, nil)

	records := exec.CallProcedure(context.Background(), "sp_product_warehouse_stock", int64(1), int64(2))

	require.Len(t, records, 1)
	assert.Equal(t, int64(4), records[0].Int64("stock"))
	assert.Equal(t, "SELECT * FROM sp_product_warehouse_stock($1, $2)", conn.queries[0])
	assert.True(t, conn.committed)
}

func TestExecutorCallRejectsInvalidName(t *testing.T) {
	opener := &fakeOpener{conn: &fakeConn{}}
	exec := NewExecutor(opener, nil)

	assert.Empty(t, exec.CallProcedure(context.Background(), "sp_x(); DROP TABLE customers; --"))
	assert.Equal(t, 0, opener.opens, "no connection should be opened for an invalid name")
}

func TestExecutorRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	conn := &fakeConn{execTag: "DELETE 1"}
	exec := NewExecutor(&fakeOpener{conn: conn}, metrics.NewQueryMetrics(reg))

	exec.Execute(context.Background(), "DELETE FROM promotions WHERE id = $1", 1)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)
}

func TestCallSQL(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want string
	}{
		{"sp_none", 0, "SELECT * FROM sp_none()"},
		{"sp_one", 1, "SELECT * FROM sp_one($1)"},
		{"sp_create_simple_order", 5, "SELECT * FROM sp_create_simple_order($1, $2, $3, $4, $5)"},
	}
	for _, tt := range tests {
		if got := CallSQL(tt.name, tt.n); got != tt.want {
			t.Errorf("CallSQL(%s, %d) = %q, want %q", tt.name, tt.n, got, tt.want)
		}
	}
}

func TestValidIdentifier(t *testing.T) {
	valid := []string{"sp_x", "vw_sales_by_category", "_a1"}
	invalid := []string{"", "1abc", "sp x", "sp;drop", "schema.fn", "fn()"}

	for _, name := range valid {
		assert.True(t, ValidIdentifier(name), name)
	}
	for _, name := range invalid {
		assert.False(t, ValidIdentifier(name), name)
	}
}
