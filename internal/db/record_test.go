package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMarshalJSONKeepsColumnOrder(t *testing.T) {
	r := NewRecord(
		[]string{"zeta", "alpha", "mid"},
		[]any{int64(1), "a", nil},
	)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":1,"alpha":"a","mid":null}`, string(data))
}

func TestRecordDuplicateColumns(t *testing.T) {
	r := NewRecord([]string{"id", "name", "id"}, []any{int64(1), "x", int64(2)})

	assert.Equal(t, []string{"id", "name"}, r.Columns())
	assert.Equal(t, int64(2), r.Int64("id"))
}

func TestRecordNumericBecomesDecimal(t *testing.T) {
	price := pgtype.Numeric{Int: big.NewInt(129999), Exp: -2, Valid: true}
	r := NewRecord([]string{"price", "missing"}, []any{price, pgtype.Numeric{}})

	assert.True(t, decimal.RequireFromString("1299.99").Equal(r.Decimal("price")))
	assert.Equal(t, "1299.99", r.String("price"))
	assert.Nil(t, r.Value("missing"))
	assert.True(t, r.Decimal("missing").IsZero())

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"price":"1299.99","missing":null}`, string(data))
}

func TestToInt64(t *testing.T) {
	tests := []struct {
		in   any
		want int64
	}{
		{nil, 0},
		{int32(7), 7},
		{int64(-3), -3},
		{"42", 42},
		{"not a number", 0},
		{decimal.RequireFromString("12.9"), 12},
		{3.7, 3},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.in), func(t *testing.T) {
			if got := ToInt64(tt.in); got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestRecordCoercions(t *testing.T) {
	when := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	r := NewRecord(
		[]string{"active", "at", "raw"},
		[]any{true, when, []byte("bytes")},
	)

	assert.True(t, r.Bool("active"))
	assert.Equal(t, when, r.Time("at"))
	assert.Equal(t, "2025-03-04T05:06:07Z", r.String("at"))
	assert.Equal(t, "bytes", r.String("raw"))

	v, ok := r.Get("nope")
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"foreign key", &pgconn.PgError{Code: "23503"}, KindIntegrity},
		{"unique", &pgconn.PgError{Code: "23505"}, KindIntegrity},
		{"not null", fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23502"}), KindIntegrity},
		{"auth", &pgconn.PgError{Code: "28P01"}, KindConnection},
		{"syntax", &pgconn.PgError{Code: "42601"}, KindStore},
		{"plain", errors.New("boom"), KindStore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify("op", tt.err)
			var classified *Error
			require.ErrorAs(t, err, &classified)
			assert.Equal(t, tt.want, classified.Kind)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	assert.NoError(t, Classify("op", nil))

	original := &Error{Kind: KindConnection, Op: "connect", Err: errors.New("x")}
	assert.Same(t, original, Classify("read", original))
}
