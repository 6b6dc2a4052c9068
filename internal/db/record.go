//-------------------------------------------------------------------------
//
// LootBox Admin
//
// Portions copyright (c) 2025 - 2026, LootBox
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package db

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Record is one result row keyed by column name. Column order follows the
// query's select list.
type Record struct {
	columns []string
	values  map[string]any
}

// NewRecord builds a record from parallel column and value slices. When a
// column name repeats, the last value wins and the first position is kept.
func NewRecord(columns []string, values []any) Record {
	r := Record{
		columns: make([]string, 0, len(columns)),
		values:  make(map[string]any, len(columns)),
	}
	for i, col := range columns {
		var v any
		if i < len(values) {
			v = normalizeValue(values[i])
		}
		if _, seen := r.values[col]; !seen {
			r.columns = append(r.columns, col)
		}
		r.values[col] = v
	}
	return r
}

// Columns returns the column names in select-list order.
func (r Record) Columns() []string {
	return r.columns
}

// Len returns the number of columns.
func (r Record) Len() int {
	return len(r.columns)
}

// Get returns the value of col and whether the column exists.
func (r Record) Get(col string) (any, bool) {
	v, ok := r.values[col]
	return v, ok
}

// Value returns the value of col, or nil.
func (r Record) Value(col string) any {
	return r.values[col]
}

// Values returns the values in column order.
func (r Record) Values() []any {
	out := make([]any, len(r.columns))
	for i, col := range r.columns {
		out[i] = r.values[col]
	}
	return out
}

// String returns col as text. NULL becomes "".
func (r Record) String(col string) string {
	switch v := r.values[col].(type) {
	case nil:
		return ""
	case decimal.Decimal:
		return v.String()
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return cast.ToString(v)
	}
}

// Int64 coerces col to an integer. Values that cannot be coerced yield 0.
func (r Record) Int64(col string) int64 {
	return ToInt64(r.values[col])
}

// Decimal coerces col to a decimal. Values that cannot be coerced yield zero.
func (r Record) Decimal(col string) decimal.Decimal {
	switch v := r.values[col].(type) {
	case decimal.Decimal:
		return v
	case nil:
		return decimal.Zero
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return decimal.Zero
		}
		return decimal.NewFromFloat(f)
	}
}

// Time returns col as a time. Values that cannot be coerced yield the zero time.
func (r Record) Time(col string) time.Time {
	return cast.ToTime(r.values[col])
}

// Bool coerces col to a boolean.
func (r Record) Bool(col string) bool {
	return cast.ToBool(r.values[col])
}

// Map returns a copy of the record as a plain map.
func (r Record) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// MarshalJSON encodes the record as an object with keys in column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.values[col])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ToInt64 coerces v to an integer, returning 0 when it cannot.
func ToInt64(v any) int64 {
	switch t := v.(type) {
	case nil:
		return 0
	case decimal.Decimal:
		return t.IntPart()
	default:
		n, err := cast.ToInt64E(v)
		if err != nil {
			return 0
		}
		return n
	}
}

// collectRecords drains rows into records.
func collectRecords(rows pgx.Rows) ([]Record, error) {
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, fd := range fields {
		columns[i] = fd.Name
	}

	var out []Record
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		out = append(out, NewRecord(columns, values))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// normalizeValue converts driver types into plain Go values.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case pgtype.Numeric:
		return numericValue(t)
	case *pgtype.Numeric:
		if t == nil {
			return nil
		}
		return numericValue(*t)
	case []byte:
		return string(t)
	default:
		return v
	}
}

func numericValue(n pgtype.Numeric) any {
	if !n.Valid {
		return nil
	}
	switch {
	case n.NaN:
		return "NaN"
	case n.InfinityModifier == pgtype.Infinity:
		return "Infinity"
	case n.InfinityModifier == pgtype.NegativeInfinity:
		return "-Infinity"
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}
