package datagen

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

func decimalFrom(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

type fakeCopier struct {
	batches [][][]any
	columns []string
	table   pgx.Identifier
	err     error
}

func (c *fakeCopier) CopyFrom(_ context.Context, table pgx.Identifier, cols []string, src pgx.CopyFromSource) (int64, error) {
	if c.err != nil {
		return 0, c.err
	}
	c.table = table
	c.columns = cols

	var rows [][]any
	for src.Next() {
		vals, err := src.Values()
		if err != nil {
			return 0, err
		}
		rows = append(rows, vals)
	}
	c.batches = append(c.batches, rows)
	return int64(len(rows)), nil
}

func TestCopyTableBatches(t *testing.T) {
	tbl := &Table{Name: "countries", Columns: []string{"id", "name"}}
	for i := 1; i <= 25; i++ {
		tbl.Add(int64(i), "country")
	}

	dst := &fakeCopier{}
	if err := CopyTable(context.Background(), dst, tbl, BatchInsertConfig{BatchSize: 10, ProgressInterval: 10}); err != nil {
		t.Fatalf("CopyTable failed: %v", err)
	}

	if len(dst.batches) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(dst.batches))
	}
	if len(dst.batches[2]) != 5 {
		t.Errorf("expected last batch of 5 rows, got %d", len(dst.batches[2]))
	}
	if dst.table[0] != "countries" {
		t.Errorf("unexpected table %v", dst.table)
	}
}

func TestCopyTableError(t *testing.T) {
	tbl := &Table{Name: "cities", Columns: []string{"id"}}
	tbl.Add(int64(1))

	err := CopyTable(context.Background(), &fakeCopier{err: errors.New("copy failed")}, tbl, DefaultBatchConfig())
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestTableAddPanicsOnArity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for wrong value count")
		}
	}()
	tbl := &Table{Name: "t", Columns: []string{"a", "b"}}
	tbl.Add(1)
}

func TestScaleCount(t *testing.T) {
	tests := []struct {
		base  int
		scale float64
		want  int
	}{
		{500, 1.0, 500},
		{500, 0.1, 50},
		{2000, 2.5, 5000},
		{10, 0.01, 1},
		{5, 0.3, 2},
	}
	for _, tt := range tests {
		if got := ScaleCount(tt.base, tt.scale); got != tt.want {
			t.Errorf("ScaleCount(%d, %v) = %d, want %d", tt.base, tt.scale, got, tt.want)
		}
	}
}

func TestProgressReporter(t *testing.T) {
	p := NewProgressReporter("orders", 100, 0)
	p.Update(40)
	p.Update(60)
	if p.Rows() != 100 {
		t.Errorf("expected 100 rows, got %d", p.Rows())
	}
	p.Done()
}
