//-------------------------------------------------------------------------
//
// LootBox Admin
//
// Portions copyright (c) 2025 - 2026, LootBox
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package export renders result records as a text table, JSON, CSV or
// an XLSX workbook.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/lootbox/lootbox-admin/internal/db"
)

// Format is an output format.
type Format string

// Supported formats.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatXLSX  Format = "xlsx"
)

// SheetName is the worksheet written by XLSX exports.
const SheetName = "Report"

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (table, json, csv, xlsx)", s)
	}
}

// Write renders records to w in format.
func Write(w io.Writer, format Format, records []db.Record) error {
	switch format {
	case FormatTable:
		return writeTable(w, records)
	case FormatJSON:
		return writeJSON(w, records)
	case FormatCSV:
		return writeCSV(w, records)
	case FormatXLSX:
		return writeXLSX(w, records)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// Columns returns the column names of the first record.
func Columns(records []db.Record) []string {
	if len(records) == 0 {
		return nil
	}
	return records[0].Columns()
}

func writeTable(w io.Writer, records []db.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "(no rows)")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	cols := Columns(records)
	fmt.Fprintln(tw, strings.Join(cols, "\t"))

	dashes := make([]string, len(cols))
	for i, c := range cols {
		dashes[i] = strings.Repeat("-", len(c))
	}
	fmt.Fprintln(tw, strings.Join(dashes, "\t"))

	for _, r := range records {
		fmt.Fprintln(tw, strings.Join(textRow(r, cols), "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "(%d rows)\n", len(records))
	return err
}

func writeJSON(w io.Writer, records []db.Record) error {
	if records == nil {
		records = []db.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func writeCSV(w io.Writer, records []db.Record) error {
	cw := csv.NewWriter(w)
	cols := Columns(records)
	if len(cols) > 0 {
		if err := cw.Write(cols); err != nil {
			return err
		}
	}
	for _, r := range records {
		if err := cw.Write(textRow(r, cols)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeXLSX(w io.Writer, records []db.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	cols := Columns(records)
	for i, c := range cols {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, c); err != nil {
			return err
		}
	}

	for rowIdx, r := range records {
		for colIdx, c := range cols {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(SheetName, cell, cellValue(r.Value(c))); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}

func textRow(r db.Record, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = r.String(c)
	}
	return out
}

// cellValue converts record values into types excelize stores natively.
func cellValue(v any) any {
	switch t := v.(type) {
	case nil:
		return ""
	case decimal.Decimal:
		return t.InexactFloat64()
	case time.Time:
		return t
	default:
		return v
	}
}
