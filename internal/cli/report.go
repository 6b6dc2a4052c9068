//-------------------------------------------------------------------------
//
// LootBox Admin
//
// Portions copyright (c) 2025 - 2026, LootBox
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lootbox/lootbox-admin/internal/db"
	"github.com/lootbox/lootbox-admin/internal/export"
	"github.com/lootbox/lootbox-admin/internal/logging"
	"github.com/lootbox/lootbox-admin/internal/reporting"
)

var (
	reportFormat   string
	reportOutput   string
	reportPage     int
	reportPageSize int
	reportExplain  bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the predefined analytic views and queries",
	Long: `Run the allow-listed analytic views and the predefined analytic
queries against the store. Results print as a paged table or export as
JSON, CSV or an XLSX workbook.

Examples:
  lootbox report views
  lootbox report view vw_sales_by_category --page 2
  lootbox report query order_total_mismatch --format csv --output mismatches.csv
  lootbox report query loyalty_balances --explain`,
}

var reportViewsCmd = &cobra.Command{
	Use:   "views",
	Short: "List the available analytic views",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tDESCRIPTION")
		for _, v := range reporting.Views() {
			fmt.Fprintf(w, "%s\t%s\n", v.Name, v.Description)
		}
		return w.Flush()
	},
}

var reportQueriesCmd = &cobra.Command{
	Use:   "queries",
	Short: "List the predefined analytic queries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTITLE\tDESCRIPTION")
		for _, q := range reporting.Queries() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", q.Name, q.Label, q.Description)
		}
		return w.Flush()
	},
}

var reportViewCmd = &cobra.Command{
	Use:   "view <name>",
	Short: "Show the rows of an analytic view",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if _, ok := reporting.LookupView(name); !ok {
			return fmt.Errorf("unknown view %q; run 'lootbox report views' for the list", name)
		}
		return runReport(cmd, name, func(ctx context.Context, r *reporting.Reports) []db.Record {
			return r.View(ctx, name)
		})
	},
}

var reportQueryCmd = &cobra.Command{
	Use:   "query <name>",
	Short: "Run a predefined analytic query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if _, ok := reporting.LookupQuery(name); !ok {
			return fmt.Errorf("unknown query %q; run 'lootbox report queries' for the list", name)
		}
		return runReport(cmd, name, func(ctx context.Context, r *reporting.Reports) []db.Record {
			return r.Query(ctx, name, reportExplain)
		})
	},
}

func init() {
	reportCmd.PersistentFlags().StringVar(&reportFormat, "format", "",
		"output format: table, json, csv, xlsx (default: table)")
	reportCmd.PersistentFlags().StringVarP(&reportOutput, "output", "o", "",
		"write to this file instead of stdout")
	reportCmd.PersistentFlags().IntVar(&reportPage, "page", 0,
		"1-based page to print; all rows are exported when unset")
	reportCmd.PersistentFlags().IntVar(&reportPageSize, "page-size", 0,
		fmt.Sprintf("rows per page, at most %d (default: 15)", db.MaxPageSize))
	reportQueryCmd.Flags().BoolVar(&reportExplain, "explain", false,
		"print the execution plan instead of the rows")

	reportCmd.AddCommand(reportViewsCmd)
	reportCmd.AddCommand(reportQueriesCmd)
	reportCmd.AddCommand(reportViewCmd)
	reportCmd.AddCommand(reportQueryCmd)
}

func runReport(cmd *cobra.Command, name string, run func(context.Context, *reporting.Reports) []db.Record) (err error) {
	// Override config with CLI flags
	if reportFormat != "" {
		cfg.Report.Format = reportFormat
	}
	if reportPageSize > 0 {
		cfg.Report.PageSize = reportPageSize
	}

	format, err := export.ParseFormat(cfg.Report.Format)
	if err != nil {
		return err
	}
	cfg.Report.Format = string(format)

	// Validate configuration
	if err := cfg.ValidateReport(); err != nil {
		return err
	}

	executor, _, err := newExecutor(nil)
	if err != nil {
		return err
	}

	records := run(cmd.Context(), reporting.New(executor))
	total := len(records)

	records, page, pages := pageRecords(records, format, cmd.Flags().Changed("page"), reportPage, cfg.Report.PageSize)

	out, closeOut, err := reportWriter(cmd.OutOrStdout(), name, format)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOut(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := export.Write(out, format, records); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if format == export.FormatTable && pages > 1 {
		fmt.Fprintf(out, "page %d of %d (%d rows total)\n", page, pages, total)
	}

	logging.Debug().
		Str("report", name).
		Str("format", string(format)).
		Int("rows", total).
		Msg("Report complete")

	return nil
}

// pageRecords returns the rows to emit with the 1-based page shown and the
// page count. Tables are always paged; exports only when a page is given.
func pageRecords(records []db.Record, format export.Format, pageSet bool, page, size int) ([]db.Record, int, int) {
	pages := reporting.PageCount(len(records), size)
	if format != export.FormatTable && !pageSet {
		return records, 1, 1
	}
	page = max(page, 1)
	page = min(page, pages)
	return reporting.Page(records, page-1, size), page, pages
}

// reportWriter resolves where a report goes. Workbooks are binary, so they
// default to <name>.xlsx rather than the terminal. The returned close
// function reports a failed flush of the output file.
func reportWriter(stdout io.Writer, name string, format export.Format) (io.Writer, func() error, error) {
	path := reportOutput
	if path == "" && format == export.FormatXLSX {
		path = name + ".xlsx"
	}
	if path == "" {
		return stdout, func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	logging.Info().Str("path", path).Msg("Writing report")
	return f, func() error {
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		return nil
	}, nil
}
