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
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/lootbox/lootbox-admin/internal/access"
	"github.com/lootbox/lootbox-admin/internal/api"
	"github.com/lootbox/lootbox-admin/internal/logging"
	"github.com/lootbox/lootbox-admin/internal/reporting"
)

var (
	serveAddr      string
	serveNoMetrics bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the admin JSON API",
	Long: `Serve the customer, product, order, inventory, promotion, loyalty,
audit and report operations as a JSON API under /api, with /health and
/metrics endpoints. The server stops gracefully on SIGINT or SIGTERM.

Example:
  lootbox serve --addr :9090 --audit-user 1`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "",
		"listen address (default: :8080)")
	serveCmd.Flags().BoolVar(&serveNoMetrics, "no-metrics", false,
		"disable the /metrics endpoint")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if serveAddr != "" {
		cfg.Serve.Addr = serveAddr
	}
	if serveNoMetrics {
		cfg.Serve.Metrics = false
	}

	// Validate configuration
	if err := cfg.ValidateServe(); err != nil {
		return err
	}

	var reg *prometheus.Registry
	if cfg.Serve.Metrics {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	var registerer prometheus.Registerer
	var gatherer prometheus.Gatherer
	if reg != nil {
		registerer, gatherer = reg, reg
	}

	executor, connector, err := newExecutor(registerer)
	if err != nil {
		return err
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A store that is down at startup is reported, not fatal; every call
	// opens its own connection.
	if err := connector.Ping(ctx); err != nil {
		logging.Warn().Err(err).Msg("Database is not reachable yet")
	}

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case sig := <-sigChan:
			logging.Info().
				Str("signal", sig.String()).
				Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	handler := api.NewRouter(api.Deps{
		Access:  access.New(executor),
		Reports: reporting.New(executor),
		Health:  connector,
		Metrics: gatherer,
	})

	srv := &http.Server{
		Addr:              cfg.Serve.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logging.Info().
		Str("addr", cfg.Serve.Addr).
		Str("database", cfg.Database.Name).
		Bool("metrics", cfg.Serve.Metrics).
		Msg("Starting admin API")

	if err := api.Serve(ctx, srv, time.Duration(cfg.Serve.ShutdownTimeout)*time.Second); err != nil {
		return err
	}

	logging.Info().Msg("Admin API stopped")
	return nil
}
