//-------------------------------------------------------------------------
//
// LootBox Admin
//
// Portions copyright (c) 2025 - 2026, LootBox
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package api exposes the access and reporting layers as a JSON HTTP API.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lootbox/lootbox-admin/internal/access"
	"github.com/lootbox/lootbox-admin/internal/logging"
	"github.com/lootbox/lootbox-admin/internal/reporting"
	"github.com/lootbox/lootbox-admin/pkg/version"
)

// Pinger checks that the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the services behind the router.
type Deps struct {
	Access  *access.Service
	Reports *reporting.Reports

	// Health is pinged by /health. Nil reports healthy.
	Health Pinger

	// Metrics is served on /metrics when set.
	Metrics prometheus.Gatherer
}

type handler struct {
	svc     *access.Service
	reports *reporting.Reports
}

// NewRouter builds the HTTP handler.
func NewRouter(deps Deps) http.Handler {
	h := &handler{svc: deps.Access, reports: deps.Reports}

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		requestLogger,
		recoverer,
	)

	r.Get("/health", healthHandler(deps.Health))
	if deps.Metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", h.listCustomers)
			r.Post("/", h.createCustomer)
			r.Get("/{id}", h.getCustomer)
			r.Put("/{id}", h.updateCustomer)
			r.Delete("/{id}", h.deleteCustomer)
			r.Get("/{id}/loyalty", h.customerLoyalty)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.listProducts)
			r.Post("/", h.createProduct)
			r.Get("/{id}", h.getProduct)
			r.Put("/{id}", h.updateProduct)
			r.Delete("/{id}", h.deleteProduct)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.listOrders)
			r.Post("/", h.createOrder)
			r.Get("/{id}", h.getOrder)
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", h.listInventory)
			r.Get("/summary", h.inventorySummary)
			r.Get("/stock", h.stock)
			r.Post("/movements", h.registerMovement)
		})

		r.Route("/promotions", func(r chi.Router) {
			r.Get("/", h.listPromotions)
			r.Post("/", h.createPromotion)
			r.Get("/{id}", h.getPromotion)
			r.Put("/{id}", h.updatePromotion)
			r.Delete("/{id}", h.deletePromotion)
		})

		r.Post("/loyalty/movements", h.registerLoyalty)
		r.Get("/audit", h.listAudit)

		r.Route("/lookups", func(r chi.Router) {
			r.Get("/countries", h.countries)
			r.Get("/cities", h.cities)
			r.Get("/categories", h.categories)
			r.Get("/suppliers", h.suppliers)
			r.Get("/warehouses", h.warehouses)
			r.Get("/employees", h.employees)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/views", h.listViews)
			r.Get("/views/{name}", h.runView)
			r.Get("/queries", h.listQueries)
			r.Get("/queries/{name}", h.runQuery)
		})
	})

	return r
}

func healthHandler(p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]string{"status": "ok", "version": version.Short()}
		if p != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
			defer cancel()
			if err := p.Ping(ctx); err != nil {
				writeError(w, r, err)
				return
			}
		}
		writeData(w, http.StatusOK, body)
	}
}

// Serve runs srv until ctx is cancelled, then shuts it down gracefully.
func Serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info().Msg("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
