//-------------------------------------------------------------------------
//
// LootBox Admin
//
// Portions copyright (c) 2025 - 2026, LootBox
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package metrics exposes Prometheus collectors for store access.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeRejected = "rejected"
)

// QueryMetrics records executor round-trips. A nil *QueryMetrics is valid
// and records nothing.
type QueryMetrics struct {
	duration *prometheus.HistogramVec
	total    *prometheus.CounterVec
	rows     *prometheus.CounterVec
}

// NewQueryMetrics registers the executor metrics on the provided registerer.
func NewQueryMetrics(reg prometheus.Registerer) *QueryMetrics {
	if reg == nil {
		return &QueryMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lootbox",
		Name:      "store_operation_duration_seconds",
		Help:      "Duration of store operations in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})
	total := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lootbox",
		Name:      "store_operations_total",
		Help:      "Store operations by outcome.",
	}, []string{"operation", "outcome"})
	rows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lootbox",
		Name:      "store_rows_total",
		Help:      "Rows returned or affected by store operations.",
	}, []string{"operation"})
	reg.MustRegister(duration, total, rows)
	return &QueryMetrics{
		duration: duration,
		total:    total,
		rows:     rows,
	}
}

// Observe records one finished operation.
func (m *QueryMetrics) Observe(operation, outcome string, elapsed time.Duration, rows int64) {
	if m == nil || m.total == nil {
		return
	}
	operation = normalizeLabel(operation)
	m.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
	m.total.WithLabelValues(operation, normalizeLabel(outcome)).Inc()
	if rows > 0 {
		m.rows.WithLabelValues(operation).Add(float64(rows))
	}
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
