// Package metrics defines and registers all custom Prometheus metrics for the
// eStall marketplace API. It is the single source of truth for metric names,
// labels, and help strings. Registration happens at import time via promauto;
// the /metrics endpoint is wired by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── Payment metrics ───────────────────────────────────────────────────────────

// PaymentsProcessedTotal counts payments whose cascade ran to completion.
// Label:
//   - result: "completed" (first submission) or "replayed" (known transaction
//     id, steps re-executed)
var PaymentsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_processed_total",
		Help:      "Total number of payments whose finalization cascade completed.",
	},
	[]string{"result"},
)

// CascadeStepFailuresTotal counts cascade steps that failed after the payment
// record was durably appended.
// Label:
//   - step: "mark_paid", "mark_sold", "unlist", or "purge_reports"
var CascadeStepFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cascade_step_failures_total",
		Help:      "Total number of sale-finalization steps that failed after the payment was recorded.",
	},
	[]string{"step"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// ProductsCreatedTotal counts newly listed products, by category.
var ProductsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_created_total",
		Help:      "Total number of products listed for sale, by category.",
	},
	[]string{"category"},
)

// ── Booking and report metrics ────────────────────────────────────────────────

// BookingsCreatedTotal counts buyer reservations.
var BookingsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of bookings created.",
	},
)

// ReportsFiledTotal counts reports filed by buyers.
var ReportsFiledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_filed_total",
		Help:      "Total number of product reports filed.",
	},
)

// ReportsResolvedTotal counts reports resolved by admins.
var ReportsResolvedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_resolved_total",
		Help:      "Total number of product reports resolved.",
	},
)
