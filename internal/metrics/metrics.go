// Package metrics exposes Prometheus instrumentation for reconciliation and
// the assignment engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for ReconcileGroups.
const (
	OutcomeCreated    = "created"
	OutcomeKept       = "kept"
	OutcomeDeleted    = "deleted"
	OutcomeInfeasible = "infeasible"
)

var (
	// ReconcileGroups counts per-group reconciliation outcomes.
	ReconcileGroups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "santa_reconcile_groups_total",
		Help: "Per-group reconciliation outcomes (created, kept, deleted, infeasible).",
	}, []string{"outcome"})

	// MatcherAttempts observes how many permutations the matcher drew
	// before finding a valid assignment. Large values indicate a dense
	// exclusion graph drifting toward infeasibility.
	MatcherAttempts = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "santa_matcher_attempts",
		Help:    "Permutations drawn per successful assignment.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})
)
