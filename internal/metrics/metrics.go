// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bbqmenu"

// CreditsGranted counts credits added to the ledger by scene.
var CreditsGranted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "credits",
	Name:      "granted_total",
	Help:      "Total credits granted, by transaction scene.",
}, []string{"scene"})

// CreditsConsumed counts credits drawn from the ledger by scene.
var CreditsConsumed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "credits",
	Name:      "consumed_total",
	Help:      "Total credits consumed, by usage scene.",
}, []string{"scene"})

var InsufficientCredits = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "credits",
	Name:      "insufficient_total",
	Help:      "Consumption attempts rejected for insufficient balance.",
})

// LedgerErrors counts store or lock failures by operation.
var LedgerErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "credits",
	Name:      "ledger_errors_total",
	Help:      "Ledger operations that failed because the store or lock was unavailable.",
}, []string{"op"})

// MenuGenerations counts menu generation attempts by outcome.
var MenuGenerations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "menu",
	Name:      "generations_total",
	Help:      "Menu generation requests by outcome (completed, failed, mock, degraded).",
}, []string{"outcome"})

var LLMRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: namespace,
	Subsystem: "llm",
	Name:      "request_duration_seconds",
	Help:      "Latency of chat completion requests.",
	Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 60},
})

// HTTPRequests counts handled requests by route and status code.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "http",
	Name:      "requests_total",
	Help:      "HTTP requests by route and status.",
}, []string{"route", "status"})

var HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency by route.",
	Buckets:   prometheus.DefBuckets,
}, []string{"route"})
