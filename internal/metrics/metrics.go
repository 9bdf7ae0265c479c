// Package metrics defines the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequestsTotal counts requests by method, matched route and status.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks request latency by method and route.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// AgentClaimsTotal counts claim attempts by outcome (claimed, rejected).
	AgentClaimsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_claims_total",
			Help: "Total number of agent claim attempts by outcome",
		},
		[]string{"outcome"},
	)

	// AgentClaimsExpired counts pending agents expired by the background job.
	AgentClaimsExpired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "agent_claims_expired_total",
			Help: "Total number of pending agents expired by the claim expiry job",
		},
	)

	// SeedRunsTotal counts hackathon seeding runs.
	SeedRunsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "seed_runs_total",
			Help: "Total number of hackathon seed runs",
		},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		AgentClaimsTotal,
		AgentClaimsExpired,
		SeedRunsTotal,
	)
}
