// Package observability provides metrics and tracing instrumentation.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Token registry counters. HTTP-level metrics come from the
// fiberprometheus middleware; these track the auth domain itself.
var (
	TokensIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_tokens_issued_total",
		Help: "Number of access tokens issued (register, login, refresh).",
	})
	TokensRevoked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_tokens_revoked_total",
		Help: "Number of access tokens revoked (login rotation, logout, refresh).",
	})
	AuthFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_auth_failures_total",
		Help: "Number of requests rejected by the bearer token authenticator.",
	})
)
