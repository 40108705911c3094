// Package metrics defines and registers the domain Prometheus metrics for the
// movie catalog API. Per-route HTTP metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// AuthAttemptsTotal counts authentication requests.
// Labels:
//   - method: "register", "password" or "google"
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by method and result.",
	},
	[]string{"method", "result"},
)

// MoviesCreatedTotal counts movies successfully added to the catalog.
var MoviesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "movies_created_total",
		Help:      "Total number of movies created.",
	},
)

// MovieWritesRejectedTotal counts rejected movie writes.
// Labels:
//   - operation: "create", "update" or "delete"
//   - reason: "validation", "conflict", "forbidden", "not_found" or "error"
var MovieWritesRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "movie_writes_rejected_total",
		Help:      "Total number of rejected movie writes, by operation and reason.",
	},
	[]string{"operation", "reason"},
)

// Result returns the result label for an auth attempt.
func Result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
