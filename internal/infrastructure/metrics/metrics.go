// Package metrics defines and registers the custom Prometheus metrics of the
// movie API. HTTP request metrics come from the echoprometheus middleware;
// the counters here track authentication and ownership decisions.
//
// All metrics register with the default Prometheus registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "movies"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "rejected" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts signed bearer tokens.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of bearer tokens issued.",
	},
)

// TokensRevokedTotal counts tokens revoked through logout.
var TokensRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_revoked_total",
		Help:      "Total number of bearer tokens revoked by logout.",
	},
)

// UsersCreatedTotal counts registrations.
// Label:
//   - role: the role assigned at creation ("User" or "Admin")
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created, by assigned role.",
	},
	[]string{"role"},
)

// ── Ownership metrics ─────────────────────────────────────────────────────────

// OwnershipDenialsTotal counts mutations rejected because the caller is not the owner.
// Label:
//   - resource: "movie" or "user"
var OwnershipDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ownership_denials_total",
		Help:      "Total number of mutations rejected by the ownership guard.",
	},
	[]string{"resource"},
)

// MovieMutationsTotal counts successful movie writes.
// Label:
//   - operation: "create", "update" or "delete"
var MovieMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "movie_mutations_total",
		Help:      "Total number of successful movie writes, by operation.",
	},
	[]string{"operation"},
)
