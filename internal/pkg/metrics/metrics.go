// Package metrics defines and registers all custom Prometheus metrics for the
// college event platform API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and exposed on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "campus_events"

// Registration outcome label values.
const (
	ResultRegistered = "registered"
	ResultFull       = "full"
	ResultDuplicate  = "duplicate"
	ResultNotFound   = "not_found"
	ResultError      = "error"
)

// ── Registration metrics ──────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "registered", "full", "duplicate", "not_found" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of event registration attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationGuardTotal counts fast-path duplicate checks.
// Label:
//   - result: "hit" (marker present, rejected early) or "miss"
var RegistrationGuardTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registration_guard_total",
		Help:      "Total number of registration guard checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// EventsCreatedTotal counts newly created events.
// Label:
//   - category: the event category tag (e.g. "tech")
var EventsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_created_total",
		Help:      "Total number of events created, by category.",
	},
	[]string{"category"},
)

// RecommendationsServedTotal counts recommendation responses.
// Label:
//   - source: "interests" when matched on interests, "popular" for the fallback
var RecommendationsServedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recommendations_served_total",
		Help:      "Total number of recommendation lists served, by selection source.",
	},
	[]string{"source"},
)

// ── Account metrics ───────────────────────────────────────────────────────────

// UsersRegisteredTotal counts sign-ups.
// Label:
//   - role: "student", "organizer" or "admin"
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of user accounts created, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
