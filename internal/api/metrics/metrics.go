// Package metrics defines and registers all custom Prometheus metrics for the
// course portal. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "courseportal"

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success", "missing_fields", "password_mismatch", "email_taken", "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionResolutionsTotal counts token-to-user resolutions performed by the
// session middleware.
// Label:
//   - result: "hit" (valid session) or "miss" (absent/expired/invalid)
var SessionResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_resolutions_total",
		Help:      "Total number of session cookie resolutions, by result (hit/miss).",
	},
	[]string{"result"},
)

// PartViewsTotal counts detail-page views per course part.
var PartViewsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "part_views_total",
		Help:      "Total number of course part detail views, by part id.",
	},
	[]string{"part_id"},
)

// PartStartsTotal counts "start part" submissions per course part.
var PartStartsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "part_starts_total",
		Help:      "Total number of course part starts, by part id.",
	},
	[]string{"part_id"},
)
