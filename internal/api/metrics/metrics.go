// Package metrics defines all custom Prometheus metrics for the Rank It Pro
// API. It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rankitpro"

// ── Authorization metrics ─────────────────────────────────────────────────────

// AuthFailuresTotal counts authentication failures at the gates.
// Label:
//   - reason: "no_session", "invalid_session", "session_lookup_failed",
//     "user_not_found", "account_disabled"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected with 401 by the auth gates.",
	},
	[]string{"reason"},
)

// AccessDeniedTotal counts authorization denials (valid session,
// insufficient capability). Label:
//   - gate: "super_admin", "company_admin", "tenant"
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests rejected with 403, by gate.",
	},
	[]string{"gate"},
)

// LoginsTotal counts login attempts on the session endpoint.
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

// RateLimitedTotal counts requests rejected by the fixed-window limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected with 429.",
	},
)

// ── Domain metrics ────────────────────────────────────────────────────────────

// CheckInsCreatedTotal counts accepted check-ins.
// Label:
//   - source: "web" or "mobile_sync"
var CheckInsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "check_ins_created_total",
		Help:      "Total number of check-ins accepted, by submission source.",
	},
	[]string{"source"},
)

// ReviewJobsProcessedTotal counts review-request sends performed by the
// follow-up workers. Label:
//   - kind: "initial" or "follow_up"
var ReviewJobsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "review_jobs_processed_total",
		Help:      "Total number of review sends processed by the dispatcher.",
	},
	[]string{"kind"},
)

// ReviewQueueDepth tracks pending jobs in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index
var ReviewQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "review_queue_depth",
		Help:      "Current number of review jobs pending in each worker channel.",
	},
	[]string{"worker_id"},
)

// BlogPostsPublishedTotal counts successful WordPress publishes.
var BlogPostsPublishedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "blog_posts_published_total",
		Help:      "Total number of blog posts syndicated to WordPress.",
	},
)
