package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "remind"

// Auth event labels
const (
	AuthSignUp  = "sign_up"
	AuthSignIn  = "sign_in"
	AuthLogout  = "logout"
	AuthReissue = "reissue"

	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Reconcile collection labels
const (
	CollectionPortfolioSkill = "portfolio_skill"
	CollectionProjectSkill   = "project_skill"
	CollectionProjectImg     = "project_img"
)

var (
	// HTTPRequestsTotal counts requests by method, route and status
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration observes request latency in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	authEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_events_total",
		Help:      "Authentication lifecycle events by result.",
	}, []string{"event", "result"})

	likeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "like_toggles_total",
		Help:      "Portfolio like toggles by direction.",
	}, []string{"direction"})

	reconcileChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reconcile_changes_total",
		Help:      "Child rows inserted or deleted by collection reconciliation.",
	}, []string{"collection", "op"})
)

// ObserveAuth records one auth event; a nil err counts as success
func ObserveAuth(event string, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	authEvents.WithLabelValues(event, result).Inc()
}

// ObserveLike records a like (true) or unlike (false)
func ObserveLike(liked bool) {
	direction := "unlike"
	if liked {
		direction = "like"
	}
	likeToggles.WithLabelValues(direction).Inc()
}

// ObserveReconcile records the inserts and deletes applied to a collection
func ObserveReconcile(collection string, created, deleted int) {
	if created > 0 {
		reconcileChanges.WithLabelValues(collection, "insert").Add(float64(created))
	}
	if deleted > 0 {
		reconcileChanges.WithLabelValues(collection, "delete").Add(float64(deleted))
	}
}
