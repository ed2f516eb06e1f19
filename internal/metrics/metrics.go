package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	FilterRuns       *prometheus.CounterVec
	FilterResultSize prometheus.Histogram
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	BookmarkChanges  *prometheus.CounterVec
	ProfileViews     prometheus.Counter
}

// New registers the application collectors on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		FilterRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lazyintern_student_filter_runs_total",
				Help: "Student filter runs by tab and whether any criterion was active",
			},
			[]string{"tab", "active"},
		),
		FilterResultSize: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "lazyintern_student_filter_result_size",
				Help:    "Number of students returned by a filter run",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lazyintern_http_requests_total",
				Help: "HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lazyintern_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		BookmarkChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lazyintern_bookmark_changes_total",
				Help: "Bookmark additions and removals",
			},
			[]string{"op"},
		),
		ProfileViews: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "lazyintern_profile_views_total",
				Help: "Student profile views recorded",
			},
		),
	}
	reg.MustRegister(
		m.FilterRuns,
		m.FilterResultSize,
		m.HTTPRequests,
		m.HTTPDuration,
		m.BookmarkChanges,
		m.ProfileViews,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveFilter records one filter run. Safe on a nil receiver.
func (m *Metrics) ObserveFilter(tab string, active bool, matched int) {
	if m == nil {
		return
	}
	a := "false"
	if active {
		a = "true"
	}
	m.FilterRuns.WithLabelValues(tab, a).Inc()
	m.FilterResultSize.Observe(float64(matched))
}

func (m *Metrics) ObserveBookmark(op string) {
	if m == nil {
		return
	}
	m.BookmarkChanges.WithLabelValues(op).Inc()
}

func (m *Metrics) ObserveProfileView() {
	if m == nil {
		return
	}
	m.ProfileViews.Inc()
}

// ObserveHTTP records one request. route is the matched route pattern, not
// the raw path.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
