package cli

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics records engine hooks for a served scene. It implements both
// observability.SpiderHooks and observability.RegistryHooks and is handed to
// the engine per instance, so several scenes never share counters.
type metrics struct {
	scene    string
	registry *prometheus.Registry

	Transitions    *prometheus.CounterVec
	ClusterSize    *prometheus.HistogramVec
	TransitionTime *prometheus.HistogramVec
	Clicks         *prometheus.CounterVec
	Formats        *prometheus.CounterVec
	FormatTime     *prometheus.HistogramVec
	Tracked        *prometheus.GaugeVec
	Requests       *prometheus.CounterVec
}

func newMetrics(sceneName string) *metrics {
	registry := prometheus.NewRegistry()

	m := &metrics{
		scene:    sceneName,
		registry: registry,

		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spiderfy_transitions_total",
			Help: "Completed spiderfy and unspiderfy transitions",
		}, []string{"scene", "transition", "mode"}),

		ClusterSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "spiderfy_cluster_size",
			Help:    "Markers fanned out per spiderfy",
			Buckets: prometheus.LinearBuckets(2, 2, 10),
		}, []string{"scene", "mode"}),

		TransitionTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "spiderfy_transition_seconds",
			Help:    "Time spent inside a transition",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"scene", "transition"}),

		Clicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spiderfy_clicks_total",
			Help: "Clicks passed through as plain marker clicks",
		}, []string{"scene"}),

		Formats: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spiderfy_format_passes_total",
			Help: "Status recomputation passes",
		}, []string{"scene", "result"}),

		FormatTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "spiderfy_format_seconds",
			Help:    "Status recomputation duration",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"scene"}),

		Tracked: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "spiderfy_tracked_markers",
			Help: "Markers currently tracked by the engine",
		}, []string{"scene"}),

		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spiderfy_http_requests_total",
			Help: "HTTP requests handled, by route and status code",
		}, []string{"scene", "route", "code"}),
	}

	registry.MustRegister(
		m.Transitions,
		m.ClusterSize,
		m.TransitionTime,
		m.Clicks,
		m.Formats,
		m.FormatTime,
		m.Tracked,
		m.Requests,
	)
	registry.MustRegister(prometheus.NewGoCollector())

	return m
}

// Handler serves the metrics registry.
func (m *metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// OnSpiderfy implements observability.SpiderHooks.
func (m *metrics) OnSpiderfy(count int, mode string, d time.Duration) {
	m.Transitions.WithLabelValues(m.scene, "spiderfy", mode).Inc()
	m.ClusterSize.WithLabelValues(m.scene, mode).Observe(float64(count))
	m.TransitionTime.WithLabelValues(m.scene, "spiderfy").Observe(d.Seconds())
}

// OnUnspiderfy implements observability.SpiderHooks.
func (m *metrics) OnUnspiderfy(count int, d time.Duration) {
	m.Transitions.WithLabelValues(m.scene, "unspiderfy", "none").Inc()
	m.TransitionTime.WithLabelValues(m.scene, "unspiderfy").Observe(d.Seconds())
}

// OnClick implements observability.SpiderHooks.
func (m *metrics) OnClick() {
	m.Clicks.WithLabelValues(m.scene).Inc()
}

// OnFormat implements observability.SpiderHooks.
func (m *metrics) OnFormat(count int, d time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.Formats.WithLabelValues(m.scene, result).Inc()
	m.FormatTime.WithLabelValues(m.scene).Observe(d.Seconds())
}

// OnTrack implements observability.RegistryHooks.
func (m *metrics) OnTrack(total int) {
	m.Tracked.WithLabelValues(m.scene).Set(float64(total))
}

// OnUntrack implements observability.RegistryHooks.
func (m *metrics) OnUntrack(total int) {
	m.Tracked.WithLabelValues(m.scene).Set(float64(total))
}

// ObserveRequest counts one handled HTTP request.
func (m *metrics) ObserveRequest(route string, code int) {
	m.Requests.WithLabelValues(m.scene, route, strconv.Itoa(code)).Inc()
}
