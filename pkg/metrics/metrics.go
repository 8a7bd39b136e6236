package metrics

import "github.com/prometheus/client_golang/prometheus"

// HTTPMetrics records request counts and latencies for the API surface.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the HTTP metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Handled HTTP requests by method, path and status.",
	}, []string{"method", "path", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
	reg.MustRegister(requests, duration)
	return &HTTPMetrics{requests: requests, duration: duration}
}

// ObserveRequest records one handled request.
func (m *HTTPMetrics) ObserveRequest(method, path, status string, seconds float64) {
	if m == nil || m.requests == nil {
		return
	}
	m.requests.WithLabelValues(method, path, status).Inc()
	m.duration.WithLabelValues(method, path).Observe(seconds)
}

// ToolMetrics records conversational tool dispatches.
type ToolMetrics struct {
	dispatches *prometheus.CounterVec
}

// NewToolMetrics registers the tool dispatch metrics on the provided registerer.
func NewToolMetrics(reg prometheus.Registerer) *ToolMetrics {
	if reg == nil {
		return &ToolMetrics{}
	}
	dispatches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tool_dispatches_total",
		Help: "Agent tool executions by tool name and outcome.",
	}, []string{"tool", "outcome"})
	reg.MustRegister(dispatches)
	return &ToolMetrics{dispatches: dispatches}
}

// IncDispatch increments the dispatch counter for the named tool.
func (m *ToolMetrics) IncDispatch(tool, outcome string) {
	if m == nil || m.dispatches == nil {
		return
	}
	m.dispatches.WithLabelValues(tool, outcome).Inc()
}
