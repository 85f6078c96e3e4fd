package metrics

import (
	"net/http"
	"time"
)

// Metrics interface for dependency injection
type Metrics interface {
	RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration)
	RecordFetch(source, status string)
	RecordAggregation(tier string, duration time.Duration)
	RecordTick(duration time.Duration)
	RecordDispatch(status string)
	Handler() http.Handler
}

// NoOpMetrics provides a no-op implementation
type NoOpMetrics struct{}

func (m *NoOpMetrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
}
func (m *NoOpMetrics) RecordFetch(source, status string)              {}
func (m *NoOpMetrics) RecordAggregation(tier string, d time.Duration) {}
func (m *NoOpMetrics) RecordTick(d time.Duration)                     {}
func (m *NoOpMetrics) RecordDispatch(status string)                   {}
func (m *NoOpMetrics) Handler() http.Handler                          { return http.NotFoundHandler() }

// Global metrics instance
var globalMetrics Metrics = &NoOpMetrics{}

// Init initializes metrics (no-op for now, can be extended with Prometheus)
func Init() {
}

// Handler returns the metrics handler
func Handler() http.Handler {
	return globalMetrics.Handler()
}

// RecordHTTPRequest records HTTP request metrics
func RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	globalMetrics.RecordHTTPRequest(method, endpoint, statusCode, duration)
}

// RecordFetch records the outcome of a single upstream fetch
func RecordFetch(source, status string) {
	globalMetrics.RecordFetch(source, status)
}

// RecordAggregation records which cascade tier answered and how long it took
func RecordAggregation(tier string, duration time.Duration) {
	globalMetrics.RecordAggregation(tier, duration)
}

// RecordTick records one scheduler tick evaluation
func RecordTick(duration time.Duration) {
	globalMetrics.RecordTick(duration)
}

// RecordDispatch records the outcome of one subscriber delivery
func RecordDispatch(status string) {
	globalMetrics.RecordDispatch(status)
}
