package telemetry

import (
	"context"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all custom metrics for the service. Per-operation counts
// fall out of the HTTP route labels; only concerns the route cannot carry
// get their own instrument.
type Metrics struct {
	HTTPRequestsTotal metric.Int64Counter
	HTTPDurationMs    metric.Float64Histogram

	// ConflictTotal counts registration conflicts by how they were
	// resolved.
	ConflictTotal metric.Int64Counter

	// StoreDurationMs tracks document store round trips.
	StoreDurationMs metric.Float64Histogram
}

// InitMetrics initializes all custom metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("github.com/dentalpoint/clinic-service")

	httpRequestsTotal, err := meter.Int64Counter(
		"http_server_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	httpDurationMs, err := meter.Float64Histogram(
		"http_server_duration_milliseconds",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	conflictTotal, err := meter.Int64Counter(
		"booking_conflict_total",
		metric.WithDescription("Total number of registration conflicts by resolution"),
		metric.WithUnit("{conflict}"),
	)
	if err != nil {
		return nil, err
	}

	storeDurationMs, err := meter.Float64Histogram(
		"docstore_request_duration_ms",
		metric.WithDescription("Document store request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	log.Println("✓ Custom metrics initialized")

	return &Metrics{
		HTTPRequestsTotal: httpRequestsTotal,
		HTTPDurationMs:    httpDurationMs,
		ConflictTotal:     conflictTotal,
		StoreDurationMs:   storeDurationMs,
	}, nil
}

// RecordHTTPRequest records an HTTP request metric
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, route string, statusCode int, durationMs float64) {
	attrs := []attribute.KeyValue{
		attribute.String("http_method", method),
		attribute.String("http_route", route),
		attribute.Int("http_status_code", statusCode),
	}

	m.HTTPRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.HTTPDurationMs.Record(ctx, durationMs, metric.WithAttributes(attrs...))
}

// RecordConflict records a registration conflict and how it was resolved
func (m *Metrics) RecordConflict(ctx context.Context, resolution string) {
	m.ConflictTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("resolution", resolution),
	))
}

// RecordStoreRequest records a document store request duration metric
func (m *Metrics) RecordStoreRequest(ctx context.Context, method string, durationMs float64) {
	m.StoreDurationMs.Record(ctx, durationMs, metric.WithAttributes(
		attribute.String("method", method),
	))
}
