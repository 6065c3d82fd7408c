package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Fetch outcomes recorded on the fetch counter.
const (
	OutcomeSuccess        = "success"
	OutcomeTransportError = "transport_error"
	OutcomeParseError     = "parse_error"
)

// FetchMetrics holds the instruments recorded per weather fetch.
type FetchMetrics struct {
	fetchTotal    metric.Int64Counter
	fetchDuration metric.Float64Histogram
	responseSize  metric.Int64Histogram
}

// NewFetchMetrics creates the fetch instruments on the given meter.
func NewFetchMetrics(meter metric.Meter) (*FetchMetrics, error) {
	fetchTotal, err := meter.Int64Counter(
		"onecall.fetch.total",
		metric.WithDescription("Total number of One Call fetches by outcome"),
		metric.WithUnit("{fetch}"),
	)
	if err != nil {
		return nil, err
	}

	fetchDuration, err := meter.Float64Histogram(
		"onecall.fetch.duration",
		metric.WithDescription("Duration of One Call fetches including parsing"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	responseSize, err := meter.Int64Histogram(
		"onecall.response.size",
		metric.WithDescription("Size of One Call response bodies"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	return &FetchMetrics{
		fetchTotal:    fetchTotal,
		fetchDuration: fetchDuration,
		responseSize:  responseSize,
	}, nil
}

// Record records one fetch. A nil receiver records nothing.
func (m *FetchMetrics) Record(ctx context.Context, outcome string, elapsed time.Duration, bodyBytes int64) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.fetchTotal.Add(ctx, 1, attrs)
	m.fetchDuration.Record(ctx, elapsed.Seconds(), attrs)
	if bodyBytes > 0 {
		m.responseSize.Record(ctx, bodyBytes)
	}
}
