package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// DomainMetrics counts published domain events by kind. It reads the
// global meter provider, so it is a no-op until InitTelemetry runs.
type DomainMetrics struct {
	events metric.Int64Counter
}

func NewDomainMetrics() *DomainMetrics {
	meter := otel.Meter(instrumentationName)
	events, _ := meter.Int64Counter(
		"hms_domain_events_total",
		metric.WithDescription("Domain events published, by kind and outcome"),
		metric.WithUnit("{event}"),
	)
	return &DomainMetrics{events: events}
}

func (m *DomainMetrics) EventPublished(ctx context.Context, kind string, err error) {
	if m == nil || m.events == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.events.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("outcome", outcome),
	))
}
