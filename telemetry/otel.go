package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/davidroman0O/goclone"

// OTelObserver records copy engine activity through OpenTelemetry metric
// instruments obtained from the global meter provider.
type OTelObserver struct {
	sessions metric.Int64Counter
	objects  metric.Int64Counter
	hits     metric.Int64Counter
	duration metric.Float64Histogram
}

// NewOTelObserver creates an observer backed by the global meter provider.
// Call it after the provider has been configured.
func NewOTelObserver() (*OTelObserver, error) {
	meter := otel.Meter(instrumentationName)

	sessions, err := meter.Int64Counter("goclone.sessions",
		metric.WithDescription("Top-level copy sessions."))
	if err != nil {
		return nil, err
	}
	objects, err := meter.Int64Counter("goclone.objects_copied",
		metric.WithDescription("Objects duplicated across all sessions."))
	if err != nil {
		return nil, err
	}
	hits, err := meter.Int64Counter("goclone.identity_hits",
		metric.WithDescription("Identity map hits (shared references and cycles)."))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("goclone.session_duration",
		metric.WithDescription("Duration of copy sessions."),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return &OTelObserver{
		sessions: sessions,
		objects:  objects,
		hits:     hits,
		duration: duration,
	}, nil
}

// SessionStart implements goclone.Observer.
func (o *OTelObserver) SessionStart() {
	o.sessions.Add(context.Background(), 1)
}

// SessionEnd implements goclone.Observer.
func (o *OTelObserver) SessionEnd(d time.Duration, objects int) {
	ctx := context.Background()
	o.objects.Add(ctx, int64(objects))
	o.duration.Record(ctx, d.Seconds())
}

// IdentityHit implements goclone.Observer.
func (o *OTelObserver) IdentityHit() {
	o.hits.Add(context.Background(), 1)
}

// TraceSession runs copy inside an OpenTelemetry span named name and records
// the result size attribute the callback reports. It uses the global tracer
// provider.
func TraceSession[T any](ctx context.Context, name string, copy func(ctx context.Context) T) T {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	out := copy(ctx)
	span.SetAttributes(attribute.String("goclone.operation", "deep_copy"))
	return out
}
