package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/queueaway/queueaway"

// Metrics holds all application metrics
type Metrics struct {
	RequestCount      metric.Int64Counter
	RequestDuration   metric.Float64Histogram
	SimulatorTicks    metric.Int64Counter
	PositionAdvances  metric.Int64Counter
	NotificationsSent metric.Int64Counter
}

// Setup initializes OpenTelemetry
func Setup(ctx context.Context, serviceName, serviceVersion, endpoint string) (func(context.Context) error, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	traceExporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	shutdown := func(ctx context.Context) error {
		return tracerProvider.Shutdown(ctx)
	}

	return shutdown, nil
}

// InitMetrics initializes application metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter(instrumentationName)

	requestCount, err := meter.Int64Counter(
		"http.server.request.count",
		metric.WithDescription("Number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	simulatorTicks, err := meter.Int64Counter(
		"queue.simulator.tick.count",
		metric.WithDescription("Number of position simulator ticks"),
	)
	if err != nil {
		return nil, err
	}

	positionAdvances, err := meter.Int64Counter(
		"queue.simulator.advance.count",
		metric.WithDescription("Number of ticks that advanced a position"),
	)
	if err != nil {
		return nil, err
	}

	notificationsSent, err := meter.Int64Counter(
		"queue.notifications.sent.count",
		metric.WithDescription("Number of notifications dispatched"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		RequestCount:      requestCount,
		RequestDuration:   requestDuration,
		SimulatorTicks:    simulatorTicks,
		PositionAdvances:  positionAdvances,
		NotificationsSent: notificationsSent,
	}, nil
}

// StartSpan starts a new trace span
func StartSpan(ctx context.Context, spanName string) (context.Context, trace.Span) {
	tracer := otel.Tracer(instrumentationName)
	return tracer.Start(ctx, spanName)
}

// SetSpanAttributes sets attributes on a span
func SetSpanAttributes(span trace.Span, attrs ...attribute.KeyValue) {
	span.SetAttributes(attrs...)
}

// RecordRequestMetric records an HTTP request metric
func RecordRequestMetric(ctx context.Context, metrics *Metrics, method, path string, statusCode int, duration time.Duration) {
	if metrics == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("http.route", path),
		attribute.Int("http.status_code", statusCode),
	}

	metrics.RequestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	metrics.RequestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordTickMetric records one simulator tick for a queue
func RecordTickMetric(ctx context.Context, metrics *Metrics, queueID string, advanced bool) {
	if metrics == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("queue.id", queueID),
	}
	metrics.SimulatorTicks.Add(ctx, 1, metric.WithAttributes(attrs...))
	if advanced {
		metrics.PositionAdvances.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordNotificationMetric records one dispatched notification
func RecordNotificationMetric(ctx context.Context, metrics *Metrics, class string, channel string) {
	if metrics == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("notification.class", class),
		attribute.String("notification.channel", channel),
	}
	metrics.NotificationsSent.Add(ctx, 1, metric.WithAttributes(attrs...))
}
