package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/speechkit/logger"
)

// InitMeter installs a periodic OTLP/HTTP meter provider globally. A zero
// interval keeps the SDK default. The caller shuts the provider down.
func InitMeter(ctx context.Context, t Target, interval time.Duration) (*sdkmetric.MeterProvider, error) {
	res, err := t.resource()
	if err != nil {
		return nil, fmt.Errorf("metric resource: %w", err)
	}

	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(t.Endpoint)}
	if t.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("metric exporter: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(interval))
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Info("Metrics export enabled", logger.Fields("endpoint", t.Endpoint, "interval", interval.String()))
	return mp, nil
}

// Metrics holds the transcription pipeline instruments.
type Metrics struct {
	requestTotal      metric.Int64Counter
	requestDuration   metric.Float64Histogram
	requestActive     metric.Int64UpDownCounter
	operationTotal    metric.Int64Counter
	operationDuration metric.Float64Histogram
	audioDuration     metric.Float64Histogram
	errorTotal        metric.Int64Counter
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	if m.requestTotal, err = meter.Int64Counter("transcribe.requests",
		metric.WithDescription("Transcription requests by outcome"),
	); err != nil {
		return nil, fmt.Errorf("creating transcribe.requests counter: %w", err)
	}
	if m.requestDuration, err = meter.Float64Histogram("transcribe.duration",
		metric.WithDescription("End-to-end transcription request time"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating transcribe.duration histogram: %w", err)
	}
	if m.requestActive, err = meter.Int64UpDownCounter("transcribe.active",
		metric.WithDescription("Transcription requests in flight"),
	); err != nil {
		return nil, fmt.Errorf("creating transcribe.active counter: %w", err)
	}
	if m.operationTotal, err = meter.Int64Counter("pipeline.operations",
		metric.WithDescription("Pipeline step executions by status"),
	); err != nil {
		return nil, fmt.Errorf("creating pipeline.operations counter: %w", err)
	}
	if m.operationDuration, err = meter.Float64Histogram("pipeline.operation.duration",
		metric.WithDescription("Pipeline step time"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating pipeline.operation.duration histogram: %w", err)
	}
	if m.audioDuration, err = meter.Float64Histogram("audio.duration",
		metric.WithDescription("Duration of uploaded audio"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating audio.duration histogram: %w", err)
	}
	if m.errorTotal, err = meter.Int64Counter("pipeline.errors",
		metric.WithDescription("Errors by code and component"),
	); err != nil {
		return nil, fmt.Errorf("creating pipeline.errors counter: %w", err)
	}
	return m, nil
}

// RecordRequestStart increments the in-flight count.
func (m *Metrics) RecordRequestStart(ctx context.Context) {
	m.requestActive.Add(ctx, 1)
}

// RecordRequestEnd decrements the in-flight count and records the request.
func (m *Metrics) RecordRequestEnd(ctx context.Context, service, operation, status string, duration time.Duration) {
	m.requestActive.Add(ctx, -1)
	m.requestTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("service", service),
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
	m.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("service", service),
		attribute.String("operation", operation),
	))
}

// RecordOperation records one pipeline step.
func (m *Metrics) RecordOperation(ctx context.Context, component, operation, status string, duration time.Duration) {
	m.operationTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("component", component),
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
	m.operationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("component", component),
		attribute.String("operation", operation),
	))
}

// RecordAudioDuration records the duration of an accepted upload.
func (m *Metrics) RecordAudioDuration(ctx context.Context, seconds float64, channels, sampleRate int) {
	m.audioDuration.Record(ctx, seconds, metric.WithAttributes(
		attribute.Int("channels", channels),
		attribute.Int("sample_rate", sampleRate),
	))
}

// RecordError counts an error by code and component.
func (m *Metrics) RecordError(ctx context.Context, code, component string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", code),
		attribute.String("component", component),
	))
}
