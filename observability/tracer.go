package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/speechkit/logger"
)

const instrumentationName = "github.com/kbukum/speechkit"

// Target identifies the service to the OTLP collector. Both providers
// share it.
type Target struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// Endpoint is the collector's OTLP/HTTP host:port, e.g. "localhost:4318".
	Endpoint string
	Insecure bool
}

// resource merges the service identity into the SDK default. The service
// attributes are schemaless so the merge never conflicts on schema URL.
func (t Target) resource() (*resource.Resource, error) {
	return resource.Merge(resource.Default(), resource.NewSchemaless(
		semconv.ServiceName(t.ServiceName),
		semconv.ServiceVersion(t.ServiceVersion),
		semconv.DeploymentEnvironment(t.Environment),
	))
}

// InitTracer installs a batching OTLP/HTTP tracer provider and W3C
// propagation globally. The caller shuts the provider down.
func InitTracer(ctx context.Context, t Target, sampleRate float64) (*sdktrace.TracerProvider, error) {
	res, err := t.resource()
	if err != nil {
		return nil, fmt.Errorf("trace resource: %w", err)
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(t.Endpoint)}
	if t.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sampler(sampleRate))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	logger.Info("Tracing enabled", logger.Fields("endpoint", t.Endpoint, "sample_rate", sampleRate))
	return tp, nil
}

func sampler(rate float64) sdktrace.Sampler {
	if rate >= 1 {
		return sdktrace.AlwaysSample()
	}
	if rate <= 0 {
		return sdktrace.NeverSample()
	}
	return sdktrace.TraceIDRatioBased(rate)
}

// StartSpan starts a span on the global provider's service tracer.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, name, opts...)
}

// SetSpanAttribute sets an attribute on the recording span in ctx. Values
// of other types are dropped.
func SetSpanAttribute(ctx context.Context, key string, value any) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	var kv attribute.KeyValue
	switch v := value.(type) {
	case string:
		kv = attribute.String(key, v)
	case int:
		kv = attribute.Int(key, v)
	case int64:
		kv = attribute.Int64(key, v)
	case float64:
		kv = attribute.Float64(key, v)
	case bool:
		kv = attribute.Bool(key, v)
	case []string:
		kv = attribute.StringSlice(key, v)
	default:
		return
	}
	span.SetAttributes(kv)
}

// SetSpanError records err on the recording span in ctx.
func SetSpanError(ctx context.Context, err error) {
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.RecordError(err)
	}
}

// Span names of the transcription pipeline.
const (
	SpanTranscribeRequest   = "transcribe.request"
	SpanAudioNormalize      = "audio.normalize"
	SpanTranscriptionInvoke = "transcription.invoke"
)

// Attribute keys.
const (
	AttrServiceName   = "service.name"
	AttrOperationName = "operation.name"
	AttrRequestID     = "request.id"
	AttrProvider      = "transcription.provider"
	AttrAudioChannels = "audio.channels"
	AttrAudioRate     = "audio.sample_rate"
	AttrAudioDuration = "audio.duration_s"
	AttrAudioModified = "audio.modified"
	AttrDurationMs    = "duration_ms"
	AttrStatus        = "status"
	AttrErrorCode     = "error.code"
)
