package observability

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/speechkit/component"
	"github.com/kbukum/speechkit/logger"
)

// Telemetry is the component owning the tracer and meter providers.
type Telemetry struct {
	cfg     Config
	target  Target
	metrics *Metrics

	tp *sdktrace.TracerProvider
	mp *sdkmetric.MeterProvider
}

var _ component.Component = (*Telemetry)(nil)

// NewTelemetry creates the component. Metrics are created on the global
// meter right away; they start exporting once Start installs the SDK
// provider.
func NewTelemetry(cfg Config, serviceName, version, environment string) (*Telemetry, error) {
	cfg.ApplyDefaults()
	metrics, err := NewMetrics(otel.Meter(instrumentationName))
	if err != nil {
		return nil, err
	}
	return &Telemetry{
		cfg: cfg,
		target: Target{
			ServiceName:    serviceName,
			ServiceVersion: version,
			Environment:    environment,
			Endpoint:       cfg.Endpoint,
			Insecure:       cfg.Insecure,
		},
		metrics: metrics,
	}, nil
}

// Metrics returns the pipeline instruments.
func (t *Telemetry) Metrics() *Metrics { return t.metrics }

// Name implements component.Component.
func (t *Telemetry) Name() string { return "telemetry" }

// Start installs the OTLP providers when enabled.
func (t *Telemetry) Start(ctx context.Context) error {
	if !t.cfg.Enabled {
		logger.Debug("Telemetry disabled")
		return nil
	}

	tp, err := InitTracer(ctx, t.target, t.cfg.SampleRate)
	if err != nil {
		return err
	}
	mp, err := InitMeter(ctx, t.target, t.cfg.MetricInterval)
	if err != nil {
		return errors.Join(err, tp.Shutdown(ctx))
	}
	t.tp, t.mp = tp, mp
	return nil
}

// Stop flushes and shuts down the providers.
func (t *Telemetry) Stop(ctx context.Context) error {
	var errs []error
	if t.mp != nil {
		errs = append(errs, t.mp.Shutdown(ctx))
	}
	if t.tp != nil {
		errs = append(errs, t.tp.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

// Health implements component.Component.
func (t *Telemetry) Health(ctx context.Context) component.Health {
	h := component.Health{Name: t.Name(), Status: component.StatusHealthy}
	if !t.cfg.Enabled {
		h.Message = "disabled"
	}
	return h
}

// Describe implements component.Describable.
func (t *Telemetry) Describe() component.Description {
	details := "disabled"
	if t.cfg.Enabled {
		details = fmt.Sprintf("otlp/http %s sample=%.2f", t.cfg.Endpoint, t.cfg.SampleRate)
	}
	return component.Description{Name: "OpenTelemetry", Type: "telemetry", Details: details}
}
