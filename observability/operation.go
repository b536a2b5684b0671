package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Outcome labels recorded on request metrics.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Operation follows one request through the pipeline. Fill the exported
// fields, call Begin once, then End with the request's final error. A nil
// Metrics skips metric recording.
type Operation struct {
	Service   string
	Name      string
	RequestID string
	Metrics   *Metrics

	span  trace.Span
	began time.Time
}

// Begin opens the root span and marks the request in flight. The returned
// context carries the span for Step and downstream calls.
func (op *Operation) Begin(ctx context.Context, spanName string) context.Context {
	op.began = time.Now()
	ctx, op.span = StartSpan(ctx, spanName, trace.WithAttributes(
		attribute.String(AttrServiceName, op.Service),
		attribute.String(AttrOperationName, op.Name),
		attribute.String(AttrRequestID, op.RequestID),
	))
	if op.Metrics != nil {
		op.Metrics.RecordRequestStart(ctx)
	}
	return ctx
}

// End closes the root span and records the outcome.
func (op *Operation) End(ctx context.Context, err error) {
	elapsed := op.Elapsed()
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
		op.span.RecordError(err)
		op.span.SetStatus(codes.Error, err.Error())
	}
	op.span.SetAttributes(
		attribute.String(AttrStatus, outcome),
		attribute.Int64(AttrDurationMs, elapsed.Milliseconds()),
	)
	op.span.End()

	if op.Metrics != nil {
		op.Metrics.RecordRequestEnd(ctx, op.Service, op.Name, outcome, elapsed)
	}
}

// Step runs fn in a child span and records it as a pipeline operation of
// component. fn's error is returned unchanged.
func (op *Operation) Step(ctx context.Context, component, spanName string, fn func(context.Context) error) error {
	ctx, span := StartSpan(ctx, spanName)
	defer span.End()

	began := time.Now()
	err := fn(ctx)
	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if op.Metrics != nil {
		op.Metrics.RecordOperation(ctx, component, spanName, status, time.Since(began))
	}
	return err
}

// Elapsed is the time since Begin.
func (op *Operation) Elapsed() time.Duration {
	return time.Since(op.began)
}
