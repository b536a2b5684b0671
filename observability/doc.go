// Package observability wires OpenTelemetry tracing and metrics for the
// transcription pipeline.
//
// Both exporters speak OTLP over HTTP and are off unless enabled in config.
// Without an SDK provider the global otel providers are no-ops, so spans and
// instruments can be used unconditionally.
//
//	tel := observability.NewTelemetry(cfg.Observability, "speech-api", version)
//	app.RegisterComponent(tel)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanAudioNormalize)
//	defer span.End()
package observability
