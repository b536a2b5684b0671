// Package logger wraps zerolog with the field conventions used across
// speechkit.
//
// Output is JSON or a compact console format. Loggers are derived per
// component and per request; WithContext adds the request ID and the
// OpenTelemetry trace and span IDs of the active span.
//
//	logging:
//	  level: "info"
//	  format: "json"
//
//	log := logger.WithComponent("audio").WithContext(ctx)
//	log.Info("normalized", logger.Fields("resampled", true))
package logger
