// Package component defines lifecycle-managed infrastructure pieces of the
// speech service (HTTP server, scratch storage, transcription providers,
// telemetry) and a registry that starts them in order and stops them in
// reverse.
package component
