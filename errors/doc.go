// Package errors defines the error values speechkit returns to clients.
//
// An *AppError carries a machine-readable code, a message, the HTTP status
// it maps to and a retryable flag. Each audio normalization and
// transcription failure kind has its own constructor, so handlers map
// failures to a status without inspecting messages. ToResponse renders the
// JSON envelope; the cause stays server-side.
package errors
