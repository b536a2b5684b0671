// Package api exposes the transcription HTTP endpoints.
//
// POST /transcribe streams the multipart "file" field into scratch storage,
// normalizes it to 16 kHz mono, sends it to the configured transcription
// provider and answers with the transcript, one segment spanning the whole
// clip, and its CSV and SRT renderings. Every temporary file is removed
// before the handler returns.
package api
