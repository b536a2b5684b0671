// Package transcription turns a normalized audio file into a transcript.
//
// Speech recognition is delegated to a Provider, usually an HTTP sidecar
// that keeps the model loaded:
//
//   - transcription/parakeet: OpenAI-compatible /v1/audio/transcriptions server
//   - transcription/whisper: faster-whisper sidecar
//
// Providers are built from config by a provider.Manager and called through
// the Invoker, which maps failures onto the service error taxonomy and
// wraps the text into a single segment covering the whole clip.
//
// # Usage
//
//	comp := transcription.NewComponent(cfg,
//		transcription.WithFactory(parakeet.ProviderName, parakeet.Factory()),
//	)
//	inv := transcription.NewInvoker(comp.Manager())
//	t, err := inv.Transcribe(ctx, path, duration)
package transcription
