package transcription

import (
	"context"

	"github.com/kbukum/speechkit/provider"
)

// Provider is the interface that transcription backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Transcribe sends audio for transcription and returns the result.
	// A missing input file is reported as an error wrapping fs.ErrNotExist.
	Transcribe(ctx context.Context, req Request) (*Response, error)
}
