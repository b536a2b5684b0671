package audio

import (
	"context"
	"errors"
)

// TargetSampleRate is the frame rate the speech model expects.
const TargetSampleRate = 16000

// ErrUnsupportedFormat is returned by a Decoder that cannot read the file.
// A Dispatcher then tries its fallback decoder.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Decoder loads audio files.
type Decoder interface {
	Load(ctx context.Context, path string) (Clip, error)
}

// Clip is a decoded audio clip. SetFrameRate and SetChannels transform the
// clip in place; Export writes it as PCM WAV.
type Clip interface {
	Channels() int
	FrameRate() int
	// Duration is in seconds.
	Duration() float64
	SetFrameRate(hz int) error
	SetChannels(n int) error
	Export(ctx context.Context, path string) error
}
