// Package wav decodes and encodes PCM WAV files in-process with go-audio.
package wav

import (
	"context"
	"fmt"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/kbukum/speechkit/audio"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
	exportBitDepth   = 16
)

// Decoder loads integer PCM WAV files.
type Decoder struct{}

var _ audio.Decoder = Decoder{}

// NewDecoder creates a Decoder.
func NewDecoder() Decoder { return Decoder{} }

// Load decodes the whole file into memory. Files that are not integer PCM
// WAV fail with audio.ErrUnsupportedFormat.
func (Decoder) Load(ctx context.Context, path string) (audio.Clip, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d := gowav.NewDecoder(f)
	d.ReadInfo()
	if err := d.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", audio.ErrUnsupportedFormat, err)
	}
	if d.NumChans == 0 || d.SampleRate == 0 {
		return nil, fmt.Errorf("%w: missing fmt chunk", audio.ErrUnsupportedFormat)
	}
	if d.WavAudioFormat != formatPCM && d.WavAudioFormat != formatExtensible {
		return nil, fmt.Errorf("%w: wav format tag %d", audio.ErrUnsupportedFormat, d.WavAudioFormat)
	}
	switch d.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d-bit samples", audio.ErrUnsupportedFormat, d.BitDepth)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode pcm: %w", err)
	}
	return NewClip(toFloat(buf.Data, int(d.BitDepth)), int(d.NumChans), int(d.SampleRate)), nil
}

// Clip is decoded audio held as interleaved samples in [-1, 1].
type Clip struct {
	samples  []float64
	channels int
	rate     int
}

var _ audio.Clip = (*Clip)(nil)

// NewClip wraps interleaved samples in [-1, 1].
func NewClip(samples []float64, channels, rate int) *Clip {
	return &Clip{samples: samples, channels: channels, rate: rate}
}

func (c *Clip) Channels() int  { return c.channels }
func (c *Clip) FrameRate() int { return c.rate }

// Frames returns the number of sample frames.
func (c *Clip) Frames() int {
	if c.channels == 0 {
		return 0
	}
	return len(c.samples) / c.channels
}

func (c *Clip) Duration() float64 {
	if c.rate == 0 {
		return 0
	}
	return float64(c.Frames()) / float64(c.rate)
}

// SetFrameRate resamples with linear interpolation.
func (c *Clip) SetFrameRate(hz int) error {
	if hz <= 0 {
		return fmt.Errorf("invalid frame rate %d", hz)
	}
	if c.rate <= 0 {
		return fmt.Errorf("clip has no frame rate")
	}
	if hz == c.rate {
		return nil
	}
	c.samples = resample(c.samples, c.channels, c.rate, hz)
	c.rate = hz
	return nil
}

// SetChannels downmixes to mono by averaging. Other conversions are not
// supported.
func (c *Clip) SetChannels(n int) error {
	switch {
	case n == c.channels:
		return nil
	case n != 1:
		return fmt.Errorf("cannot convert %d channels to %d", c.channels, n)
	case c.channels < 1:
		return fmt.Errorf("clip has no channels")
	}
	c.samples = downmix(c.samples, c.channels)
	c.channels = 1
	return nil
}

// Export writes the clip as 16-bit PCM WAV.
func (c *Clip) Export(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return WriteFile(path, c.samples, c.channels, c.rate)
}

// WriteFile writes interleaved samples in [-1, 1] as 16-bit PCM WAV.
func WriteFile(path string, samples []float64, channels, rate int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := gowav.NewEncoder(f, rate, exportBitDepth, channels, formatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           toInt16(samples),
		SourceBitDepth: exportBitDepth,
	}
	if err := enc.Write(buf); err != nil {
		_ = f.Close()
		return fmt.Errorf("write pcm: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("finalize wav: %w", err)
	}
	return f.Close()
}

func toFloat(data []int, bitDepth int) []float64 {
	out := make([]float64, len(data))
	if bitDepth == 8 {
		for i, v := range data {
			out[i] = float64(v-128) / 128
		}
		return out
	}
	scale := float64(int64(1) << (bitDepth - 1))
	for i, v := range data {
		out[i] = float64(v) / scale
	}
	return out
}

func toInt16(samples []float64) []int {
	out := make([]int, len(samples))
	for i, v := range samples {
		v = math.Max(-1, math.Min(1, v))
		out[i] = int(math.Round(v * math.MaxInt16))
	}
	return out
}

func resample(samples []float64, channels, from, to int) []float64 {
	frames := len(samples) / channels
	if frames == 0 {
		return nil
	}
	n := int(math.Round(float64(frames) * float64(to) / float64(from)))
	if n < 1 {
		n = 1
	}

	out := make([]float64, n*channels)
	step := float64(from) / float64(to)
	for i := 0; i < n; i++ {
		pos := float64(i) * step
		i0 := min(int(pos), frames-1)
		i1 := min(i0+1, frames-1)
		frac := pos - float64(i0)
		for ch := 0; ch < channels; ch++ {
			a := samples[i0*channels+ch]
			b := samples[i1*channels+ch]
			out[i*channels+ch] = a + (b-a)*frac
		}
	}
	return out
}

func downmix(samples []float64, channels int) []float64 {
	frames := len(samples) / channels
	out := make([]float64, frames)
	for i := range out {
		var sum float64
		for ch := 0; ch < channels; ch++ {
			sum += samples[i*channels+ch]
		}
		out[i] = sum / float64(channels)
	}
	return out
}
