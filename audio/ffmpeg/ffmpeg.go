// Package ffmpeg decodes any container ffmpeg understands by probing it
// with ffprobe and converting it with ffmpeg on export.
package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/kbukum/speechkit/audio"
)

// Decoder reads stream metadata with ffprobe.
type Decoder struct {
	ffmpeg  string
	ffprobe string
}

var _ audio.Decoder = (*Decoder)(nil)

// NewDecoder creates a Decoder using the configured binaries.
func NewDecoder(cfg audio.FFmpegConfig) *Decoder {
	d := &Decoder{ffmpeg: cfg.FFmpegPath, ffprobe: cfg.FFprobePath}
	if d.ffmpeg == "" {
		d.ffmpeg = "ffmpeg"
	}
	if d.ffprobe == "" {
		d.ffprobe = "ffprobe"
	}
	return d
}

// Available reports whether both binaries are on PATH.
func (d *Decoder) Available() bool {
	if _, err := exec.LookPath(d.ffmpeg); err != nil {
		return false
	}
	_, err := exec.LookPath(d.ffprobe)
	return err == nil
}

type streamReport struct {
	Streams []struct {
		CodecType  string `json:"codec_type"`
		Channels   int    `json:"channels"`
		SampleRate string `json:"sample_rate"`
		Duration   string `json:"duration"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Load reads the first audio stream of path.
func (d *Decoder) Load(ctx context.Context, path string) (audio.Clip, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	// ffprobe -v error -print_format json -show_streams -show_format <input>
	cmd := exec.CommandContext(ctx, d.ffprobe,
		"-v", "error",
		"-print_format", "json",
		"-show_streams",
		"-show_format",
		path,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	var out streamReport
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}
	for _, s := range out.Streams {
		if s.CodecType != "audio" {
			continue
		}
		rate, err := strconv.Atoi(s.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("parse sample rate %q: %w", s.SampleRate, err)
		}
		duration := parseSeconds(out.Format.Duration)
		if duration == 0 {
			duration = parseSeconds(s.Duration)
		}
		return &Clip{
			decoder:  d,
			source:   path,
			channels: s.Channels,
			rate:     rate,
			duration: duration,
		}, nil
	}
	return nil, fmt.Errorf("%w: no audio stream", audio.ErrUnsupportedFormat)
}

func parseSeconds(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// Clip records the requested conversion; Export runs it.
type Clip struct {
	decoder  *Decoder
	source   string
	channels int
	rate     int
	duration float64
}

var _ audio.Clip = (*Clip)(nil)

func (c *Clip) Channels() int     { return c.channels }
func (c *Clip) FrameRate() int    { return c.rate }
func (c *Clip) Duration() float64 { return c.duration }

func (c *Clip) SetFrameRate(hz int) error {
	if hz <= 0 {
		return fmt.Errorf("invalid frame rate %d", hz)
	}
	c.rate = hz
	return nil
}

func (c *Clip) SetChannels(n int) error {
	if n < 1 || n > c.channels {
		return fmt.Errorf("cannot convert %d channels to %d", c.channels, n)
	}
	c.channels = n
	return nil
}

// Export converts the source into 16-bit PCM WAV at the clip's rate and
// channel count.
func (c *Clip) Export(ctx context.Context, path string) error {
	// ffmpeg -y -i input -ar R -ac C -f wav output
	cmd := exec.CommandContext(ctx, c.decoder.ffmpeg,
		"-y", "-v", "error",
		"-i", c.source,
		"-ar", strconv.Itoa(c.rate),
		"-ac", strconv.Itoa(c.channels),
		"-acodec", "pcm_s16le",
		"-f", "wav",
		path,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
