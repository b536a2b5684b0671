package audio

import (
	"github.com/kbukum/speechkit/util"
	"github.com/kbukum/speechkit/validation"
)

// Config configures audio normalization.
type Config struct {
	// SampleRate is the model's expected frame rate.
	SampleRate int `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gt=0"`
	// NativeExtensions are decoded in-process; everything else goes to ffmpeg.
	NativeExtensions []string `yaml:"native_extensions" mapstructure:"native_extensions"`
	// FFmpeg locates the ffmpeg and ffprobe binaries.
	FFmpeg FFmpegConfig `yaml:"ffmpeg" mapstructure:"ffmpeg"`
}

// FFmpegConfig locates the ffmpeg tools.
type FFmpegConfig struct {
	FFmpegPath  string `yaml:"ffmpeg_path" mapstructure:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path" mapstructure:"ffprobe_path"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	c.SampleRate = util.Coalesce(c.SampleRate, TargetSampleRate)
	c.NativeExtensions = util.NormalizeExtensions(c.NativeExtensions)
	if len(c.NativeExtensions) == 0 {
		c.NativeExtensions = []string{".wav"}
	}
	c.FFmpeg.FFmpegPath = util.Coalesce(c.FFmpeg.FFmpegPath, "ffmpeg")
	c.FFmpeg.FFprobePath = util.Coalesce(c.FFmpeg.FFprobePath, "ffprobe")
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
