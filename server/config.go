package server

import (
	"github.com/kbukum/speechkit/server/middleware"
	"github.com/kbukum/speechkit/util"
	"github.com/kbukum/speechkit/validation"
)

// Config holds HTTP server configuration.
type Config struct {
	Host            string                `yaml:"host" mapstructure:"host"`
	Port            int                   `yaml:"port" mapstructure:"port"`
	ReadTimeout     int                   `yaml:"read_timeout" mapstructure:"read_timeout"`         // seconds
	WriteTimeout    int                   `yaml:"write_timeout" mapstructure:"write_timeout"`       // seconds
	IdleTimeout     int                   `yaml:"idle_timeout" mapstructure:"idle_timeout"`         // seconds
	ShutdownTimeout int                   `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"` // seconds
	MaxBodySize     string                `yaml:"max_body_size" mapstructure:"max_body_size"`       // e.g. "100MB"
	CORS            middleware.CORSConfig `yaml:"cors" mapstructure:"cors"`
}

// ApplyDefaults sets sensible default values for unset fields. The write
// timeout covers a whole transcription, which can take minutes on CPU.
func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = 8000
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 60
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 600
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 120
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 30
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "100MB"
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	if len(c.CORS.AllowedMethods) == 0 {
		c.CORS.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-Id"}
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	_, sizeErr := util.ParseSize(c.MaxBodySize)
	return validation.New().
		Range("port", c.Port, 0, 65535).
		Check(c.ReadTimeout >= 0, "read_timeout", "must not be negative").
		Check(c.WriteTimeout >= 0, "write_timeout", "must not be negative").
		Check(c.IdleTimeout >= 0, "idle_timeout", "must not be negative").
		Check(c.ShutdownTimeout >= 0, "shutdown_timeout", "must not be negative").
		Check(c.MaxBodySize == "" || sizeErr == nil, "max_body_size", "must be a size such as 100MB").
		Err()
}

// MaxBodyBytes returns MaxBodySize in bytes, or DefaultMaxBodySize when it
// does not parse.
func (c *Config) MaxBodyBytes() int64 {
	if n, err := util.ParseSize(c.MaxBodySize); err == nil {
		return n
	}
	return middleware.DefaultMaxBodySize
}
