package local

import (
	"fmt"

	"github.com/kbukum/speechkit/storage"
)

// Config holds local filesystem storage configuration.
type Config struct {
	// BasePath is the root directory for local storage.
	BasePath string `mapstructure:"base_path" json:"base_path"`
	// MaxFileSize caps a single upload in bytes; zero means unlimited.
	MaxFileSize int64 `mapstructure:"max_file_size" json:"max_file_size"`
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.BasePath == "" {
		c.BasePath = storage.DefaultBasePath()
	}
}

// Validate checks that the local configuration is valid.
func (c *Config) Validate() error {
	if c.BasePath == "" {
		return fmt.Errorf("local: base_path is required")
	}
	if c.MaxFileSize < 0 {
		return fmt.Errorf("local: max_file_size must not be negative")
	}
	return nil
}
