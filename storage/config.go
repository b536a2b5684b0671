package storage

import (
	"os"
	"path/filepath"

	"github.com/kbukum/speechkit/validation"
)

// Provider constants for supported storage backends.
const (
	ProviderLocal = "local"
)

// Default configuration values.
const (
	DefaultProvider    = ProviderLocal
	DefaultMaxFileSize = int64(100 * 1024 * 1024) // 100 MB
)

// DefaultBasePath is the scratch directory under the system temp dir.
func DefaultBasePath() string {
	return filepath.Join(os.TempDir(), "speechkit")
}

// Config holds storage configuration.
type Config struct {
	// Provider selects the storage backend.
	Provider string `mapstructure:"provider" json:"provider" validate:"oneof=local"`

	// BasePath is the root directory for local storage.
	BasePath string `mapstructure:"base_path" json:"base_path" validate:"required"`

	// MaxFileSize is the maximum allowed file size in bytes.
	MaxFileSize int64 `mapstructure:"max_file_size" json:"max_file_size" validate:"gt=0"`
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = DefaultProvider
	}
	if c.BasePath == "" {
		c.BasePath = DefaultBasePath()
	}
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = DefaultMaxFileSize
	}
}

// Validate checks that the configuration is valid for the selected provider.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
