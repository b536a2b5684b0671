package transcription

import (
	"fmt"

	"github.com/kbukum/speechkit/validation"
)

const defaultProvider = "parakeet"

// Config selects and configures transcription providers.
type Config struct {
	// Provider is the primary backend name.
	Provider string `yaml:"provider" mapstructure:"provider" validate:"required"`
	// Fallback lists backends tried in order when the primary is unavailable.
	Fallback []string `yaml:"fallback" mapstructure:"fallback"`
	// Language is passed to every provider call when set.
	Language string `yaml:"language" mapstructure:"language"`
	// Providers holds the per-backend config sections keyed by name.
	Providers map[string]map[string]any `yaml:"providers" mapstructure:"providers"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = defaultProvider
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	check := validation.New()
	seen := map[string]bool{c.Provider: true}
	for _, name := range c.Fallback {
		check.Check(!seen[name], "fallback", fmt.Sprintf("provider %q listed twice", name))
		seen[name] = true
	}
	return check.Err()
}

// Chain returns the primary provider followed by the fallbacks.
func (c *Config) Chain() []string {
	return append([]string{c.Provider}, c.Fallback...)
}

func (c *Config) section(name string) map[string]any {
	if s, ok := c.Providers[name]; ok && s != nil {
		return s
	}
	return map[string]any{}
}
