package provider

import (
	"context"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Provider is the base interface all providers implement.
type Provider interface {
	// Name returns the provider's unique name.
	Name() string
	// IsAvailable checks if the provider is ready to handle requests.
	IsAvailable(ctx context.Context) bool
}

// Factory creates a provider instance from its config section.
type Factory[T Provider] func(cfg map[string]any) (T, error)

// DecodeConfig decodes a provider config section into out. Strings are
// converted to durations and numbers the way the service config loader does.
func DecodeConfig(cfg map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		TagName:          "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("provider config decoder: %w", err)
	}
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("decode provider config: %w", err)
	}
	return nil
}
