package transcription

import (
	"context"

	"github.com/kbukum/speechkit/provider"
)

// NewRegistry creates a new provider registry for transcription providers.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}

// ManagerOption configures the transcription provider manager.
type ManagerOption func(*managerConfig)

type managerConfig struct {
	selector  provider.Selector[Provider]
	factories map[string]provider.Factory[Provider]
}

// WithSelector sets the provider selection strategy for the manager.
func WithSelector(s provider.Selector[Provider]) ManagerOption {
	return func(c *managerConfig) {
		c.selector = s
	}
}

// WithFactory registers a backend factory under name.
func WithFactory(name string, f provider.Factory[Provider]) ManagerOption {
	return func(c *managerConfig) {
		c.factories[name] = f
	}
}

// NewManager creates a new provider manager for transcription providers.
func NewManager(opts ...ManagerOption) *provider.Manager[Provider] {
	cfg := &managerConfig{
		selector:  &provider.HealthCheckSelector[Provider]{},
		factories: make(map[string]provider.Factory[Provider]),
	}
	for _, o := range opts {
		o(cfg)
	}
	m := provider.NewManager(NewRegistry(), cfg.selector)
	for name, f := range cfg.factories {
		m.Register(name, f)
	}
	return m
}

// NewManagerFor creates a manager whose selector follows cfg: the primary
// provider alone, or the primary then the fallbacks by availability.
func NewManagerFor(cfg Config, opts ...ManagerOption) *provider.Manager[Provider] {
	if len(cfg.Fallback) > 0 {
		opts = append([]ManagerOption{WithSelector(&provider.PrioritySelector[Provider]{Priority: cfg.Chain()})}, opts...)
	}
	return NewManager(opts...)
}

// Setup initializes every provider cfg names. Without fallbacks the primary
// becomes the default, so calls never depend on a health check.
func Setup(ctx context.Context, m *provider.Manager[Provider], cfg Config) error {
	for _, name := range cfg.Chain() {
		if err := m.Initialize(ctx, name, cfg.section(name)); err != nil {
			return err
		}
	}
	if len(cfg.Fallback) == 0 {
		return m.SetDefault(cfg.Provider)
	}
	return nil
}
