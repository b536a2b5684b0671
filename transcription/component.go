package transcription

import (
	"context"
	"fmt"
	"strings"

	"github.com/kbukum/speechkit/component"
	"github.com/kbukum/speechkit/provider"
)

// Component owns the provider manager: providers are built on Start and
// closed on Stop.
type Component struct {
	cfg     Config
	manager *provider.Manager[Provider]
}

var _ component.Component = (*Component)(nil)

// NewComponent creates the component. opts register the backend factories.
func NewComponent(cfg Config, opts ...ManagerOption) *Component {
	cfg.ApplyDefaults()
	return &Component{cfg: cfg, manager: NewManagerFor(cfg, opts...)}
}

// Manager returns the provider manager; it is a valid Invoker Source.
func (c *Component) Manager() *provider.Manager[Provider] { return c.manager }

// Name implements component.Component.
func (c *Component) Name() string { return "transcription" }

// Start implements component.Component.
func (c *Component) Start(ctx context.Context) error {
	return Setup(ctx, c.manager, c.cfg)
}

// Stop implements component.Component.
func (c *Component) Stop(ctx context.Context) error {
	return c.manager.Close(ctx)
}

// Health reports whether a provider is ready to serve.
func (c *Component) Health(ctx context.Context) component.Health {
	h := component.Health{Name: c.Name()}
	p, err := c.manager.Get(ctx)
	switch {
	case err != nil:
		h.Status = component.StatusUnhealthy
		h.Message = err.Error()
	case !p.IsAvailable(ctx):
		h.Status = component.StatusUnhealthy
		h.Message = fmt.Sprintf("provider %s unreachable", p.Name())
	default:
		h.Status = component.StatusHealthy
		h.Message = p.Name()
	}
	return h
}

// Describe implements component.Describable. Details shows the selection
// chain and every backend compiled in.
func (c *Component) Describe() component.Description {
	return component.Description{
		Name: "Transcription",
		Type: "provider",
		Details: fmt.Sprintf("%s (backends: %s)",
			strings.Join(c.cfg.Chain(), " -> "), strings.Join(c.manager.Registered(), ", ")),
	}
}
