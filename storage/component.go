package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/kbukum/speechkit/component"
	"github.com/kbukum/speechkit/logger"
	"github.com/kbukum/speechkit/provider"
)

// ErrNotStarted is returned by Component's Storage methods before the first
// successful Start.
var ErrNotStarted = errors.New("storage: component not started")

// Component runs a Storage backend under the component lifecycle and is
// itself a Storage, so handlers can be wired before Start. The backend is
// kept after Stop: in-flight requests still delete their files through it.
type Component struct {
	cfg Config
	log *logger.Logger

	mu      sync.RWMutex
	backend Storage
	stopped bool
}

var (
	_ component.Component = (*Component)(nil)
	_ provider.Provider   = (*Component)(nil)
	_ Storage             = (*Component)(nil)
)

// NewComponent creates the storage component.
func NewComponent(cfg Config) *Component {
	cfg.ApplyDefaults()
	return &Component{cfg: cfg, log: logger.WithComponent("storage")}
}

// backendState returns the backend (nil before Start) and whether it is
// currently serving.
func (c *Component) backendState() (Storage, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.backend, c.backend != nil && !c.stopped
}

func (c *Component) Name() string { return "storage" }

// Start builds the configured backend.
func (c *Component) Start(context.Context) error {
	s, err := New(c.cfg, c.log)
	if err != nil {
		return fmt.Errorf("storage start: %w", err)
	}
	c.mu.Lock()
	c.backend, c.stopped = s, false
	c.mu.Unlock()
	return nil
}

// Stop marks the component stopped without releasing the backend.
func (c *Component) Stop(context.Context) error {
	c.mu.Lock()
	c.stopped = true
	c.mu.Unlock()
	return nil
}

// Health reports whether the scratch directory is usable.
func (c *Component) Health(context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusUnhealthy}
	s, live := c.backendState()
	if !live {
		h.Message = "storage not started"
		return h
	}
	if info, err := os.Stat(s.Dir()); err != nil {
		h.Message = fmt.Sprintf("scratch directory unavailable: %v", err)
	} else if !info.IsDir() {
		h.Message = "scratch path is not a directory"
	} else {
		h.Status = component.StatusHealthy
	}
	return h
}

// Describe implements component.Describable.
func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    "Storage",
		Type:    "storage",
		Details: fmt.Sprintf("provider=%s path=%s", c.cfg.Provider, c.cfg.BasePath),
	}
}

// IsAvailable implements provider.Provider: true between Start and Stop.
func (c *Component) IsAvailable(context.Context) bool {
	_, live := c.backendState()
	return live
}

func (c *Component) Upload(ctx context.Context, key string, r io.Reader) error {
	s, _ := c.backendState()
	if s == nil {
		return ErrNotStarted
	}
	return s.Upload(ctx, key, r)
}

func (c *Component) Delete(ctx context.Context, key string) error {
	s, _ := c.backendState()
	if s == nil {
		return ErrNotStarted
	}
	return s.Delete(ctx, key)
}

func (c *Component) Exists(ctx context.Context, key string) (bool, error) {
	s, _ := c.backendState()
	if s == nil {
		return false, ErrNotStarted
	}
	return s.Exists(ctx, key)
}

func (c *Component) Path(key string) string {
	return filepath.Join(c.Dir(), key)
}

// Dir is the backend's directory, or the absolute configured base path
// before Start.
func (c *Component) Dir() string {
	if s, _ := c.backendState(); s != nil {
		return s.Dir()
	}
	if abs, err := filepath.Abs(c.cfg.BasePath); err == nil {
		return abs
	}
	return c.cfg.BasePath
}
