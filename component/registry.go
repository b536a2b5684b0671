package component

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/kbukum/speechkit/logger"
)

const stopTimeout = 10 * time.Second

// Registry starts components in registration order and stops them in
// reverse order. Start halts at the first failure, so the started
// components are always a prefix of the registered ones.
type Registry struct {
	mu         sync.RWMutex
	components []Component
	started    int
	log        *logger.Logger
}

// NewRegistry creates an empty registry logging through log; nil uses the
// global logger.
func NewRegistry(log *logger.Logger) *Registry {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Registry{log: log.WithComponent("components")}
}

func (r *Registry) indexOf(name string) int {
	return slices.IndexFunc(r.components, func(c Component) bool { return c.Name() == name })
}

// Register adds c. Register dependencies first.
func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(c.Name()) >= 0 {
		return fmt.Errorf("component %s already registered", c.Name())
	}
	r.components = append(r.components, c)
	r.log.Debug("Component registered", logger.Fields("component", c.Name()))
	return nil
}

// StartAll starts the components not yet started. On failure the earlier
// ones stay up; call StopAll to release them.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.log.Info("Starting components", logger.Fields("count", len(r.components)-r.started))
	for ; r.started < len(r.components); r.started++ {
		c := r.components[r.started]
		began := time.Now()
		if err := c.Start(ctx); err != nil {
			r.log.Error("Component start failed", logger.ErrorFields("start "+c.Name(), err))
			return fmt.Errorf("failed to start %s: %w", c.Name(), err)
		}
		r.log.Debug("Component started", logger.MergeWithDuration(logger.Fields("component", c.Name()), time.Since(began)))
	}
	return nil
}

// StopAll stops started components newest first, each under its own
// bounded context, and joins their errors.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for ; r.started > 0; r.started-- {
		c := r.components[r.started-1]
		stopCtx, cancel := context.WithTimeout(ctx, stopTimeout)
		err := c.Stop(stopCtx)
		cancel()
		if err != nil {
			r.log.Error("Component stop failed", logger.ErrorFields("stop "+c.Name(), err))
			errs = append(errs, fmt.Errorf("failed to stop %s: %w", c.Name(), err))
			continue
		}
		r.log.Info("Component stopped", logger.Fields("component", c.Name()))
	}
	return errors.Join(errs...)
}

// HealthAll reports every component in registration order.
func (r *Registry) HealthAll(ctx context.Context) []Health {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Health, len(r.components))
	for i, c := range r.components {
		out[i] = c.Health(ctx)
	}
	return out
}

// Get looks a component up by name.
func (r *Registry) Get(name string) (Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(name); i >= 0 {
		return r.components[i], true
	}
	return nil, false
}

// All returns the registered components in registration order.
func (r *Registry) All() []Component {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.components)
}
