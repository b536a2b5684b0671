package provider

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/kbukum/speechkit/logger"
)

// Manager owns initialized providers and picks one per call.
type Manager[T Provider] struct {
	mu          sync.RWMutex
	registry    *Registry[T]
	selector    Selector[T]
	providers   map[string]T
	defaultName string
	log         *logger.Logger
}

// NewManager creates a Manager backed by registry and selector.
func NewManager[T Provider](registry *Registry[T], selector Selector[T]) *Manager[T] {
	return &Manager[T]{
		registry:  registry,
		selector:  selector,
		providers: make(map[string]T),
		log:       logger.WithComponent("provider"),
	}
}

// Register adds a factory to the underlying registry.
func (m *Manager[T]) Register(name string, factory Factory[T]) {
	m.registry.RegisterFactory(name, factory)
	m.log.Debug("Factory registered", logger.Fields(logger.FieldProvider, name))
}

// Registered returns the names of all registered factories.
func (m *Manager[T]) Registered() []string {
	return m.registry.List()
}

// Initialize creates the provider name from cfg, runs its Init when it is
// Initializable, and keeps it for Get.
func (m *Manager[T]) Initialize(ctx context.Context, name string, cfg map[string]any) error {
	instance, err := m.registry.Create(name, cfg)
	if err == nil {
		if i, ok := any(instance).(Initializable); ok {
			err = i.Init(ctx)
		}
	}
	if err != nil {
		return fmt.Errorf("initialize provider %q: %w", name, err)
	}

	m.mu.Lock()
	m.providers[name] = instance
	m.mu.Unlock()

	m.log.Info("Provider initialized", logger.Fields(logger.FieldProvider, name))
	return nil
}

// Add keeps an already built provider under its name.
func (m *Manager[T]) Add(instance T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.providers[instance.Name()] = instance
}

// Get returns the default provider when one is set, otherwise the one
// chosen by the selector over a snapshot of the initialized providers.
func (m *Manager[T]) Get(ctx context.Context) (T, error) {
	m.mu.RLock()
	name, snapshot := m.defaultName, maps.Clone(m.providers)
	m.mu.RUnlock()

	if name == "" {
		return m.selector.Select(ctx, snapshot)
	}
	p, ok := snapshot[name]
	if !ok {
		return p, fmt.Errorf("default provider %q not found", name)
	}
	return p, nil
}

// SetDefault pins Get to the initialized provider name.
func (m *Manager[T]) SetDefault(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.providers[name]; !ok {
		return fmt.Errorf("provider %q not initialized", name)
	}
	m.defaultName = name
	m.log.Info("Default provider set", logger.Fields(logger.FieldProvider, name))
	return nil
}

// Available returns the sorted names of initialized providers.
func (m *Manager[T]) Available() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.providers))
}

// Close closes the Closeable providers in name order and forgets them all.
func (m *Manager[T]) Close(ctx context.Context) error {
	m.mu.Lock()
	providers := m.providers
	m.providers, m.defaultName = make(map[string]T), ""
	m.mu.Unlock()

	var errs []error
	for _, name := range slices.Sorted(maps.Keys(providers)) {
		c, ok := any(providers[name]).(Closeable)
		if !ok {
			continue
		}
		if err := c.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close provider %q: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
