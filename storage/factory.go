package storage

import (
	"fmt"
	"sync"

	"github.com/kbukum/speechkit/logger"
)

// StorageFactory creates a Storage implementation from config.
type StorageFactory func(cfg Config, log *logger.Logger) (Storage, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]StorageFactory)
)

// RegisterFactory registers a storage backend factory for the given provider name.
// Implementation packages call this in an init function to make themselves
// available to New.
func RegisterFactory(name string, f StorageFactory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories[name] = f
}

// New creates a Storage implementation based on the given Config.
// Ensure the provider package has been imported (e.g.
// _ "github.com/kbukum/speechkit/storage/local") so its factory is registered.
func New(cfg Config, log *logger.Logger) (Storage, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	factoriesMu.RLock()
	f, ok := factories[cfg.Provider]
	factoriesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: unsupported provider %q (not registered)", cfg.Provider)
	}

	log.Info("initializing storage", map[string]interface{}{
		logger.FieldProvider: cfg.Provider,
		logger.FieldPath:     cfg.BasePath,
	})
	return f(cfg, log)
}
