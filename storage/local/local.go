// Package local implements scratch storage on the local filesystem.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kbukum/speechkit/logger"
	"github.com/kbukum/speechkit/storage"
)

func init() {
	storage.RegisterFactory(storage.ProviderLocal, func(cfg storage.Config, _ *logger.Logger) (storage.Storage, error) {
		c := &Config{BasePath: cfg.BasePath, MaxFileSize: cfg.MaxFileSize}
		c.ApplyDefaults()
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return NewStorage(*c)
	})
}

// Storage implements storage.Storage using the local filesystem.
type Storage struct {
	basePath string
	maxSize  int64
}

// NewStorage creates the base directory and returns a Storage rooted there.
func NewStorage(cfg Config) (*Storage, error) {
	abs, err := filepath.Abs(cfg.BasePath)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve base path: %w", err)
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return nil, fmt.Errorf("storage: create base directory: %w", err)
	}
	return &Storage{basePath: abs, maxSize: cfg.MaxFileSize}, nil
}

// Upload writes data from reader to a local file. Partial files are removed
// on failure.
func (s *Storage) Upload(ctx context.Context, key string, reader io.Reader) (err error) {
	if !storage.ValidKey(key) {
		return fmt.Errorf("%w: %q", storage.ErrInvalidKey, key)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath := s.Path(key)
	f, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("storage: create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("storage: close file: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(fullPath)
		}
	}()

	src := reader
	if s.maxSize > 0 {
		src = io.LimitReader(reader, s.maxSize+1)
	}
	n, err := io.Copy(f, src)
	if err != nil {
		return fmt.Errorf("storage: write file: %w", err)
	}
	if s.maxSize > 0 && n > s.maxSize {
		return fmt.Errorf("%w: limit is %d bytes", storage.ErrFileTooLarge, s.maxSize)
	}
	return ctx.Err()
}

// Delete removes a local file. Returns nil if the file does not exist.
func (s *Storage) Delete(_ context.Context, key string) error {
	if !storage.ValidKey(key) {
		return fmt.Errorf("%w: %q", storage.ErrInvalidKey, key)
	}
	if err := os.Remove(s.Path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: delete file: %w", err)
	}
	return nil
}

// Exists checks whether a local file exists.
func (s *Storage) Exists(_ context.Context, key string) (bool, error) {
	if !storage.ValidKey(key) {
		return false, fmt.Errorf("%w: %q", storage.ErrInvalidKey, key)
	}
	_, err := os.Stat(s.Path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("storage: stat file: %w", err)
	}
	return true, nil
}

// Path returns the absolute path of key.
func (s *Storage) Path(key string) string {
	return filepath.Join(s.basePath, key)
}

// Dir returns the base directory.
func (s *Storage) Dir() string {
	return s.basePath
}

// compile-time check
var _ storage.Storage = (*Storage)(nil)
