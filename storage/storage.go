package storage

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"
)

// ErrFileTooLarge is returned by Upload when the data exceeds the
// configured maximum size.
var ErrFileTooLarge = errors.New("storage: file too large")

// ErrInvalidKey is returned for keys that are not plain file names.
var ErrInvalidKey = errors.New("storage: invalid key")

// Storage is scratch file storage addressed by flat keys.
type Storage interface {
	// Upload writes data from reader under key. A failed upload leaves
	// nothing behind.
	Upload(ctx context.Context, key string, reader io.Reader) error

	// Delete removes the object under key.
	// Returns nil if the object does not exist.
	Delete(ctx context.Context, key string) error

	// Exists checks whether an object exists under key.
	Exists(ctx context.Context, key string) (bool, error)

	// Path returns the filesystem path of key.
	Path(key string) string

	// Dir returns the directory holding all objects.
	Dir() string
}

// NewKey returns a unique key keeping ext, e.g. "3f2a...c9.mp3".
func NewKey(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return uuid.NewString() + ext
}

// ValidKey reports whether key is a plain file name.
func ValidKey(key string) bool {
	return key != "" && key != "." && key != ".." && !strings.ContainsAny(key, `/\`)
}
