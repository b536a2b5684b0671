package audio

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kbukum/speechkit/util"
)

// Dispatcher routes files to the native decoder by extension and to the
// fallback decoder otherwise. Native files the native decoder rejects with
// ErrUnsupportedFormat are retried on the fallback.
type Dispatcher struct {
	native   Decoder
	fallback Decoder
	exts     map[string]bool
}

var _ Decoder = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher. fallback may be nil.
func NewDispatcher(native, fallback Decoder, nativeExts ...string) *Dispatcher {
	exts := make(map[string]bool, len(nativeExts))
	for _, ext := range util.NormalizeExtensions(nativeExts) {
		exts[ext] = true
	}
	return &Dispatcher{native: native, fallback: fallback, exts: exts}
}

// Load implements Decoder.
func (d *Dispatcher) Load(ctx context.Context, path string) (Clip, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if d.exts[ext] {
		clip, err := d.native.Load(ctx, path)
		if err == nil || d.fallback == nil || !errors.Is(err, ErrUnsupportedFormat) {
			return clip, err
		}
	}
	if d.fallback == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return d.fallback.Load(ctx, path)
}
