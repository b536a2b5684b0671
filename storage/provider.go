package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/kbukum/speechkit/provider"
)

// UploadRequest describes a storage upload operation.
type UploadRequest struct {
	Key    string
	Reader io.Reader
}

// DeleteRequest describes a storage delete operation.
type DeleteRequest struct {
	Key string
}

// UploadProvider wraps Storage.Upload as a RequestResponse provider so
// uploads can run through the provider middlewares. It returns the path of
// the stored file.
type UploadProvider struct {
	name    string
	storage Storage
}

// NewUploadProvider creates a RequestResponse provider for uploads.
func NewUploadProvider(name string, s Storage) *UploadProvider {
	return &UploadProvider{name: name, storage: s}
}

func (p *UploadProvider) Name() string                       { return p.name }
func (p *UploadProvider) IsAvailable(_ context.Context) bool { return p.storage != nil }

func (p *UploadProvider) Execute(ctx context.Context, req UploadRequest) (string, error) {
	if err := p.storage.Upload(ctx, req.Key, req.Reader); err != nil {
		return "", fmt.Errorf("storage upload provider: %w", err)
	}
	return p.storage.Path(req.Key), nil
}

// DeleteProvider wraps Storage.Delete as a RequestResponse provider.
type DeleteProvider struct {
	name    string
	storage Storage
}

// NewDeleteProvider creates a RequestResponse provider for deletes.
func NewDeleteProvider(name string, s Storage) *DeleteProvider {
	return &DeleteProvider{name: name, storage: s}
}

func (p *DeleteProvider) Name() string                       { return p.name }
func (p *DeleteProvider) IsAvailable(_ context.Context) bool { return p.storage != nil }

func (p *DeleteProvider) Execute(ctx context.Context, req DeleteRequest) (struct{}, error) {
	if err := p.storage.Delete(ctx, req.Key); err != nil {
		return struct{}{}, fmt.Errorf("storage delete provider: %w", err)
	}
	return struct{}{}, nil
}

// compile-time checks
var _ provider.RequestResponse[UploadRequest, string] = (*UploadProvider)(nil)
var _ provider.RequestResponse[DeleteRequest, struct{}] = (*DeleteProvider)(nil)
