package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/kbukum/speechkit/component"
	"github.com/kbukum/speechkit/storage"
	_ "github.com/kbukum/speechkit/storage/local"
)

func TestComponentLifecycle(t *testing.T) {
	dir := t.TempDir() + "/scratch"
	c := storage.NewComponent(storage.Config{BasePath: dir})
	ctx := context.Background()

	if h := c.Health(ctx); h.Status != component.StatusUnhealthy {
		t.Errorf("expected unhealthy before start, got %+v", h)
	}
	if c.IsAvailable(ctx) {
		t.Error("expected unavailable before start")
	}

	if err := c.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !c.IsAvailable(ctx) {
		t.Fatal("expected storage after start")
	}
	if h := c.Health(ctx); h.Status != component.StatusHealthy {
		t.Errorf("expected healthy, got %+v", h)
	}
	if d := c.Describe(); !strings.Contains(d.Details, "provider=local") {
		t.Errorf("unexpected description %+v", d)
	}

	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}
	if h := c.Health(ctx); h.Status != component.StatusUnhealthy {
		t.Errorf("expected unhealthy after directory removal, got %+v", h)
	}

	if err := c.Stop(ctx); err != nil {
		t.Errorf("Stop failed: %v", err)
	}
	if c.IsAvailable(ctx) {
		t.Error("expected unavailable after stop")
	}
}

func TestNewUnknownProvider(t *testing.T) {
	c := storage.NewComponent(storage.Config{Provider: "gcs"})
	if err := c.Start(context.Background()); err == nil {
		t.Error("expected start to fail for unknown provider")
	}
}

func TestComponentDelegatesStorage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scratch")
	c := storage.NewComponent(storage.Config{BasePath: dir})
	ctx := context.Background()

	if c.Dir() != dir {
		t.Errorf("Dir before start = %q, want %q", c.Dir(), dir)
	}
	if err := c.Upload(ctx, "a.wav", strings.NewReader("RIFF")); !errors.Is(err, storage.ErrNotStarted) {
		t.Fatalf("Upload before start: got %v, want ErrNotStarted", err)
	}

	if err := c.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := c.Upload(ctx, "a.wav", strings.NewReader("RIFF")); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if c.Path("a.wav") != filepath.Join(dir, "a.wav") {
		t.Errorf("Path = %q", c.Path("a.wav"))
	}
	if ok, err := c.Exists(ctx, "a.wav"); err != nil || !ok {
		t.Fatalf("Exists = %v, %v", ok, err)
	}
	if err := c.Delete(ctx, "a.wav"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if ok, _ := c.Exists(ctx, "a.wav"); ok {
		t.Error("file should be gone")
	}
}

func TestComponentConcurrentStop(t *testing.T) {
	c := storage.NewComponent(storage.Config{BasePath: filepath.Join(t.TempDir(), "scratch")})
	ctx := context.Background()
	if err := c.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, _ = c.Exists(ctx, "a.wav")
				_ = c.Dir()
				_ = c.Health(ctx)
			}
		}()
	}
	if err := c.Stop(ctx); err != nil {
		t.Errorf("Stop failed: %v", err)
	}
	wg.Wait()
}

func TestComponentDeleteAfterStop(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scratch")
	c := storage.NewComponent(storage.Config{BasePath: dir})
	ctx := context.Background()
	if err := c.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := c.Upload(ctx, "inflight.wav", strings.NewReader("RIFF")); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if err := c.Stop(ctx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if c.IsAvailable(ctx) {
		t.Error("expected unavailable after stop")
	}
	if h := c.Health(ctx); h.Status != component.StatusUnhealthy {
		t.Errorf("expected unhealthy after stop, got %+v", h)
	}

	if err := c.Delete(ctx, "inflight.wav"); err != nil {
		t.Fatalf("Delete after stop: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "inflight.wav")); !os.IsNotExist(err) {
		t.Errorf("file still present after delete: %v", err)
	}
}
