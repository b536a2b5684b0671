package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
)

// mockStorage implements Storage for testing.
type mockStorage struct {
	data   map[string][]byte
	failOn string // method name to fail on
}

func newMockStorage() *mockStorage {
	return &mockStorage{data: make(map[string][]byte)}
}

func (m *mockStorage) Upload(_ context.Context, key string, reader io.Reader) error {
	if m.failOn == "upload" {
		return errors.New("mock upload error")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.data[key] = data
	return nil
}

func (m *mockStorage) Delete(_ context.Context, key string) error {
	if m.failOn == "delete" {
		return errors.New("mock delete error")
	}
	delete(m.data, key)
	return nil
}

func (m *mockStorage) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

func (m *mockStorage) Path(key string) string { return filepath.Join("/scratch", key) }
func (m *mockStorage) Dir() string            { return "/scratch" }

func TestUploadProvider(t *testing.T) {
	s := newMockStorage()
	p := NewUploadProvider("scratch", s)
	if p.Name() != "scratch" || !p.IsAvailable(context.Background()) {
		t.Fatalf("unexpected provider identity")
	}

	path, err := p.Execute(context.Background(), UploadRequest{Key: "a.wav", Reader: bytes.NewReader([]byte("RIFF"))})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if path != "/scratch/a.wav" || string(s.data["a.wav"]) != "RIFF" {
		t.Errorf("unexpected upload result %q %q", path, s.data["a.wav"])
	}

	s.failOn = "upload"
	if _, err := p.Execute(context.Background(), UploadRequest{Key: "b.wav", Reader: strings.NewReader("x")}); err == nil {
		t.Error("expected upload error")
	}
	if NewUploadProvider("nil", nil).IsAvailable(context.Background()) {
		t.Error("expected nil storage to be unavailable")
	}
}

func TestDeleteProvider(t *testing.T) {
	s := newMockStorage()
	s.data["a.wav"] = []byte("x")
	p := NewDeleteProvider("scratch", s)

	if _, err := p.Execute(context.Background(), DeleteRequest{Key: "a.wav"}); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if ok, _ := s.Exists(context.Background(), "a.wav"); ok {
		t.Error("expected key removed")
	}

	s.failOn = "delete"
	if _, err := p.Execute(context.Background(), DeleteRequest{Key: "a.wav"}); err == nil {
		t.Error("expected delete error")
	}
}

func TestNewKey(t *testing.T) {
	a, b := NewKey(".MP3"), NewKey("wav")
	if !strings.HasSuffix(a, ".mp3") || !strings.HasSuffix(b, ".wav") {
		t.Errorf("extension not kept: %q %q", a, b)
	}
	if a == b || len(strings.TrimSuffix(a, ".mp3")) != 36 {
		t.Errorf("expected unique uuid keys, got %q %q", a, b)
	}
	if k := NewKey(""); !ValidKey(k) || strings.Contains(k, ".") {
		t.Errorf("unexpected key without extension %q", k)
	}
}

func TestValidKey(t *testing.T) {
	for key, want := range map[string]bool{
		"clip.wav":     true,
		"":             false,
		"..":           false,
		"../etc/x":     false,
		`a\b.wav`:      false,
		"nested/a.wav": false,
	} {
		if got := ValidKey(key); got != want {
			t.Errorf("ValidKey(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestConfig(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Provider != ProviderLocal || cfg.BasePath != DefaultBasePath() || cfg.MaxFileSize != DefaultMaxFileSize {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
	cfg.Provider = "s3"
	if err := cfg.Validate(); err == nil {
		t.Error("expected unsupported provider to fail")
	}
}
