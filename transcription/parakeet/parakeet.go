// Package parakeet implements transcription.Provider against an
// OpenAI-compatible speech server hosting a NeMo Parakeet model.
package parakeet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kbukum/speechkit/httpclient"
	"github.com/kbukum/speechkit/provider"
	"github.com/kbukum/speechkit/transcription"
	"github.com/kbukum/speechkit/util"
)

const (
	// ProviderName is the registered name for the Parakeet provider.
	ProviderName = "parakeet"

	defaultURL        = "http://localhost:5092"
	defaultModel      = "nemo-parakeet-tdt-0.6b-v2"
	defaultHealthPath = "/health"
	defaultTimeout    = 300 * time.Second

	transcriptionsPath = "/v1/audio/transcriptions"
)

// Config holds configuration for the Parakeet provider.
type Config struct {
	URL   string `yaml:"url" mapstructure:"url"`
	Model string `yaml:"model" mapstructure:"model"`
	// APIKey is sent as a bearer token when set.
	APIKey     string        `yaml:"api_key" mapstructure:"api_key"`
	HealthPath string        `yaml:"health_path" mapstructure:"health_path"`
	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	c.URL = util.Coalesce(c.URL, defaultURL)
	c.Model = util.Coalesce(c.Model, defaultModel)
	c.HealthPath = util.Coalesce(c.HealthPath, defaultHealthPath)
	c.Timeout = util.Coalesce(c.Timeout, defaultTimeout)
}

// String renders the config for logs with the API key masked.
func (c Config) String() string {
	key := ""
	if c.APIKey != "" {
		key = util.MaskSecret(c.APIKey, 3)
	}
	return fmt.Sprintf("parakeet{url=%s model=%s api_key=%s timeout=%s}", c.URL, c.Model, key, c.Timeout)
}

// Provider calls POST /v1/audio/transcriptions with the audio file.
type Provider struct {
	cfg    Config
	client *httpclient.Client
}

var (
	_ transcription.Provider = (*Provider)(nil)
	_ provider.Closeable     = (*Provider)(nil)
)

// NewProvider creates a Parakeet provider.
func NewProvider(cfg Config) (*Provider, error) {
	cfg.ApplyDefaults()
	client, err := httpclient.New(httpclient.Config{
		BaseURL:     cfg.URL,
		Timeout:     cfg.Timeout,
		BearerToken: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("parakeet client: %w", err)
	}
	return &Provider{cfg: cfg, client: client}, nil
}

// Factory builds providers from a transcription.providers.parakeet section.
func Factory() provider.Factory[transcription.Provider] {
	return func(cfg map[string]any) (transcription.Provider, error) {
		var pc Config
		if err := provider.DecodeConfig(cfg, &pc); err != nil {
			return nil, err
		}
		return NewProvider(pc)
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether the health endpoint answers 200.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	resp, err := p.client.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: p.cfg.HealthPath})
	return err == nil && resp.StatusCode == http.StatusOK
}

// Close releases idle connections.
func (p *Provider) Close(_ context.Context) error {
	p.client.Close()
	return nil
}

// Transcribe uploads the file and returns the recognized text.
func (p *Provider) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Response, error) {
	f, err := os.Open(req.AudioPath)
	if err != nil {
		return nil, fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	model := p.cfg.Model
	if req.Model != "" {
		model = req.Model
	}
	fields := map[string]string{
		"model":           model,
		"response_format": "json",
	}
	if req.Language != "" {
		fields["language"] = req.Language
	}

	resp, err := p.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   transcriptionsPath,
		Body: &httpclient.MultipartBody{
			Fields: fields,
			Files: []httpclient.FileField{{
				FieldName:   "file",
				FileName:    filepath.Base(req.AudioPath),
				ContentType: transcription.AudioContentType(req.AudioPath),
				Reader:      f,
			}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("parakeet request: %w", err)
	}

	var result transcriptionResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("decode parakeet response: %w", err)
	}
	return &transcription.Response{
		Text:     strings.TrimSpace(result.Text),
		Duration: result.Duration,
		Language: result.Language,
	}, nil
}

// transcriptionResponse covers both the json and verbose_json shapes.
type transcriptionResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language,omitempty"`
	Duration float64 `json:"duration,omitempty"`
}
