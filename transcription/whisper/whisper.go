// Package whisper implements transcription.Provider on top of a
// faster-whisper HTTP sidecar exposing POST /transcribe and GET /health.
package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/kbukum/speechkit/httpclient"
	"github.com/kbukum/speechkit/logger"
	"github.com/kbukum/speechkit/provider"
	"github.com/kbukum/speechkit/transcription"
	"github.com/kbukum/speechkit/util"
)

// ProviderName is the registered name for the Whisper provider.
const ProviderName = "whisper"

const (
	defaultWhisperURL     = "http://localhost:8387"
	defaultWhisperModel   = "base"
	defaultWhisperTimeout = 120 * time.Second
)

// Config is the transcription.providers.whisper section.
type Config struct {
	URL      string        `json:"url" yaml:"url" mapstructure:"url"`
	Model    string        `json:"model" yaml:"model" mapstructure:"model"`
	Language string        `json:"language,omitempty" yaml:"language" mapstructure:"language"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

func (c *Config) ApplyDefaults() {
	c.URL = util.Coalesce(c.URL, defaultWhisperURL)
	c.Model = util.Coalesce(c.Model, defaultWhisperModel)
	c.Timeout = util.Coalesce(c.Timeout, defaultWhisperTimeout)
}

type Provider struct {
	cfg    Config
	client *httpclient.Client
}

var (
	_ transcription.Provider = (*Provider)(nil)
	_ provider.Initializable = (*Provider)(nil)
	_ provider.Closeable     = (*Provider)(nil)
)

func NewProvider(cfg Config) (*Provider, error) {
	cfg.ApplyDefaults()
	client, err := httpclient.New(httpclient.Config{BaseURL: cfg.URL, Timeout: cfg.Timeout})
	if err != nil {
		return nil, fmt.Errorf("whisper client: %w", err)
	}
	return &Provider{cfg: cfg, client: client}, nil
}

// Factory decodes a config map into a Provider.
func Factory() provider.Factory[transcription.Provider] {
	return func(raw map[string]any) (transcription.Provider, error) {
		var cfg Config
		if err := provider.DecodeConfig(raw, &cfg); err != nil {
			return nil, err
		}
		return NewProvider(cfg)
	}
}

func (p *Provider) Name() string { return ProviderName }

// Init checks the sidecar once. It may still be loading its model, so an
// unreachable sidecar only produces a warning.
func (p *Provider) Init(ctx context.Context) error {
	if !p.IsAvailable(ctx) {
		logger.WithComponent(ProviderName).Warn("Sidecar not reachable yet", logger.Fields("url", p.cfg.URL))
	}
	return nil
}

func (p *Provider) Close(context.Context) error {
	p.client.Close()
	return nil
}

// IsAvailable reports whether GET /health answers 200.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	resp, err := p.client.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: "/health"})
	return err == nil && resp.StatusCode == http.StatusOK
}

// Transcribe uploads the file as the "audio" part. Request model and
// language override the configured ones.
func (p *Provider) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Response, error) {
	f, err := os.Open(req.AudioPath)
	if err != nil {
		return nil, fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	fields := map[string]string{"model": util.Coalesce(req.Model, p.cfg.Model)}
	if lang := util.Coalesce(req.Language, p.cfg.Language); lang != "" {
		fields["language"] = lang
	}

	resp, err := p.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/transcribe",
		Body: &httpclient.MultipartBody{
			Fields: fields,
			Files: []httpclient.FileField{{
				FieldName:   "audio",
				FileName:    filepath.Base(req.AudioPath),
				ContentType: transcription.AudioContentType(req.AudioPath),
				Reader:      f,
			}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("whisper request: %w", err)
	}

	var body result
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, fmt.Errorf("decode whisper response: %w", err)
	}
	return body.response(), nil
}

// result is the sidecar's JSON body.
type result struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Segments []struct {
		Text  string  `json:"text"`
		Start float64 `json:"start"`
		End   float64 `json:"end"`
	} `json:"segments"`
}

// response maps the body onto transcription.Response. Duration is the end
// of the last segment.
func (r *result) response() *transcription.Response {
	out := &transcription.Response{
		Text:     r.Text,
		Language: r.Language,
		Segments: make([]transcription.Segment, len(r.Segments)),
	}
	for i, s := range r.Segments {
		out.Segments[i] = transcription.Segment{Start: s.Start, End: s.End, Text: s.Text}
		out.Duration = s.End
	}
	return out
}
