package transcription

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	apperrors "github.com/kbukum/speechkit/errors"
	"github.com/kbukum/speechkit/httpclient"
	"github.com/kbukum/speechkit/logger"
	"github.com/kbukum/speechkit/observability"
	"github.com/kbukum/speechkit/provider"
)

// Source hands out the provider for a call. *provider.Manager[Provider]
// implements it.
type Source interface {
	Get(ctx context.Context) (Provider, error)
}

// Invoker calls the model and shapes its output into a Transcript.
type Invoker struct {
	source   Source
	language string
	log      *logger.Logger
	metrics  *observability.Metrics
}

// InvokerOption configures an Invoker.
type InvokerOption func(*Invoker)

// WithLanguage passes language to every provider call.
func WithLanguage(language string) InvokerOption {
	return func(i *Invoker) { i.language = language }
}

// WithLogger sets the logger used for provider calls.
func WithLogger(log *logger.Logger) InvokerOption {
	return func(i *Invoker) { i.log = log }
}

// WithMetrics records provider calls on metrics.
func WithMetrics(metrics *observability.Metrics) InvokerOption {
	return func(i *Invoker) { i.metrics = metrics }
}

// NewInvoker creates an Invoker drawing providers from source.
func NewInvoker(source Source, opts ...InvokerOption) *Invoker {
	i := &Invoker{
		source: source,
		log:    logger.WithComponent("transcription"),
	}
	for _, o := range opts {
		o(i)
	}
	return i
}

// Transcribe runs the model on path and returns exactly one segment
// spanning [0, duration], whatever timing the provider reported.
func (i *Invoker) Transcribe(ctx context.Context, path string, duration float64) (*Transcript, error) {
	name := filepath.Base(path)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.ModelInputNotFound(name)
		}
		return nil, apperrors.TranscriptionFailed("", err)
	}

	p, err := i.source.Get(ctx)
	if err != nil {
		return nil, apperrors.TranscriptionFailed("", err)
	}

	resp, err := i.wrap(p).Execute(ctx, Request{AudioPath: path, Language: i.language})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.ModelInputNotFound(name)
		}
		return nil, i.failed(p.Name(), err)
	}

	return &Transcript{
		Text:     resp.Text,
		Segments: []Segment{Segment{Start: 0, End: duration, Text: resp.Text}.Clamped()},
		Duration: duration,
		Provider: p.Name(),
	}, nil
}

// failed maps a provider error. Sidecar transport failures keep their
// classification as the "reason" detail and are marked retryable.
func (i *Invoker) failed(name string, err error) *apperrors.AppError {
	appErr := apperrors.TranscriptionFailed(name, err)
	if code, ok := httpclient.CodeOf(err); ok {
		appErr.WithDetail("reason", code.String())
	}
	if httpclient.IsRetryable(err) {
		appErr.MarkRetryable()
	}
	if httpclient.IsTimeout(err) {
		i.log.WithFields(map[string]interface{}{"provider": name}).Warn("Transcription sidecar timed out")
	}
	return appErr
}

func (i *Invoker) wrap(p Provider) provider.RequestResponse[Request, *Response] {
	rr := provider.Func(p.Name(), p.IsAvailable, p.Transcribe)

	middlewares := []provider.Middleware[Request, *Response]{
		provider.WithTracing[Request, *Response]("transcription"),
		provider.WithLogging[Request, *Response](i.log),
	}
	if i.metrics != nil {
		middlewares = append(middlewares, provider.WithMetrics[Request, *Response](i.metrics))
	}
	return provider.Chain(middlewares...)(rr)
}
