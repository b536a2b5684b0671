package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/speechkit/audio"
	apperrors "github.com/kbukum/speechkit/errors"
	"github.com/kbukum/speechkit/logger"
	"github.com/kbukum/speechkit/observability"
	"github.com/kbukum/speechkit/provider"
	"github.com/kbukum/speechkit/server"
	"github.com/kbukum/speechkit/storage"
	"github.com/kbukum/speechkit/subtitle"
	"github.com/kbukum/speechkit/transcription"
	"github.com/kbukum/speechkit/util"
	"github.com/kbukum/speechkit/validation"
)

const (
	fileField     = "file"
	operationName = "transcribe"
)

// Normalizer prepares an uploaded file for the model.
type Normalizer interface {
	Normalize(ctx context.Context, path string) (*audio.Normalized, error)
}

// Transcriber turns a normalized file into a transcript.
type Transcriber interface {
	Transcribe(ctx context.Context, path string, duration float64) (*transcription.Transcript, error)
}

// Handler serves the transcription endpoints.
type Handler struct {
	store       storage.Storage
	upload      provider.RequestResponse[storage.UploadRequest, string]
	remove      provider.RequestResponse[storage.DeleteRequest, struct{}]
	normalizer  Normalizer
	transcriber Transcriber
	serviceName string
	uploadLimit int64
	metrics     *observability.Metrics
	log         *logger.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the handler logger.
func WithLogger(log *logger.Logger) Option {
	return func(h *Handler) { h.log = log.WithComponent("api") }
}

// WithMetrics records request and pipeline metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(h *Handler) { h.metrics = m }
}

// WithServiceName sets the service name used on spans and metrics.
func WithServiceName(name string) Option {
	return func(h *Handler) { h.serviceName = name }
}

// WithUploadLimit sets the size reported when an upload exceeds the
// storage limit.
func WithUploadLimit(n int64) Option {
	return func(h *Handler) { h.uploadLimit = n }
}

// NewHandler creates a Handler. Uploads and normalized copies live in store.
func NewHandler(store storage.Storage, normalizer Normalizer, transcriber Transcriber, opts ...Option) *Handler {
	h := &Handler{
		store:       store,
		normalizer:  normalizer,
		transcriber: transcriber,
		serviceName: "speech-api",
		uploadLimit: storage.DefaultMaxFileSize,
		log:         logger.WithComponent("api"),
	}
	for _, opt := range opts {
		opt(h)
	}

	h.upload = provider.Chain(
		provider.WithTracing[storage.UploadRequest, string]("storage"),
		provider.WithLogging[storage.UploadRequest, string](h.log),
	)(storage.NewUploadProvider("upload", store))
	h.remove = provider.Chain(
		provider.WithLogging[storage.DeleteRequest, struct{}](h.log),
	)(storage.NewDeleteProvider("delete", store))
	return h
}

// Register mounts the endpoints on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.POST("/transcribe", h.Transcribe)
}

// Root reports the service identity.
func (h *Handler) Root(c *gin.Context) {
	server.RespondOK(c, RootResponse{Message: ServiceMessage, Version: APIVersion})
}

// Transcribe runs the upload through the pipeline. With ?format=srt or
// ?format=csv the rendered artifact is returned as a download instead of
// the JSON body.
func (h *Handler) Transcribe(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", FormatJSON))
	if err := validation.New().OneOf("format", format, formats).Err(); err != nil {
		server.RespondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	op := &observability.Operation{
		Service:   h.serviceName,
		Name:      operationName,
		RequestID: logger.RequestIDFromContext(ctx),
		Metrics:   h.metrics,
	}
	ctx = op.Begin(ctx, observability.SpanTranscribeRequest)

	resp, filename, err := h.process(ctx, op, c.Request)
	op.End(ctx, err)
	if err != nil {
		h.recordError(ctx, err)
		server.RespondWithError(c, err)
		return
	}

	stem := downloadStem(filename)
	switch format {
	case FormatSRT:
		server.RespondAttachment(c, stem+".srt", "application/x-subrip; charset=utf-8", []byte(resp.SRTContent))
	case FormatCSV:
		var buf bytes.Buffer
		if err := subtitle.WriteCSV(&buf, resp.CSVData); err != nil {
			server.RespondWithError(c, err)
			return
		}
		server.RespondAttachment(c, stem+".csv", "text/csv; charset=utf-8", buf.Bytes())
	default:
		server.RespondOK(c, resp)
	}
}

// process persists the upload, normalizes, transcribes and renders. It
// returns the client file name for download naming. Temporary files are
// removed before it returns, whatever the outcome.
func (h *Handler) process(ctx context.Context, op *observability.Operation, r *http.Request) (*TranscribeResponse, string, error) {
	log := h.log.WithContext(ctx)

	uploadPath, filename, err := h.persistUpload(ctx, r)
	if err != nil {
		return nil, "", err
	}
	defer h.discard(ctx, uploadPath)

	log.Info("Upload stored", map[string]interface{}{
		logger.FieldFile: filename,
		logger.FieldPath: uploadPath,
	})

	var norm *audio.Normalized
	err = op.Step(ctx, "audio", observability.SpanAudioNormalize, func(ctx context.Context) error {
		var nerr error
		norm, nerr = h.normalizer.Normalize(ctx, uploadPath)
		return nerr
	})
	if err != nil {
		return nil, filename, err
	}
	if norm.Modified && norm.Path != uploadPath {
		defer h.discard(ctx, norm.Path)
	}
	if h.metrics != nil {
		h.metrics.RecordAudioDuration(ctx, norm.Duration, norm.SourceChannels, norm.SourceRate)
	}

	var transcript *transcription.Transcript
	err = op.Step(ctx, "transcription", observability.SpanTranscriptionInvoke, func(ctx context.Context) error {
		var terr error
		transcript, terr = h.transcriber.Transcribe(ctx, norm.Path, norm.Duration)
		return terr
	})
	if err != nil {
		return nil, filename, err
	}

	resp := &TranscribeResponse{
		Transcription: transcript.Text,
		Segments:      transcript.Segments,
		CSVData:       subtitle.CSVRows(transcript.Segments),
		SRTContent:    subtitle.SRT(transcript.Segments),
		Duration:      transcript.Duration,
	}

	log.Info("Transcription completed", logger.MergeWithDuration(map[string]interface{}{
		logger.FieldFile:          filename,
		logger.FieldProvider:      transcript.Provider,
		logger.FieldAudioDuration: norm.Duration,
		"modified":                norm.Modified,
	}, op.Elapsed()))
	return resp, filename, nil
}

// persistUpload streams the multipart file field into storage under a new
// key that keeps the original extension. It returns the stored path and the
// client file name.
func (h *Handler) persistUpload(ctx context.Context, r *http.Request) (string, string, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return "", "", apperrors.InvalidInput(fileField, "request must be multipart/form-data")
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return "", "", apperrors.MissingField(fileField)
		}
		if err != nil {
			return "", "", h.uploadError(err)
		}
		if part.FormName() != fileField {
			_ = part.Close()
			continue
		}

		filename := part.FileName()
		key := storage.NewKey(util.FileExtension(filename))
		path, err := h.upload.Execute(ctx, storage.UploadRequest{Key: key, Reader: part})
		_ = part.Close()
		if err != nil {
			return "", filename, h.uploadError(err)
		}
		return path, filename, nil
	}
}

func (h *Handler) uploadError(err error) error {
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, storage.ErrFileTooLarge):
		return apperrors.FileTooLarge(h.uploadLimit).WithCause(err)
	case errors.As(err, &maxErr):
		return apperrors.FileTooLarge(maxErr.Limit).WithCause(err)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return apperrors.InvalidInput(fileField, "upload ended before the multipart body was complete").WithCause(err)
	default:
		return fmt.Errorf("persist upload: %w", err)
	}
}

// discard deletes a temporary file. Files inside the scratch directory go
// through storage; failures are only logged.
func (h *Handler) discard(ctx context.Context, path string) {
	// Client cancellation must not skip cleanup.
	ctx = context.WithoutCancel(ctx)

	var err error
	if filepath.Dir(path) == filepath.Clean(h.store.Dir()) {
		_, err = h.remove.Execute(ctx, storage.DeleteRequest{Key: filepath.Base(path)})
	} else if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
		err = rmErr
	}
	if err != nil {
		h.log.WithContext(ctx).WithError(err).Warn("Failed to delete temporary file", logger.Fields(logger.FieldPath, path))
	}
}

func (h *Handler) recordError(ctx context.Context, err error) {
	appErr := apperrors.Wrap(err)
	fields := logger.MergeWithError(map[string]interface{}{
		"code":   string(appErr.Code),
		"status": appErr.HTTPStatus,
	}, err)

	log := h.log.WithContext(ctx)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		log.Error("Transcription request failed", fields)
	} else {
		log.Warn("Transcription request rejected", fields)
	}
	if h.metrics != nil {
		h.metrics.RecordError(ctx, string(appErr.Code), "api")
	}
}

// downloadStem derives an attachment name from the client file name.
func downloadStem(filename string) string {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	stem = strings.Map(func(r rune) rune {
		if r == '"' || r == '\\' || r < 0x20 {
			return -1
		}
		return r
	}, stem)
	if stem == "" || stem == "." || stem == string(filepath.Separator) {
		return "transcript"
	}
	// Keep the header value parseable by mime.
	if _, _, err := mime.ParseMediaType("attachment; filename=\"" + stem + "\""); err != nil {
		return "transcript"
	}
	return stem
}
