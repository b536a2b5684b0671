package errors

import (
	"fmt"
	"net/http"
)

// ModelInputNotFound creates a new AppError for a model input file that
// disappeared between normalization and the model call.
func ModelInputNotFound(name string) *AppError {
	return &AppError{
		Code: ErrCodeModelInputNotFound, Message: fmt.Sprintf("Audio file for transcription not found: %s.", name),
		HTTPStatus: http.StatusNotFound, Retryable: false,
		Details: map[string]any{"file": name},
	}
}

// TranscriptionFailed creates a new AppError for any other model failure.
// The underlying message is kept for diagnostics.
func TranscriptionFailed(provider string, cause error) *AppError {
	e := &AppError{
		Code: ErrCodeTranscriptionFailed, Message: fmt.Sprintf("Transcription failed: %s", causeText(cause)),
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
	if provider != "" {
		e.Details = map[string]any{"provider": provider}
	}
	return e
}
