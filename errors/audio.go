package errors

import (
	"fmt"
	"net/http"
)

// InvalidAudio creates a new AppError for an audio file that is missing or
// cannot be decoded.
func InvalidAudio(name string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeInvalidAudio, Message: fmt.Sprintf("Failed to load audio file %s: %s", name, causeText(cause)),
		HTTPStatus: http.StatusBadRequest, Retryable: false, Cause: cause,
		Details: map[string]any{"file": name},
	}
}

// UnsupportedChannelLayout creates a new AppError for audio with a channel
// count other than mono or stereo.
func UnsupportedChannelLayout(channels int) *AppError {
	return &AppError{
		Code: ErrCodeUnsupportedChannels, Message: fmt.Sprintf("Audio has %d channels. Only mono (1) or stereo (2) supported.", channels),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"channels": channels},
	}
}

// ResampleFailed creates a new AppError for a failed sample-rate conversion.
func ResampleFailed(targetRate int, cause error) *AppError {
	return &AppError{
		Code: ErrCodeResampleFailed, Message: fmt.Sprintf("Failed to resample audio: %s", causeText(cause)),
		HTTPStatus: http.StatusBadRequest, Retryable: false, Cause: cause,
		Details: map[string]any{"target_rate": targetRate},
	}
}

// ChannelConversionFailed creates a new AppError for a failed downmix to mono.
func ChannelConversionFailed(cause error) *AppError {
	return &AppError{
		Code: ErrCodeChannelConversion, Message: fmt.Sprintf("Failed to convert audio to mono: %s", causeText(cause)),
		HTTPStatus: http.StatusBadRequest, Retryable: false, Cause: cause,
	}
}

// ExportFailed creates a new AppError for a normalized copy that could not be written.
func ExportFailed(cause error) *AppError {
	return &AppError{
		Code: ErrCodeExportFailed, Message: fmt.Sprintf("Failed to export processed audio: %s", causeText(cause)),
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}
