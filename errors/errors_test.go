package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_WithCause_Chain(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := InvalidInput("format", "unknown output format").WithCause(cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
	if !strings.Contains(err.Error(), "root cause") {
		t.Errorf("Error() should contain cause, got %q", err.Error())
	}
	if err.Details["field"] != "format" {
		t.Errorf("expected field detail, got %v", err.Details)
	}
}

func TestAppError_MarkRetryable(t *testing.T) {
	err := TranscriptionFailed("parakeet", fmt.Errorf("sidecar timed out")).MarkRetryable()
	if !err.Retryable || !err.ToResponse().Error.Retryable {
		t.Error("expected the retryable flag to reach the response")
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := &AppError{}
	err.WithDetail("key", "value")
	if err.Details["key"] != "value" {
		t.Errorf("expected key=value, got %v", err.Details["key"])
	}
}

func TestAppError_AudioConstructors_Table(t *testing.T) {
	cause := fmt.Errorf("boom")
	tests := []struct {
		name   string
		err    *AppError
		code   ErrorCode
		status int
		msg    string
	}{
		{"InvalidAudio", InvalidAudio("clip.mp3", cause), ErrCodeInvalidAudio, http.StatusBadRequest, "Failed to load audio file clip.mp3: boom"},
		{"UnsupportedChannelLayout", UnsupportedChannelLayout(6), ErrCodeUnsupportedChannels, http.StatusBadRequest, "Audio has 6 channels. Only mono (1) or stereo (2) supported."},
		{"ResampleFailed", ResampleFailed(16000, cause), ErrCodeResampleFailed, http.StatusBadRequest, "Failed to resample audio: boom"},
		{"ChannelConversionFailed", ChannelConversionFailed(cause), ErrCodeChannelConversion, http.StatusBadRequest, "Failed to convert audio to mono: boom"},
		{"ExportFailed", ExportFailed(cause), ErrCodeExportFailed, http.StatusInternalServerError, "Failed to export processed audio: boom"},
		{"ModelInputNotFound", ModelInputNotFound("a.wav"), ErrCodeModelInputNotFound, http.StatusNotFound, "Audio file for transcription not found: a.wav."},
		{"TranscriptionFailed", TranscriptionFailed("whisper", cause), ErrCodeTranscriptionFailed, http.StatusInternalServerError, "Transcription failed: boom"},
		{"FileTooLarge", FileTooLarge(1024), ErrCodeFileTooLarge, http.StatusRequestEntityTooLarge, "Uploaded file exceeds the 1024 byte limit."},
		{"MissingField", MissingField("file"), ErrCodeMissingField, http.StatusBadRequest, "Missing required field: file"},
		{"Validation", Validation("port: out of range"), ErrCodeInvalidInput, http.StatusBadRequest, "port: out of range"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.HTTPStatus != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, tc.err.HTTPStatus)
			}
			if tc.err.Message != tc.msg {
				t.Errorf("expected message %q, got %q", tc.msg, tc.err.Message)
			}
			if tc.err.Retryable {
				t.Errorf("%s should not be retryable", tc.code)
			}
		})
	}
}

func TestAppError_TranscriptionFailed_KeepsCause(t *testing.T) {
	cause := fmt.Errorf("sidecar exploded")
	err := TranscriptionFailed("", cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
	if err.Details != nil {
		t.Errorf("expected no details without provider, got %v", err.Details)
	}
}

func TestAppError_InvalidAudio_NilCause(t *testing.T) {
	err := InvalidAudio("x.wav", nil)
	if !strings.HasSuffix(err.Message, "unknown error") {
		t.Errorf("expected placeholder cause text, got %q", err.Message)
	}
}

func TestAppError_ToResponse_Success(t *testing.T) {
	err := UnsupportedChannelLayout(3)
	resp := err.ToResponse()
	if resp.Error.Code != ErrCodeUnsupportedChannels {
		t.Errorf("expected code UNSUPPORTED_CHANNEL_LAYOUT in response, got %s", resp.Error.Code)
	}
	if resp.Detail != err.Message {
		t.Errorf("expected detail to mirror message, got %q", resp.Detail)
	}
	if resp.Error.Details["channels"] != 3 {
		t.Errorf("expected channels=3 in response details, got %v", resp.Error.Details["channels"])
	}
}

func TestAs(t *testing.T) {
	appErr := Internal(nil)
	got, ok := As(fmt.Errorf("wrap: %w", appErr))
	if !ok || got != appErr {
		t.Fatal("expected As to find the wrapped AppError")
	}
	if _, ok := As(fmt.Errorf("not an app error")); ok {
		t.Error("expected As to return false for plain errors")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil) != nil {
		t.Error("Wrap(nil) should return nil")
	}

	orig := ExportFailed(nil)
	if got := Wrap(fmt.Errorf("outer: %w", orig)); got != orig {
		t.Error("Wrap should return the wrapped AppError unchanged")
	}

	plain := fmt.Errorf("something broke")
	got := Wrap(plain)
	if got.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", got.Code)
	}
	if got.Cause != plain {
		t.Error("expected cause to be the original error")
	}
}
