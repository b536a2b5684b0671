package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is an error with a client-facing code, message and HTTP status.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	// Retryable tells clients whether resubmitting the same request could
	// succeed. Nothing on the server side retries.
	Retryable  bool           `json:"retryable"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithCause attaches the underlying error.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets one detail entry.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any, 1)
	}
	e.Details[key] = value
	return e
}

// MarkRetryable flags the error as transient.
func (e *AppError) MarkRetryable() *AppError {
	e.Retryable = true
	return e
}

// As returns the first *AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Wrap returns the *AppError in err's chain, or err as an internal error.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := As(err); ok {
		return appErr
	}
	return Internal(err)
}

// Internal is the catch-all 500.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       ErrCodeInternal,
		Message:    "An unexpected error occurred. Please try again or contact support.",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// causeText renders an optional cause for a client-facing message.
func causeText(cause error) string {
	if cause == nil {
		return "unknown error"
	}
	return cause.Error()
}
