package errors

import (
	"fmt"
	"net/http"
)

// InvalidInput rejects a malformed request field.
func InvalidInput(field, reason string) *AppError {
	e := &AppError{
		Code:       ErrCodeInvalidInput,
		Message:    "Invalid input: " + reason,
		HTTPStatus: http.StatusBadRequest,
	}
	if field != "" {
		e.WithDetail("field", field)
	}
	return e
}

// Validation rejects input that failed one or more checks; message lists them.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidInput, Message: message, HTTPStatus: http.StatusBadRequest}
}

// MissingField rejects a request without a required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code:       ErrCodeMissingField,
		Message:    "Missing required field: " + field,
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"field": field},
	}
}

// FileTooLarge rejects an upload over the size limit.
func FileTooLarge(limitBytes int64) *AppError {
	return &AppError{
		Code:       ErrCodeFileTooLarge,
		Message:    fmt.Sprintf("Uploaded file exceeds the %d byte limit.", limitBytes),
		HTTPStatus: http.StatusRequestEntityTooLarge,
		Details:    map[string]any{"limit_bytes": limitBytes},
	}
}
