package httpclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorCode names the failure class of an *Error.
type ErrorCode string

const (
	ErrCodeTimeout    ErrorCode = "timeout"
	ErrCodeConnection ErrorCode = "connection"
	ErrCodeAuth       ErrorCode = "auth"
	ErrCodeNotFound   ErrorCode = "not_found"
	ErrCodeRateLimit  ErrorCode = "rate_limit"
	ErrCodeValidation ErrorCode = "validation"
	ErrCodeServer     ErrorCode = "server"
)

func (c ErrorCode) String() string { return string(c) }

// maxBodyMessage caps how much of a response body ends up in a message.
const maxBodyMessage = 256

// Error is a classified client failure. StatusCode is 0 when no response
// arrived.
type Error struct {
	StatusCode int
	Code       ErrorCode
	Message    string
	Retryable  bool
	Body       []byte
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("httpclient: ")
	b.WriteString(string(e.Code))
	if e.StatusCode > 0 {
		fmt.Fprintf(&b, " (HTTP %d)", e.StatusCode)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func wrapped(code ErrorCode, err error, retryable bool) *Error {
	return &Error{Code: code, Message: err.Error(), Retryable: retryable, Err: err}
}

// NewTimeoutError wraps a request that ran out of time.
func NewTimeoutError(err error) *Error { return wrapped(ErrCodeTimeout, err, true) }

// NewConnectionError wraps a transport failure.
func NewConnectionError(err error) *Error { return wrapped(ErrCodeConnection, err, true) }

// invalidRequest reports a request that could not be built.
func invalidRequest(err error) *Error { return wrapped(ErrCodeValidation, err, false) }

// ClassifyStatusCode turns a non-2xx response into an *Error; 2xx gives nil.
// 429 and 5xx are retryable.
func ClassifyStatusCode(status int, body []byte) *Error {
	if status >= 200 && status < 300 {
		return nil
	}
	e := &Error{StatusCode: status, Message: bodyMessage(status, body), Body: body, Code: ErrCodeServer}
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		e.Code = ErrCodeAuth
	case status == http.StatusNotFound:
		e.Code = ErrCodeNotFound
	case status == http.StatusTooManyRequests:
		e.Code, e.Retryable = ErrCodeRateLimit, true
	case status >= 400 && status < 500:
		e.Code = ErrCodeValidation
	case status >= 500:
		e.Retryable = true
	}
	return e
}

// errorBody matches FastAPI {"detail": "..."} and OpenAI
// {"error": {"message": "..."}} or {"error": "..."} bodies.
type errorBody struct {
	Detail any `json:"detail"`
	Error  any `json:"error"`
}

func (b errorBody) message() string {
	if s, ok := b.Detail.(string); ok && s != "" {
		return s
	}
	switch v := b.Error.(type) {
	case string:
		return v
	case map[string]any:
		s, _ := v["message"].(string)
		return s
	}
	return ""
}

// bodyMessage extracts a readable message from an error response, falling
// back to the trimmed body text.
func bodyMessage(status int, body []byte) string {
	var parsed errorBody
	if json.Unmarshal(body, &parsed) == nil {
		if msg := parsed.message(); msg != "" {
			return msg
		}
	}
	text := strings.TrimSpace(string(body))
	switch {
	case text == "":
		return fmt.Sprintf("HTTP %d", status)
	case len(text) > maxBodyMessage:
		return text[:maxBodyMessage] + "..."
	default:
		return text
	}
}

// CodeOf returns the code of the first *Error in err's chain.
func CodeOf(err error) (ErrorCode, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}

// IsTimeout reports a timeout anywhere in err's chain.
func IsTimeout(err error) bool {
	code, _ := CodeOf(err)
	return code == ErrCodeTimeout
}

// IsRetryable reports whether err carries a retryable *Error.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}
