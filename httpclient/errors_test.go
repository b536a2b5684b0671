package httpclient

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestClassifyStatusCode(t *testing.T) {
	tests := []struct {
		status    int
		wantNil   bool
		wantCode  ErrorCode
		retryable bool
	}{
		{200, true, "", false},
		{204, true, "", false},
		{401, false, ErrCodeAuth, false},
		{403, false, ErrCodeAuth, false},
		{404, false, ErrCodeNotFound, false},
		{422, false, ErrCodeValidation, false},
		{429, false, ErrCodeRateLimit, true},
		{418, false, ErrCodeValidation, false},
		{302, false, ErrCodeServer, false},
		{500, false, ErrCodeServer, true},
		{503, false, ErrCodeServer, true},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprint(tc.status), func(t *testing.T) {
			err := ClassifyStatusCode(tc.status, nil)
			if tc.wantNil {
				if err != nil {
					t.Fatalf("expected nil, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Code != tc.wantCode || err.Retryable != tc.retryable {
				t.Errorf("got code=%s retryable=%v", err.Code, err.Retryable)
			}
		})
	}
}

func TestBodyMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"fastapi detail", `{"detail":"model not loaded"}`, "model not loaded"},
		{"openai error", `{"error":{"message":"file too large","type":"invalid_request_error"}}`, "file too large"},
		{"string error", `{"error":"decoder crashed"}`, "decoder crashed"},
		{"empty detail", `{"detail":""}`, `{"detail":""}`},
		{"plain text", "  upstream exploded \n", "upstream exploded"},
		{"empty", "", "HTTP 502"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := bodyMessage(502, []byte(tc.body)); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}

	long := strings.Repeat("x", maxBodyMessage+50)
	if got := bodyMessage(500, []byte(long)); len(got) != maxBodyMessage+3 {
		t.Errorf("expected truncated message, got %d chars", len(got))
	}
}

func TestErrorStringAndUnwrap(t *testing.T) {
	err := ClassifyStatusCode(500, []byte(`{"detail":"CUDA out of memory"}`))
	if !strings.Contains(err.Error(), "HTTP 500") || !strings.Contains(err.Error(), "CUDA out of memory") {
		t.Errorf("unexpected message %q", err.Error())
	}

	inner := errors.New("dial tcp: connection refused")
	connErr := NewConnectionError(inner)
	if !errors.Is(connErr, inner) {
		t.Error("expected Unwrap to expose the cause")
	}
	if !strings.HasPrefix(connErr.Error(), "httpclient: connection:") {
		t.Errorf("unexpected message %q", connErr.Error())
	}
}

func TestErrorPredicates(t *testing.T) {
	wrapped := fmt.Errorf("call sidecar: %w", ClassifyStatusCode(404, nil))
	if code, ok := CodeOf(wrapped); !ok || code != ErrCodeNotFound {
		t.Errorf("expected not_found through wrapping, got %s %v", code, ok)
	}
	if IsTimeout(wrapped) || IsRetryable(wrapped) {
		t.Error("a 404 is neither a timeout nor retryable")
	}
	if !IsRetryable(ClassifyStatusCode(502, nil)) {
		t.Error("expected 502 to be retryable")
	}
	if !IsTimeout(NewTimeoutError(errors.New("deadline"))) {
		t.Error("expected timeout")
	}
	if _, ok := CodeOf(errors.New("plain")); ok || IsRetryable(errors.New("plain")) {
		t.Error("plain errors carry no classification")
	}
}
