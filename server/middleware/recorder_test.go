package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRecorderKeepsFirstStatus(t *testing.T) {
	rr := &recorder{ResponseWriter: httptest.NewRecorder()}
	if rr.code() != http.StatusOK {
		t.Fatalf("untouched code = %d, want 200", rr.code())
	}

	rr.WriteHeader(http.StatusBadGateway)
	rr.WriteHeader(http.StatusOK)
	if rr.code() != http.StatusBadGateway {
		t.Fatalf("code = %d, want 502", rr.code())
	}

	implicit := &recorder{ResponseWriter: httptest.NewRecorder()}
	_, _ = implicit.Write([]byte("x"))
	if implicit.status != http.StatusOK {
		t.Fatalf("implicit status = %d", implicit.status)
	}
	if implicit.Unwrap() == nil {
		t.Fatal("Unwrap returned nil")
	}
}
