package validation

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/kbukum/speechkit/errors"
)

func TestCheckerRange(t *testing.T) {
	tests := []struct {
		value   int
		wantErr bool
	}{
		{8000, false},
		{0, false},
		{65535, false},
		{-1, true},
		{65536, true},
	}
	for _, tc := range tests {
		err := New().Range("port", tc.value, 0, 65535).Err()
		if (err != nil) != tc.wantErr {
			t.Errorf("Range(%d): err=%v, wantErr %v", tc.value, err, tc.wantErr)
		}
	}
}

func TestCheckerOneOf(t *testing.T) {
	formats := []string{"json", "srt", "csv"}

	if err := New().OneOf("format", "srt", formats).Err(); err != nil {
		t.Errorf("expected srt accepted, got %v", err)
	}

	c := New().OneOf("format", "vtt", formats)
	if len(c.Fields()) != 1 {
		t.Fatalf("expected one field error, got %v", c.Fields())
	}
	if !strings.Contains(c.Fields()[0].Message, "json, srt, csv") {
		t.Errorf("expected allowed list in message, got %q", c.Fields()[0].Message)
	}
}

func TestCheckerErr(t *testing.T) {
	if err := New().Check(true, "read_timeout", "must not be negative").Err(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	err := New().
		Check(false, "read_timeout", "must not be negative").
		OneOf("format", "xml", []string{"json"}).
		Err()
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeInvalidInput || appErr.HTTPStatus != 400 {
		t.Errorf("unexpected error %+v", appErr)
	}
	if !strings.Contains(appErr.Message, "read_timeout") || !strings.Contains(appErr.Message, "format") {
		t.Errorf("expected both fields in message, got %q", appErr.Message)
	}
	if fields, ok := appErr.Details["fields"].([]FieldError); !ok || len(fields) != 2 {
		t.Errorf("expected two fields in details, got %v", appErr.Details["fields"])
	}
}

func TestStructValidate(t *testing.T) {
	type section struct {
		URL        string `mapstructure:"url" validate:"required,url"`
		SampleRate int    `mapstructure:"sample_rate" validate:"gt=0"`
		Format     string `json:"format" validate:"oneof=json srt csv"`
		MaxRetries int    `validate:"lte=0"`
	}

	if err := Validate(section{URL: "http://localhost:9000", SampleRate: 16000, Format: "json"}); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	err := Validate(section{URL: "", SampleRate: 0, Format: "xml", MaxRetries: 2})
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, name := range []string{"url: is required", "sample_rate: must be greater than 0", "format: must be one of", "max_retries: must be at most 0"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("expected %q in %q", name, err.Error())
		}
	}
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) || appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT AppError, got %v", err)
	}
}

func TestToSnakeCase(t *testing.T) {
	for in, want := range map[string]string{
		"SampleRate": "sample_rate",
		"URL":        "u_r_l",
		"name":       "name",
	} {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
