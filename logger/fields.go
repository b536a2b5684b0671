package logger

import "time"

// Field keys shared across packages.
const (
	FieldComponent     = "component"
	FieldTraceID       = "trace_id"
	FieldSpanID        = "span_id"
	FieldRequestID     = "request_id"
	FieldOperation     = "operation"
	FieldError         = "error"
	FieldDuration      = "duration_ms"
	FieldProvider      = "provider"
	FieldFile          = "file"
	FieldPath          = "path"
	FieldSampleRate    = "sample_rate"
	FieldChannels      = "channels"
	FieldAudioDuration = "audio_duration_s"
)

// Fields builds a field map from alternating key/value pairs. Non-string
// keys and a trailing odd value are dropped.
//
//	logger.Info("done", logger.Fields("op", "normalize", "channels", 2))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields describes a failed operation.
func ErrorFields(op string, err error) map[string]interface{} {
	return MergeWithError(map[string]interface{}{FieldOperation: op}, err)
}

// DurationFields describes a timed operation.
func DurationFields(op string, d time.Duration) map[string]interface{} {
	return MergeWithDuration(map[string]interface{}{FieldOperation: op}, d)
}

// MergeWithError sets the error field on fields, allocating when nil.
func MergeWithError(fields map[string]interface{}, err error) map[string]interface{} {
	if fields == nil {
		fields = make(map[string]interface{}, 1)
	}
	fields[FieldError] = err.Error()
	return fields
}

// MergeWithDuration sets the duration field in milliseconds.
func MergeWithDuration(fields map[string]interface{}, d time.Duration) map[string]interface{} {
	if fields == nil {
		fields = make(map[string]interface{}, 1)
	}
	fields[FieldDuration] = d.Milliseconds()
	return fields
}
