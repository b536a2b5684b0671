package errors

// ErrorCode is the machine-readable code sent to clients.
type ErrorCode string

// Request errors.
const (
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	ErrCodeFileTooLarge ErrorCode = "FILE_TOO_LARGE"
)

// Audio normalization errors.
const (
	// ErrCodeInvalidAudio: the file is missing or cannot be decoded.
	ErrCodeInvalidAudio ErrorCode = "INVALID_AUDIO"
	// ErrCodeUnsupportedChannels: more than two channels.
	ErrCodeUnsupportedChannels ErrorCode = "UNSUPPORTED_CHANNEL_LAYOUT"
	ErrCodeResampleFailed      ErrorCode = "RESAMPLE_FAILED"
	ErrCodeChannelConversion   ErrorCode = "CHANNEL_CONVERSION_FAILED"
	// ErrCodeExportFailed: the normalized copy could not be written.
	ErrCodeExportFailed ErrorCode = "EXPORT_FAILED"
)

// Transcription errors.
const (
	// ErrCodeModelInputNotFound: the model input vanished before the call.
	ErrCodeModelInputNotFound  ErrorCode = "MODEL_INPUT_NOT_FOUND"
	ErrCodeTranscriptionFailed ErrorCode = "TRANSCRIPTION_FAILED"
)

const ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
