package errors

// ErrorResponse is the JSON body of every error response. Detail repeats the
// message at the top level for clients that read the "detail" key.
type ErrorResponse struct {
	Detail string    `json:"detail"`
	Error  ErrorBody `json:"error"`
}

// ErrorBody is the structured part of ErrorResponse.
type ErrorBody struct {
	Code      ErrorCode      `json:"code"`
	Message   string         `json:"message"`
	Retryable bool           `json:"retryable"`
	Details   map[string]any `json:"details,omitempty"`
}

// ToResponse renders e for the client. The cause is never exposed.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{
		Detail: e.Message,
		Error: ErrorBody{
			Code:      e.Code,
			Message:   e.Message,
			Retryable: e.Retryable,
			Details:   e.Details,
		},
	}
}
