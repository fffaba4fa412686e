package errors

// ErrorResponse represents the standard error response structure returned
// to callers for malformed-input rejections. Internal failures never reach
// the caller this way; the engine fails open instead.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code          string         `json:"code"`
	Display       string         `json:"message"`
	InternalError string         `json:"internal_error,omitempty"`
	Details       map[string]any `json:"details,omitempty"`
}

// NewErrorResponse builds a caller-facing response from an error chain.
// The code distinguishes bad request (validation_error) from everything
// else, which surfaces as an internal error.
func NewErrorResponse(err error) *ErrorResponse {
	if err == nil {
		return nil
	}
	return &ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Code:          Code(err),
			Display:       Hint(err),
			InternalError: err.Error(),
		},
	}
}
