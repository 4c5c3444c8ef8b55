// Package apierror provides the error envelope for every 4xx/5xx response.
// All errors returned to clients go through this package so the shape stays
// {"error": "...", "details": ...}.
package apierror

// APIError is the canonical error body.
type APIError struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Error: msg}
}

// WithDetails attaches field errors (map) or a backend message (string).
func WithDetails(msg string, details interface{}) *APIError {
	return &APIError{Error: msg, Details: details}
}

// NewValidation wraps field errors keyed by JSON field name.
func NewValidation(fields map[string]string) *APIError {
	return &APIError{Error: "Validation failed", Details: fields}
}
