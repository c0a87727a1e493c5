// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for engine (/v1) 4xx/5xx responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationErrors struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationErrors {
	return &ValidationErrors{Detail: "validation failed", Fields: fields}
}

// StoreError is the envelope used by the store-side REST surface
// (/orders, /inventory). Clients read the message from "error".
type StoreError struct {
	Error string `json:"error"`
}

func NewStore(msg string) *StoreError {
	return &StoreError{Error: msg}
}
