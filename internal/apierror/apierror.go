// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// Stable machine-readable error codes. Clients branch on Code, never on the
// human-readable Detail.
const (
	CodeValidation          = "validation_error"
	CodeNotFound            = "not_found"
	CodeConflict            = "conflict"
	CodeInsufficientStock   = "insufficient_stock"
	CodeInsufficientBalance = "insufficient_balance"
	CodeUnauthorized        = "unauthorized"
	CodeForbidden           = "forbidden"
	CodeInternal            = "internal"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

func New(code, msg string) *APIError {
	return &APIError{Code: code, Detail: msg}
}

// Internal is shorthand for an opaque 5xx envelope.
func Internal(msg string) *APIError {
	return &APIError{Code: CodeInternal, Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Code   string            `json:"code"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Code: CodeValidation, Detail: "Erro de validação", Fields: fields}
}
