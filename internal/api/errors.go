package api

import "net/http"

// Code is the closed set of error kinds surfaced through the envelope.
// Handlers branch on these, never on storage-driver error strings.
type Code string

const (
	CodeValidation  Code = "VALIDATION_ERROR"
	CodeAuth        Code = "AUTH_ERROR"
	CodeNotFound    Code = "NOT_FOUND"
	CodeConflict    Code = "CONFLICT"
	CodeRateLimited Code = "RATE_LIMITED"
	CodeIntegration Code = "INTEGRATION_ERROR"
	CodeInternal    Code = "INTERNAL_ERROR"
)

// Error is the error variant carried in the envelope.
type Error struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string { return string(e.Code) + ": " + e.Message }

func NewError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Status maps an error kind to its HTTP status.
func (c Code) Status() int {
	switch c {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeAuth:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeIntegration:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
