package api

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is one entry of a VALIDATION_ERROR details list.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// BindError turns a gin binding failure into the structured validation
// error the envelope carries. Non-validator failures (malformed JSON,
// wrong types) collapse into a single generic entry.
func BindError(err error) *Error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &Error{Code: CodeValidation, Message: "invalid request body"}
	}
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Path: fieldPath(fe), Message: ruleMessage(fe)})
	}
	return &Error{
		Code:    CodeValidation,
		Message: "request validation failed",
		Details: map[string]any{"errors": fields},
	}
}

func fieldPath(fe validator.FieldError) string {
	// drop the root struct name, lower-case the leaf to match JSON keys
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToLower(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, ".")
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "min":
		if fe.Kind().String() == "string" {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must have at least " + fe.Param() + " items"
	case "max":
		if fe.Kind().String() == "string" {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must have at most " + fe.Param() + " items"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "email":
		return "must be a valid email address"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
