package types

import (
	"fmt"
	"strings"
)

// Error represents a failed API call.
// Message is the backend's error, then message field, then "HTTP <status>".
type Error struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Method     string `json:"method,omitempty"`
	Path       string `json:"path,omitempty"`
	RequestID  string `json:"requestId,omitempty"`
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// FieldError is a single schema violation in a response body
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationErrors is returned when a 2xx response does not match the expected shape
type ValidationErrors struct {
	Type   string        `json:"type"`
	Errors []*FieldError `json:"errors"`
}

// Error implements the error interface
func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("invalid %s response", e.Type)
	}
	fields := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field, fe.Rule))
	}
	return fmt.Sprintf("invalid %s response: %s", e.Type, strings.Join(fields, ", "))
}
