package expensemgr

import (
	"net/http"

	internalTypes "github.com/expense-manager/expense-manager-go/internal/types"
	"github.com/pkg/errors"
)

// Error is a failed API call. Error() returns the backend's message,
// or "HTTP <status>" when the response carried none.
type Error = internalTypes.Error

// ValidationErrors is returned when a successful response does not match the expected shape
type ValidationErrors = internalTypes.ValidationErrors

// FieldError is a single response schema violation
type FieldError = internalTypes.FieldError

// StatusCode returns the HTTP status of an API error, or 0 for other errors
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 or 403 from the API
func IsUnauthorized(err error) bool {
	code := StatusCode(err)
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

// IsValidationError reports whether err is a response schema violation
func IsValidationError(err error) bool {
	var valErr *ValidationErrors
	return errors.As(err, &valErr)
}
