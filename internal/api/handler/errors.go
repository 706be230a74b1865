package handler

import (
	"net/http"

	"github.com/tablekit/tablekit/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest      = apierr.CodeInvalidRequest
	CodeInvalidPIN          = apierr.CodeInvalidPIN
	CodeUnauthorized        = apierr.CodeUnauthorized
	CodeForbidden           = apierr.CodeForbidden
	CodeInvalidCredentials  = apierr.CodeInvalidCredentials
	CodeSecretNotConfigured = apierr.CodeSecretNotConfigured
	CodeTableNotFound       = apierr.CodeTableNotFound
	CodeCategoryNotFound    = apierr.CodeCategoryNotFound
	CodeCategoryNotEmpty    = apierr.CodeCategoryNotEmpty
	CodeMenuItemNotFound    = apierr.CodeMenuItemNotFound
	CodeItemUnavailable     = apierr.CodeItemUnavailable
	CodeOrderNotFound       = apierr.CodeOrderNotFound
	CodeOrderEmpty          = apierr.CodeOrderEmpty
	CodeOrderingClosed      = apierr.CodeOrderingClosed
	CodeInvalidStatusChange = apierr.CodeInvalidStatusChange
	CodeInternalError       = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return apierr.NewUnauthorizedError()
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError() error {
	return apierr.NewForbiddenError()
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
