package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tablekit/tablekit/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidPIN          = "INVALID_PIN"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeSecretNotConfigured = "SECRET_NOT_CONFIGURED"
	CodeTableNotFound       = "TABLE_NOT_FOUND"
	CodeCategoryNotFound    = "CATEGORY_NOT_FOUND"
	CodeCategoryNotEmpty    = "CATEGORY_NOT_EMPTY"
	CodeMenuItemNotFound    = "MENU_ITEM_NOT_FOUND"
	CodeItemUnavailable     = "ITEM_UNAVAILABLE"
	CodeOrderNotFound       = "ORDER_NOT_FOUND"
	CodeOrderEmpty          = "ORDER_EMPTY"
	CodeOrderingClosed      = "ORDERING_CLOSED"
	CodeInvalidStatusChange = "INVALID_STATUS_CHANGE"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrTableNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeTableNotFound, "Table not found"}}
	case errors.Is(err, model.ErrInvalidPIN):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPIN, "PIN must be exactly 4 digits"}}
	case errors.Is(err, model.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid credentials"}}
	case errors.Is(err, model.ErrSecretNotConfigured):
		return &httpError{http.StatusInternalServerError, APIError{CodeSecretNotConfigured, "Login is not configured for this role"}}
	case errors.Is(err, model.ErrForbidden):
		return &httpError{http.StatusForbidden, APIError{CodeForbidden, "Insufficient permissions"}}
	case errors.Is(err, model.ErrCategoryNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeCategoryNotFound, "Category not found"}}
	case errors.Is(err, model.ErrCategoryNotEmpty):
		return &httpError{http.StatusConflict, APIError{CodeCategoryNotEmpty, "Category still has items"}}
	case errors.Is(err, model.ErrMenuItemNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMenuItemNotFound, "Menu item not found"}}
	case errors.Is(err, model.ErrItemUnavailable):
		return &httpError{http.StatusConflict, APIError{CodeItemUnavailable, "Menu item is not available"}}
	case errors.Is(err, model.ErrOrderNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeOrderNotFound, "Order not found"}}
	case errors.Is(err, model.ErrOrderEmpty):
		return &httpError{http.StatusBadRequest, APIError{CodeOrderEmpty, "Order has no valid lines"}}
	case errors.Is(err, model.ErrOrderingClosed):
		return &httpError{http.StatusConflict, APIError{CodeOrderingClosed, "Ordering is currently closed"}}
	case errors.Is(err, model.ErrInvalidStatusChange):
		return &httpError{http.StatusConflict, APIError{CodeInvalidStatusChange, "Order cannot move to that status"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError() error {
	return &httpError{http.StatusForbidden, APIError{CodeForbidden, "Insufficient permissions"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
