package model

import "errors"

// Common errors used across the application
var (
	// Table errors
	ErrTableNotFound = errors.New("table not found")
	ErrInvalidPIN    = errors.New("pin must be exactly 4 digits")

	// Auth errors
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrSecretNotConfigured = errors.New("staff secret not configured")
	ErrForbidden           = errors.New("insufficient role for this action")

	// Menu errors
	ErrCategoryNotFound = errors.New("category not found")
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrCategoryNotEmpty = errors.New("category still has items")

	// Order errors
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderEmpty          = errors.New("order has no lines")
	ErrOrderingClosed      = errors.New("ordering is currently closed")
	ErrInvalidStatusChange = errors.New("invalid order status transition")
	ErrItemUnavailable     = errors.New("menu item is not available")
)
