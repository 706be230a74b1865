package model

import "time"

// CategoryID uniquely identifies a menu category
type CategoryID int64

// Category groups menu items on the customer display
type Category struct {
	ID       CategoryID
	Name     string
	Position int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MenuItemID uniquely identifies a menu item
type MenuItemID int64

// MenuItem is a single orderable dish or drink
type MenuItem struct {
	ID          MenuItemID
	CategoryID  CategoryID
	Name        string
	Description string
	PriceCents  int64
	Available   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
