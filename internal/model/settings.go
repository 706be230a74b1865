package model

import "time"

// Settings is the singleton restaurant configuration shown to all screens
type Settings struct {
	RestaurantName string
	Currency       string
	OrderingOpen   bool

	UpdatedAt time.Time
}

// DefaultSettings returns the settings used before a manager saves any
func DefaultSettings() *Settings {
	return &Settings{
		RestaurantName: "Restaurant",
		Currency:       "EUR",
		OrderingOpen:   true,
	}
}
