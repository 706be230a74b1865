package model

import "time"

// TableID uniquely identifies a dining table
type TableID int64

// Table represents a physical dining table guests can log in against
type Table struct {
	ID    TableID
	Label string

	// PIN is the 4-digit code guests enter to start a session.
	// PINVersion increments on every PIN change; customer credentials
	// embed the version they were issued against and are void once the
	// stored version moves past it.
	PIN        string
	PINVersion int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PINLength is the required length of a table PIN
const PINLength = 4

// ValidPIN reports whether pin is exactly four ASCII digits
func ValidPIN(pin string) bool {
	if len(pin) != PINLength {
		return false
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return false
		}
	}
	return true
}
