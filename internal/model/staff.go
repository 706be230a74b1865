package model

import "time"

// Role identifies an actor role in the system
type Role string

const (
	RoleCustomer Role = "customer"
	RoleKitchen  Role = "kitchen"
	RoleManager  Role = "manager"
)

// ValidStaffRole reports whether r is a staff role (kitchen or manager)
func ValidStaffRole(r Role) bool {
	return r == RoleKitchen || r == RoleManager
}

// StaffSecret holds the shared login secret for a staff role.
// One row per role. PasswordHash is a hex-encoded SHA-256 digest of the
// plaintext, compared by exact match. Unsalted and unthrottled; kept for
// compatibility with the deployed credential store. A hardening pass should
// move this to a salted slow hash and add login attempt throttling.
type StaffSecret struct {
	Role         Role
	PasswordHash string
	UpdatedAt    time.Time
}
