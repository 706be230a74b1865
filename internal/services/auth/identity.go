package auth

import "github.com/tablekit/tablekit/internal/model"

// Identity is the set of validated claims carried by one request: at most
// one staff claim and at most one customer claim, resolved independently.
// Request-scoped and never persisted.
type Identity struct {
	Staff    *StaffClaims
	Customer *CustomerClaims
}

// Authenticated reports whether any claim is present
func (id Identity) Authenticated() bool {
	return id.Staff != nil || id.Customer != nil
}

// Primary returns the identity shown as "the" session when a single value
// is needed: the staff claim wins, then the customer claim. The table ID
// is zero for staff identities.
func (id Identity) Primary() (model.Role, model.TableID, bool) {
	if id.Staff != nil {
		return id.Staff.Role, 0, true
	}
	if id.Customer != nil {
		return model.RoleCustomer, id.Customer.TableID, true
	}
	return "", 0, false
}
