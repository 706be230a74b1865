package auth

import "github.com/tablekit/tablekit/internal/model"

// Role hierarchy: manager satisfies everything, kitchen satisfies kitchen
// and customer requirements, customer satisfies only customer. These
// checks are pure and do no I/O, so handlers can deny before touching
// storage and tests need no fixtures.

var roleRank = map[model.Role]int{
	model.RoleCustomer: 1,
	model.RoleKitchen:  2,
	model.RoleManager:  3,
}

// Allow reports whether the identity satisfies the required role,
// ignoring table scope. No credential satisfies nothing.
func Allow(id Identity, required model.Role) bool {
	need, ok := roleRank[required]
	if !ok {
		return false
	}
	if id.Staff != nil && roleRank[id.Staff.Role] >= need {
		return true
	}
	return id.Customer != nil && roleRank[model.RoleCustomer] >= need
}

// AllowTable is Allow plus the customer table-scope rule: a customer
// claim only satisfies a table-scoped requirement for its own table.
// Staff claims are not table-scoped and pass for any table.
func AllowTable(id Identity, required model.Role, tableID model.TableID) bool {
	need, ok := roleRank[required]
	if !ok {
		return false
	}
	if id.Staff != nil && roleRank[id.Staff.Role] >= need {
		return true
	}
	return id.Customer != nil &&
		roleRank[model.RoleCustomer] >= need &&
		id.Customer.TableID == tableID
}
