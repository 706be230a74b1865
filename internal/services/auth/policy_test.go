package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tablekit/tablekit/internal/model"
)

func staffIdentity(role model.Role) Identity {
	return Identity{Staff: &StaffClaims{Role: role}}
}

func customerIdentity(tableID model.TableID) Identity {
	return Identity{Customer: &CustomerClaims{TableID: tableID, PINVersion: 1}}
}

func TestAllow(t *testing.T) {
	tests := []struct {
		name     string
		identity Identity
		required model.Role
		want     bool
	}{
		{"manager satisfies manager", staffIdentity(model.RoleManager), model.RoleManager, true},
		{"manager satisfies kitchen", staffIdentity(model.RoleManager), model.RoleKitchen, true},
		{"manager satisfies customer", staffIdentity(model.RoleManager), model.RoleCustomer, true},
		{"kitchen denied manager", staffIdentity(model.RoleKitchen), model.RoleManager, false},
		{"kitchen satisfies kitchen", staffIdentity(model.RoleKitchen), model.RoleKitchen, true},
		{"kitchen satisfies customer", staffIdentity(model.RoleKitchen), model.RoleCustomer, true},
		{"customer denied manager", customerIdentity(1), model.RoleManager, false},
		{"customer denied kitchen", customerIdentity(1), model.RoleKitchen, false},
		{"customer satisfies customer", customerIdentity(1), model.RoleCustomer, true},
		{"empty identity denied everything", Identity{}, model.RoleCustomer, false},
		{"unknown required role denied", staffIdentity(model.RoleManager), model.Role("waiter"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allow(tt.identity, tt.required))
		})
	}
}

func TestAllowTable(t *testing.T) {
	tests := []struct {
		name     string
		identity Identity
		required model.Role
		tableID  model.TableID
		want     bool
	}{
		{"customer allowed own table", customerIdentity(3), model.RoleCustomer, 3, true},
		{"customer denied other table", customerIdentity(3), model.RoleCustomer, 4, false},
		{"kitchen allowed any table", staffIdentity(model.RoleKitchen), model.RoleCustomer, 99, true},
		{"manager allowed any table", staffIdentity(model.RoleManager), model.RoleCustomer, 99, true},
		{"customer denied kitchen requirement even on own table", customerIdentity(3), model.RoleKitchen, 3, false},
		{"empty identity denied", Identity{}, model.RoleCustomer, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AllowTable(tt.identity, tt.required, tt.tableID))
		})
	}
}

func TestAllowTableWithBothClaims(t *testing.T) {
	// A manager holding a customer session for table 3 passes for any
	// table on the staff claim alone.
	id := Identity{
		Staff:    &StaffClaims{Role: model.RoleManager},
		Customer: &CustomerClaims{TableID: 3, PINVersion: 1},
	}

	assert.True(t, AllowTable(id, model.RoleCustomer, 3))
	assert.True(t, AllowTable(id, model.RoleCustomer, 4))
}

func TestIdentityPrimary(t *testing.T) {
	role, tableID, ok := Identity{}.Primary()
	assert.False(t, ok)
	assert.Empty(t, string(role))
	assert.Zero(t, tableID)

	role, tableID, ok = customerIdentity(5).Primary()
	assert.True(t, ok)
	assert.Equal(t, model.RoleCustomer, role)
	assert.Equal(t, model.TableID(5), tableID)

	// Staff claim wins when both tracks are present
	both := Identity{
		Staff:    &StaffClaims{Role: model.RoleKitchen},
		Customer: &CustomerClaims{TableID: 5, PINVersion: 1},
	}
	role, tableID, ok = both.Primary()
	assert.True(t, ok)
	assert.Equal(t, model.RoleKitchen, role)
	assert.Zero(t, tableID)
}
