package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_LandingRoute(t *testing.T) {
	tests := []struct {
		name string
		role Role
		want string
	}{
		{"admin", RoleAdmin, "/dashboard/admin"},
		{"flat owner", RoleFlatOwner, "/dashboard/flat-owner"},
		{"tenant", RoleTenant, "/dashboard/tenant"},
		{"maintenance staff", RoleMaintenanceStaff, "/dashboard/maintenance"},
		{"unknown role", Role("SUPERVISOR"), "/dashboard"},
		{"empty role", Role(""), "/dashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.LandingRoute())
		})
	}
}

func TestRole_Known(t *testing.T) {
	assert.True(t, RoleAdmin.Known())
	assert.True(t, RoleMaintenanceStaff.Known())
	assert.False(t, Role("SUPERVISOR").Known())
	assert.False(t, Role("").Known())
}

func TestProfile_DisplayName(t *testing.T) {
	assert.Equal(t, "Ada Admin", Profile{FullName: "Ada Admin", Email: "ada@example.com"}.DisplayName())
	assert.Equal(t, "ada@example.com", Profile{Email: "ada@example.com"}.DisplayName())
	assert.Equal(t, DefaultDisplayName, Profile{}.DisplayName())
}

func TestSession_Authenticated(t *testing.T) {
	assert.True(t, Session{AccessToken: "tok"}.Authenticated())

	// Token absence decides, no matter what else is present.
	assert.False(t, Session{
		RefreshToken: "refresh",
		Role:         RoleAdmin,
		Profile:      Profile{FullName: "Ada"},
	}.Authenticated())
}
