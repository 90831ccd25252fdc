package session

// Package session contains domain-level types for the client session.
// It is pure and free of storage/transport concerns.

import "time"

// Role represents an application authorization role.
// Keep string form for easy persistence; values match the backend enum.
type Role string

const (
	RoleAdmin            Role = "ADMIN"
	RoleFlatOwner        Role = "FLAT_OWNER"
	RoleTenant           Role = "TENANT"
	RoleMaintenanceStaff Role = "MAINTENANCE_STAFF"
)

// Known reports whether the role is one of the four backend enum values.
// Unknown roles are tolerated everywhere (they fall back to the generic
// dashboard and match no role-gated navigation links).
func (r Role) Known() bool {
	switch r {
	case RoleAdmin, RoleFlatOwner, RoleTenant, RoleMaintenanceStaff:
		return true
	}
	return false
}

// LandingRoute resolves the post-login destination for a role.
func (r Role) LandingRoute() string {
	switch r {
	case RoleAdmin:
		return "/dashboard/admin"
	case RoleFlatOwner:
		return "/dashboard/flat-owner"
	case RoleTenant:
		return "/dashboard/tenant"
	case RoleMaintenanceStaff:
		return "/dashboard/maintenance"
	default:
		return "/dashboard"
	}
}

// Profile is the denormalized user snapshot captured at login time.
// It is not refreshed automatically and may go stale relative to the
// backend record. JSON field names match the auth API response.
type Profile struct {
	ID       string `json:"id,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Role     Role   `json:"role"`
}

// DefaultDisplayName is rendered when no profile snapshot is readable.
const DefaultDisplayName = "User"

// DisplayName returns the best human-readable name for the profile:
// full name, then email, then the generic default.
func (p Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	if p.Email != "" {
		return p.Email
	}
	return DefaultDisplayName
}

// Session is the conceptual aggregate assembled from the four
// independently-stored credential fields. AccessToken governs liveness:
// without it the session is logged out no matter what else is present.
type Session struct {
	AccessToken  string
	RefreshToken string
	Role         Role
	Profile      Profile
}

// Authenticated reports whether the session counts as logged in.
func (s Session) Authenticated() bool { return s.AccessToken != "" }

// Token TTLs applied by the login flow. A present refresh token with an
// expired access token is a valid "needs refresh" state; this layer does
// not implement the refresh call, so it degrades to logged out.
const (
	AccessTokenTTL  = 24 * time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)
