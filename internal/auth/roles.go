package auth

import "strings"

// Role is the authorization level attached to an identity.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleUser      Role = "user"
)

// NormalizeRole maps arbitrary input to a known role, defaulting to the
// least-privileged one.
func NormalizeRole(role string) Role {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case string(RoleAdmin):
		return RoleAdmin
	case string(RoleModerator):
		return RoleModerator
	default:
		return RoleUser
	}
}

// HasModeratorAccess reports whether the role grants content-management
// rights. Admins are a superset of moderators.
func HasModeratorAccess(role string) bool {
	switch NormalizeRole(role) {
	case RoleAdmin, RoleModerator:
		return true
	}
	return false
}
