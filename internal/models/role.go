package models

// RoleName is the closed set of roles a user can hold.
type RoleName string

const (
	RoleAdministrator RoleName = "administrator"
	RoleModerator     RoleName = "moderator"
	RoleUser          RoleName = "user"
)

// Valid reports whether the role is one of the known names.
func (r RoleName) Valid() bool {
	switch r {
	case RoleAdministrator, RoleModerator, RoleUser:
		return true
	}
	return false
}
