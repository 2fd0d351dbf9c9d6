package adminauth

// UserRole is the account's role
type UserRole = string

const (
	// RoleAdmin can manage school resources, including teacher accounts
	RoleAdmin UserRole = "admin"
	// RoleTeacher is a provisioned teacher account
	RoleTeacher UserRole = "teacher"
)

// IsValid checks if the role is one of the predefined valid roles
func IsValidRole(r UserRole) bool {
	switch r {
	case RoleAdmin, RoleTeacher:
		return true
	default:
		return false
	}
}

// ParseRole safely parses a string into a UserRole type
func ParseRole(roleStr string) (UserRole, bool) {
	role := UserRole(roleStr)
	return role, IsValidRole(role)
}
