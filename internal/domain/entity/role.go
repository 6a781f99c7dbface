package entity

// Role is the access level of a user account. Roles form a strict
// hierarchy: every employee capability is available to admins, and every
// client capability is available to employees.
type Role string

const (
	RoleClient   Role = "client"
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// roleLevels maps each role to its position in the hierarchy.
var roleLevels = map[Role]int{
	RoleClient:   1,
	RoleEmployee: 2,
	RoleAdmin:    3,
}

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	_, ok := roleLevels[r]

	return ok
}

// Level returns the numeric position of the role in the hierarchy,
// or 0 for unknown roles.
func (r Role) Level() int {
	return roleLevels[r]
}

// AtLeast reports whether the role grants the capabilities of minimum.
// Unknown roles never satisfy any minimum.
func (r Role) AtLeast(minimum Role) bool {
	level, ok := roleLevels[r]
	if !ok {
		return false
	}

	required, ok := roleLevels[minimum]
	if !ok {
		return false
	}

	return level >= required
}

// ParseRole validates a raw role string.
func ParseRole(raw string) (Role, bool) {
	role := Role(raw)

	return role, role.IsValid()
}
