package domain

// Role is the closed set of user kinds. It fully determines what the
// authorization policy permits and never changes after signup.
type Role string

const (
	RoleStudent  Role = "student"
	RoleEmployer Role = "employer"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleEmployer:
		return true
	default:
		return false
	}
}

func (r Role) String() string { return string(r) }

// ParseRole converts s into a Role, reporting whether it is known.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.IsValid()
}
