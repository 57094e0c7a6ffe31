package user

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleAdmin:
		return true
	default:
		return false
	}
}

func (r Role) level() int {
	switch r {
	case RoleAdmin:
		return 2
	case RoleCustomer:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether r grants every permission of min.
func (r Role) AtLeast(min Role) bool {
	return r.IsValid() && r.level() >= min.level()
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
