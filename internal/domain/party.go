package domain

// Role is the organizational role a caller presents. It is supplied per
// call by the identity layer and never stored as ledger state.
type Role string

const (
	RoleUser      Role = "USER"
	RoleRegistrar Role = "REGISTRAR"
)

// Valid reports whether the role is one of the two known organizations.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleRegistrar
}

// Principal is the authenticated caller: an opaque identifier used for
// audit stamps plus the organizational role used for authorization.
type Principal struct {
	ID   string
	Role Role
}
