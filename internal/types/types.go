// README: Common identifier and actor types used across modules.
package types

// ID is an opaque entity identifier (UUID string).
type ID string

// Role is the caller's role as carried in the auth token.
type Role string

const (
	RoleClient    Role = "client"
	RoleWaiter    Role = "waiter"
	RoleCook      Role = "cook"
	RoleManager   Role = "manager"
	RoleAnonymous Role = "anonymous"
)

// ParseRole maps a raw claim value onto a known role; anything
// unrecognised degrades to anonymous.
func ParseRole(v string) Role {
	switch Role(v) {
	case RoleClient, RoleWaiter, RoleCook, RoleManager:
		return Role(v)
	}
	return RoleAnonymous
}

// Staff reports whether the role belongs to restaurant personnel.
func (r Role) Staff() bool {
	return r == RoleWaiter || r == RoleCook || r == RoleManager
}

// Actor identifies the authenticated caller of an engine operation.
// For RoleClient the ID is a client id, for staff roles an employee id.
// Actors are always passed explicitly; there is no implicit current user.
type Actor struct {
	Role Role
	ID   ID
}
