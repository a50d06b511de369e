package domain

// Role is the coarse authorization label resolved from a request credential.
type Role string

const (
	// RoleNone marks an absent, malformed, or unrecognized credential.
	RoleNone  Role = ""
	RoleAgent Role = "agent"
	RoleAdmin Role = "admin"
)

// String renders the role for diagnostics, naming the unauthenticated case.
func (r Role) String() string {
	if r == RoleNone {
		return "none"
	}
	return string(r)
}
