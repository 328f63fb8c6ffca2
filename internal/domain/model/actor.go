package model

// Role identifies the capacity in which an actor submits a transition.
type Role string

const (
	RoleBuyer      Role = "buyer"
	RoleSeller     Role = "seller"
	RoleClient     Role = "client"
	RoleFreelancer Role = "freelancer"
	// RoleSystem is used by automated callers such as tracking webhooks.
	RoleSystem Role = "system"
)

// Actor is the authenticated identity behind a request.
type Actor struct {
	ID   int64
	Role Role
}

// ValidRole reports whether the role is one of the known values.
func ValidRole(r Role) bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleClient, RoleFreelancer, RoleSystem:
		return true
	}
	return false
}
