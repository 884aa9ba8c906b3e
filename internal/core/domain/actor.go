package domain

// AccountStatus represents the lifecycle state of a user account as reported
// by the identity directory.
type AccountStatus string

const (
	StatusActive    AccountStatus = "active"
	StatusSuspended AccountStatus = "suspended"
	StatusBanned    AccountStatus = "banned"
	StatusDeleted   AccountStatus = "deleted"
)

const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
)

// Actor is the authenticated identity behind a request. It is built once by
// the auth middleware and treated as read-only afterwards.
type Actor struct {
	ID       string        `json:"user_id"`
	Email    string        `json:"email"`
	Roles    []string      `json:"roles"`
	Verified bool          `json:"-"`
	Status   AccountStatus `json:"-"`
}

// HasRole reports whether the actor carries the given role.
func (a *Actor) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Elevated reports whether the actor may access moderator-only routes.
func (a *Actor) Elevated() bool {
	return a.HasRole(RoleAdmin) || a.HasRole(RoleModerator)
}
