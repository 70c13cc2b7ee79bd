// Package models defines the projtrack data model shared by the identity and
// project stores: users and their roles, credentials, and the
// Project -> Module -> Document ownership tree.
package models

// Role governs which caller-level mutations a user may perform.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleViewer
}

// User is an account in the identity roster. Username is unique
// (case-sensitive) across all users.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// UserUpdate is a partial update for a user. Only the role is mutable.
type UserUpdate struct {
	Role *Role
}

// Credentials maps a user id to its plaintext password.
type Credentials map[string]string

// Clone returns an independent copy of c.
func (c Credentials) Clone() Credentials {
	out := make(Credentials, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// IdentitySnapshot is the persisted identity record.
type IdentitySnapshot struct {
	CurrentUser *User  `json:"currentUser"`
	Users       []User `json:"users"`
}

// Clone returns a deep copy of s.
func (s IdentitySnapshot) Clone() IdentitySnapshot {
	out := IdentitySnapshot{Users: make([]User, len(s.Users))}
	copy(out.Users, s.Users)
	if s.CurrentUser != nil {
		u := *s.CurrentUser
		out.CurrentUser = &u
	}
	return out
}
