package models

import "time"

// Role is the authorization level of a User.
type Role string

const (
	// RoleAdmin may manage every resource.
	RoleAdmin Role = "admin"
	// RoleUser may manage projects only.
	RoleUser Role = "user"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is an account allowed to sign in to the dashboard.
type User struct {
	// ID is the unique identifier for the user.
	ID int64 `json:"id"`
	// Email is the login name; unique across users.
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash of the password. It is never serialized.
	PasswordHash string `json:"-"`
	// Role controls access to admin-only routes.
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
