package domain

import (
	"slices"
	"time"
)

// Role names are fixed; the role store seeds both on first use.
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// Roles lists every role the system knows about.
var Roles = []string{RoleUser, RoleAdmin}

// RoleFor returns the single role implied by the admin flag.
func RoleFor(isAdmin bool) string {
	if isAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// User models a registered account. PasswordHash never leaves the service.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	Roles        []string  `json:"roles,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRole reports whether the user holds the named role.
func (u *User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}

// Credential is a login payload. It is only ever compared against the stored hash.
type Credential struct {
	Username string
	Password string
}
