package domain

import "time"

// Role is the closed set of actor kinds known to the marketplace.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// ParseRole maps a raw string to a Role. Anything outside the closed set is
// rejected; there is no default role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// User models a registered identity. Email is the natural key; role is
// immutable after registration.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"created_at"`
}
