// Package user defines the account model and the role set used by the
// authorization policy.
package user

import (
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of account roles. Authorization decisions switch
// exhaustively over this type; unknown roles never enter the system because
// ParseRole is the only constructor.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleStoreOwner Role = "store_owner"
	RoleAdmin      Role = "admin"
)

// ParseRole normalises a client-supplied role string. "merchant" is a legacy
// alias for store_owner kept for older mobile clients.
func ParseRole(raw string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "customer", "user":
		return RoleCustomer, nil
	case "store_owner", "merchant":
		return RoleStoreOwner, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleStoreOwner, RoleAdmin:
		return true
	}
	return false
}

// User is a registered account. PasswordHash holds a bcrypt digest and is
// never serialized.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Phone        string    `json:"phone,omitempty"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}
