package users

import (
	"errors"
	"fmt"
	"time"
)

// RoleType is the access level of a user
type RoleType string

const (
	RoleUser  RoleType = "user"  // Default role given at signup
	RoleAdmin RoleType = "admin" // Can list users and change roles
)

// UnknownRoleErr is returned when a role string is not one of the known roles
var UnknownRoleErr = errors.New("unknown role")

type User struct {
	ID           string    `json:"id,omitempty"`         // Unique identifier for the user
	Name         string    `json:"name,omitempty"`       // Display name
	Email        string    `json:"email,omitempty"`      // Login identifier, unique at the store level
	PasswordHash string    `json:"-"`                    // bcrypt digest - never serialize
	Role         RoleType  `json:"role,omitempty"`       // user or admin
	CreatedAt    time.Time `json:"created_at,omitempty"` // When the user signed up
}

// UserSummary is the projection of a user that may leave the store.
// It deliberately has no password field.
type UserSummary struct {
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  RoleType `json:"role"`
}

// ParseRole converts a caller supplied string to a RoleType.
// Only the known roles are accepted.
func ParseRole(role string) (RoleType, error) {
	switch RoleType(role) {
	case RoleUser, RoleAdmin:
		return RoleType(role), nil
	}
	return "", fmt.Errorf("%w: %q", UnknownRoleErr, role)
}

// New creates a user with the default role
func New(name, email, passwordHash string) *User {
	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Summary returns the publicly listable fields of the user
func (u *User) Summary() UserSummary {
	return UserSummary{
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
