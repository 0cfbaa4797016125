package domain

import (
	"errors"
	"time"
)

const (
	RoleTourist = "tourist"
	RoleGuide   = "guide"
	RoleAdmin   = "admin"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidRole  = errors.New("invalid role")
)

// User is a marketplace account, keyed by email.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Photo     string    `json:"photo,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	LastLogin time.Time `json:"lastLogin"`
}

// ValidRole reports whether role is one of the allowed values.
func ValidRole(role string) bool {
	switch role {
	case RoleTourist, RoleGuide, RoleAdmin:
		return true
	}
	return false
}

// SignupRole resolves the role stored for a first-time sign-in.
// Callers may ask to join as a guide, but nobody signs up as admin.
func SignupRole(requested string) string {
	switch requested {
	case RoleTourist, RoleGuide:
		return requested
	}
	return RoleTourist
}
