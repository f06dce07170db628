package session

import (
	"errors"
	"fmt"
	"time"

	"servicehub/models"
)

// ErrNotFound is returned by a Store when no live record exists for an id.
var ErrNotFound = errors.New("session not found")

// ErrUnknownRole is returned by Login when the profile's role is not one of
// the three portals.
var ErrUnknownRole = errors.New("This account has no portal to sign in to")

// ErrRoleMismatch matches any *RoleMismatchError via errors.Is.
var ErrRoleMismatch = errors.New("role mismatch")

// RoleMismatchError is returned by Login when the authenticated account does
// not belong to the portal the user signed in through.
type RoleMismatchError struct {
	Expected models.Role
	Actual   models.Role
}

func (e *RoleMismatchError) Error() string {
	return fmt.Sprintf("This account is not a %s account", e.Expected)
}

func (e *RoleMismatchError) Is(target error) bool {
	return target == ErrRoleMismatch
}

// Session is an authenticated browser session. User always comes from a
// fresh /auth/me call, never from the store alone.
type Session struct {
	ID        string
	Token     string
	User      *models.User
	CreatedAt time.Time
}

// Role returns the session user's role.
func (s *Session) Role() models.Role {
	if s == nil || s.User == nil {
		return ""
	}
	return s.User.Role
}

// Record is what a Store persists: the sealed bearer token only.
type Record struct {
	SealedToken string    `json:"token" bson:"token"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}
