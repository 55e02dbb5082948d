package sessions

import (
	"time"

	"github.com/jrsteele09/go-members-server/users"
)

// Session is the server held authentication state of one browser.
// The zero value is the Anonymous session.
type Session struct {
	ID            string         `json:"id"`            // Opaque identifier carried by the cookie
	Authenticated bool           `json:"authenticated"` // Set only after a successful credential check
	Name          string         `json:"name"`          // Display name of the logged in user
	Email         string         `json:"email"`         // Email the user logged in with
	Role          users.RoleType `json:"role"`          // Role at the time of login
	CreatedAt     time.Time      `json:"created_at"`    // When the session was established
	ExpiresAt     time.Time      `json:"expires_at"`    // CreatedAt + TTL
}

// Anonymous returns the unauthenticated session
func Anonymous() Session {
	return Session{}
}

// IsValid reports whether the session is authenticated and not yet expired at now.
// Expired sessions are treated exactly like anonymous ones.
func (s Session) IsValid(now time.Time) bool {
	return s.Authenticated && now.Before(s.ExpiresAt)
}

// Expired reports whether an authenticated session has passed its expiry time
func (s Session) Expired(now time.Time) bool {
	return s.Authenticated && !now.Before(s.ExpiresAt)
}

// HasRole reports whether the session is valid and carries the role
func (s Session) HasRole(role users.RoleType, now time.Time) bool {
	return s.IsValid(now) && s.Role == role
}
