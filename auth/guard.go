package auth

import (
	"time"

	"github.com/jrsteele09/go-members-server/sessions"
	"github.com/jrsteele09/go-members-server/users"
)

// Decision is the outcome of a gate
type Decision int

const (
	Permit        Decision = iota
	DenyRedirect           // send the browser back to the anonymous landing page
	DenyForbidden          // authenticated but lacking the role
)

func (d Decision) String() string {
	switch d {
	case Permit:
		return "permit"
	case DenyRedirect:
		return "deny-redirect"
	case DenyForbidden:
		return "deny-forbidden"
	}
	return "unknown"
}

// Err maps a denial onto the error taxonomy. Permit is nil.
func (d Decision) Err() error {
	switch d {
	case Permit:
		return nil
	case DenyForbidden:
		return ForbiddenErr
	}
	return NotAuthenticatedErr
}

// Gate decides on a session at a point in time. Gates never modify the session.
type Gate func(s sessions.Session, now time.Time) Decision

// AuthGate permits valid sessions. Expired and anonymous sessions are redirected alike.
func AuthGate(s sessions.Session, now time.Time) Decision {
	if s.IsValid(now) {
		return Permit
	}
	return DenyRedirect
}

// RoleGate permits valid sessions carrying role. An invalid session is redirected
// rather than forbidden, so the gate is safe to use on its own.
func RoleGate(role users.RoleType) Gate {
	return func(s sessions.Session, now time.Time) Decision {
		if !s.IsValid(now) {
			return DenyRedirect
		}
		if s.Role != role {
			return DenyForbidden
		}
		return Permit
	}
}

// Evaluate runs the gates in order and returns the first denial
func Evaluate(s sessions.Session, now time.Time, gates ...Gate) Decision {
	for _, gate := range gates {
		if d := gate(s, now); d != Permit {
			return d
		}
	}
	return Permit
}
