package auth_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-members-server/auth"
	"github.com/jrsteele09/go-members-server/sessions"
	"github.com/jrsteele09/go-members-server/users"
	"github.com/stretchr/testify/require"
)

func TestGates(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	member := sessions.Session{ID: "m", Authenticated: true, Name: "Alice", Role: users.RoleUser, ExpiresAt: now.Add(time.Hour)}
	admin := sessions.Session{ID: "a", Authenticated: true, Name: "Root", Role: users.RoleAdmin, ExpiresAt: now.Add(time.Hour)}
	expiredAdmin := admin
	expiredAdmin.ExpiresAt = now

	adminGate := auth.RoleGate(users.RoleAdmin)

	tests := []struct {
		name      string
		session   sessions.Session
		authGate  auth.Decision
		roleGate  auth.Decision
		evaluated auth.Decision
	}{
		{"anonymous", sessions.Anonymous(), auth.DenyRedirect, auth.DenyRedirect, auth.DenyRedirect},
		{"member", member, auth.Permit, auth.DenyForbidden, auth.DenyForbidden},
		{"admin", admin, auth.Permit, auth.Permit, auth.Permit},
		{"expired admin", expiredAdmin, auth.DenyRedirect, auth.DenyRedirect, auth.DenyRedirect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.session
			require.Equal(t, tt.authGate, auth.AuthGate(tt.session, now))
			require.Equal(t, tt.roleGate, adminGate(tt.session, now))
			require.Equal(t, tt.evaluated, auth.Evaluate(tt.session, now, auth.AuthGate, adminGate))
			require.Equal(t, before, tt.session, "gates must not change the session")
		})
	}
}

func TestEvaluate_NoGatesPermits(t *testing.T) {
	require.Equal(t, auth.Permit, auth.Evaluate(sessions.Anonymous(), time.Now()))
}

func TestDecision_Err(t *testing.T) {
	require.NoError(t, auth.Permit.Err())
	require.ErrorIs(t, auth.DenyRedirect.Err(), auth.NotAuthenticatedErr)
	require.ErrorIs(t, auth.DenyForbidden.Err(), auth.ForbiddenErr)
	require.Equal(t, "deny-forbidden", auth.DenyForbidden.String())
}
