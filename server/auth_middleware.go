package server

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-members-server/auth"
	"github.com/jrsteele09/go-members-server/sessions"
	"github.com/jrsteele09/go-members-server/users"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeySession stores the sessions.Session of the request
const ContextKeySession ContextKey = "session"

// SessionFromContext returns the session loaded by LoadSession, Anonymous when there is none
func SessionFromContext(ctx context.Context) sessions.Session {
	if s, ok := ctx.Value(ContextKeySession).(sessions.Session); ok {
		return s
	}
	return sessions.Anonymous()
}

// LoadSession resolves the session cookie and stores the session in the request context.
// A cookie that no longer maps to a session is cleared. A store failure leaves the cookie alone.
func (s *Server) LoadSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := sessions.Anonymous()

		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			var rejected bool
			session, rejected = s.sessionFromCookie(r.Context(), cookie.Value)
			if rejected {
				s.ClearLoginSessionCookie(w, r)
			}
		}

		ctx := context.WithValue(r.Context(), ContextKeySession, session)
		next(w, r.WithContext(ctx))
	}
}

// sessionFromCookie reports rejected when the cookie is forged, expired or names no session.
// When the store cannot answer the request is anonymous but the cookie is not rejected.
func (s *Server) sessionFromCookie(ctx context.Context, value string) (sessions.Session, bool) {
	id, err := s.cookies.Decode(value)
	if err != nil {
		log.Debug().Err(err).Msg("rejected session cookie")
		return sessions.Anonymous(), true
	}

	session, err := s.deps.Sessions.Load(ctx, id)
	if err != nil {
		log.Err(err).Msg("[LoadSession] session store")
		return sessions.Anonymous(), false
	}
	return session, !session.IsValid(s.now())
}

// RequireSession sends anonymous and expired sessions back to the landing page
func (s *Server) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if auth.AuthGate(SessionFromContext(r.Context()), s.now()) != auth.Permit {
			redirectSuccess(w, r, RouteHome)
			return
		}
		next(w, r)
	}
}

// RequireRole answers 403 for valid sessions without the role
func (s *Server) RequireRole(role users.RoleType) func(http.HandlerFunc) http.HandlerFunc {
	gate := auth.RoleGate(role)
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			session := SessionFromContext(r.Context())
			switch decision := auth.Evaluate(session, s.now(), gate); decision {
			case auth.Permit:
				next(w, r)
			case auth.DenyForbidden:
				log.Warn().Err(decision.Err()).Str("email", session.Email).Str("path", r.URL.Path).Msg("role check failed")
				http.Error(w, "403 - Forbidden", http.StatusForbidden)
			default:
				redirectSuccess(w, r, RouteHome)
			}
		}
	}
}
