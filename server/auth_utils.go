package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/go-members-server/sessions"
)

// sessionCookieName is the cookie carrying the signed session identifier
const sessionCookieName = "members_sid"

// SetLoginSessionCookie hands the browser the signed identifier of session
func (s *Server) SetLoginSessionCookie(w http.ResponseWriter, r *http.Request, session sessions.Session) error {
	value, err := s.cookies.Encode(session.ID, session.ExpiresAt)
	if err != nil {
		return err
	}

	dropSetCookie(w.Header(), sessionCookieName)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.deps.Sessions.TTL().Seconds()),
	})
	return nil
}

func (s *Server) ClearLoginSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// dropSetCookie removes Set-Cookie lines for name queued earlier in the response
func dropSetCookie(h http.Header, name string) {
	var kept []string
	for _, line := range h.Values("Set-Cookie") {
		if !strings.HasPrefix(line, name+"=") {
			kept = append(kept, line)
		}
	}
	h.Del("Set-Cookie")
	for _, line := range kept {
		h.Add("Set-Cookie", line)
	}
}

// redirectSuccess helper for htmx-aware success redirects
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent) // 204 - no content, just redirect instruction
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// redirectWithError helper for htmx-aware error redirects
func redirectWithError(w http.ResponseWriter, r *http.Request, path, errorMsg string) {
	redirectSuccess(w, r, path+"?error="+url.QueryEscape(errorMsg))
}

// isHTMXRequest checks if the request was initiated by HTMX
func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
