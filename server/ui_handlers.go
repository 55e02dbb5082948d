package server

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-members-server/auth"
	"github.com/jrsteele09/go-members-server/users"
)

// PageData is the template model shared by every page
type PageData struct {
	AppName    string
	LoggedIn   bool
	Name       string
	IsAdmin    bool
	Error      string
	ImageIndex int
	Users      []users.UserSummary
	Roles      []users.RoleType
}

func (s *Server) pageData(r *http.Request) PageData {
	session := SessionFromContext(r.Context())
	loggedIn := session.IsValid(s.now())
	data := PageData{
		AppName:  s.config.GetAppName(),
		LoggedIn: loggedIn,
		Error:    r.URL.Query().Get("error"),
	}
	if loggedIn {
		data.Name = session.Name
		data.IsAdmin = session.Role == users.RoleAdmin
	}
	return data
}

// IndexHandler renders the landing page
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.pages.render(w, http.StatusOK, "index.html", s.pageData(r))
	}
}

func (s *Server) SignupPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.pages.render(w, http.StatusOK, "signup.html", s.pageData(r))
	}
}

func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.pages.render(w, http.StatusOK, "login.html", s.pageData(r))
	}
}

func (s *Server) LoginFailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.pages.render(w, http.StatusOK, "login_fail.html", s.pageData(r))
	}
}

// SignupSubmitHandler creates the account and logs the browser in
func (s *Server) SignupSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteSignup, "Invalid form submission")
			return
		}

		input := auth.SignupInput{
			Name:     r.PostFormValue("name"),
			Email:    r.PostFormValue("email"),
			Password: r.PostFormValue("password"),
		}
		current := SessionFromContext(r.Context())

		session, err := s.auth.Signup(r.Context(), input, current.ID)
		if err != nil {
			var validationErr *auth.ValidationError
			switch {
			case errors.As(err, &validationErr):
				redirectWithError(w, r, RouteSignup, validationErr.Message())
			case errors.Is(err, auth.DuplicateEmailErr):
				redirectWithError(w, r, RouteSignup, "Email already registered")
			default:
				log.Err(err).Msg("[SignupSubmitHandler] signup failed")
				redirectWithError(w, r, RouteSignup, "Something went wrong")
			}
			return
		}

		if err := s.SetLoginSessionCookie(w, r, session); err != nil {
			log.Err(err).Msg("[SignupSubmitHandler] session cookie")
			redirectWithError(w, r, RouteSignup, "Something went wrong")
			return
		}
		redirectSuccess(w, r, RouteMembers)
	}
}

// LoginSubmitHandler checks the credentials. Every failure other than a malformed
// form lands on the same generic page.
func (s *Server) LoginSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteLogin, "Invalid form submission")
			return
		}

		input := auth.LoginInput{
			Email:    r.PostFormValue("email"),
			Password: r.PostFormValue("password"),
		}
		current := SessionFromContext(r.Context())

		session, err := s.auth.Login(r.Context(), input, current.ID)
		if err != nil {
			var validationErr *auth.ValidationError
			if errors.As(err, &validationErr) {
				redirectWithError(w, r, RouteLogin, validationErr.Message())
				return
			}
			if !errors.Is(err, auth.InvalidCredentialsErr) {
				log.Err(err).Msg("[LoginSubmitHandler] login failed")
			}
			redirectSuccess(w, r, RouteLoginFail)
			return
		}

		if err := s.SetLoginSessionCookie(w, r, session); err != nil {
			log.Err(err).Msg("[LoginSubmitHandler] session cookie")
			redirectSuccess(w, r, RouteLoginFail)
			return
		}
		redirectSuccess(w, r, RouteMembers)
	}
}

// MembersHandler renders the gated page with one of the member images
func (s *Server) MembersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := s.pageData(r)
		data.ImageIndex = s.imageIndex()
		s.pages.render(w, http.StatusOK, "members.html", data)
	}
}

// LogoutHandler ends the session and returns to the landing page
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := SessionFromContext(r.Context())
		if err := s.auth.Logout(r.Context(), session.ID); err != nil {
			log.Err(err).Msg("[LogoutHandler] logout")
		}
		s.ClearLoginSessionCookie(w, r)
		redirectSuccess(w, r, RouteHome)
	}
}

func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		notFound(w)
	}
}

func notFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte("Page not found - 404"))
}
