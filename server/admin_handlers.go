package server

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-members-server/auth"
	ierrors "github.com/jrsteele09/go-members-server/internal/errors"
	"github.com/jrsteele09/go-members-server/users"
)

// AdminHandler lists every user. When email and user_type are both in the query
// the role is changed first.
func (s *Server) AdminHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := s.pageData(r)
		data.Roles = []users.RoleType{users.RoleUser, users.RoleAdmin}
		status := http.StatusOK

		email := r.URL.Query().Get("email")
		role := r.URL.Query().Get("user_type")
		if email != "" && role != "" {
			if err := s.admin.SetUserRole(r.Context(), email, role); err != nil {
				switch {
				case errors.Is(err, auth.UnknownRoleErr):
					status, data.Error = http.StatusBadRequest, "Unknown role "+role
				case errors.Is(err, ierrors.ErrNotFound):
					status, data.Error = http.StatusNotFound, "No user with email "+email
				default:
					log.Err(err).Msg("[AdminHandler] set role")
					status, data.Error = http.StatusInternalServerError, "Something went wrong"
				}
			}
		}

		list, err := s.admin.ListUsers(r.Context())
		if err != nil {
			log.Err(err).Msg("[AdminHandler] list users")
			http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
			return
		}
		data.Users = list

		s.pages.render(w, status, "admin.html", data)
	}
}
