package auth

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	ierrors "github.com/jrsteele09/go-members-server/internal/errors"
	"github.com/jrsteele09/go-members-server/users"
)

// AdminService holds the operations reserved for admins. Callers gate access with RoleGate(users.RoleAdmin).
type AdminService struct {
	users users.UserRepo
}

func NewAdminService(repo users.UserRepo) (*AdminService, error) {
	if repo == nil {
		return nil, errors.New("[NewAdminService] Users repo is required")
	}
	return &AdminService{users: repo}, nil
}

// ListUsers returns name, email and role of every user
func (as *AdminService) ListUsers(ctx context.Context) ([]users.UserSummary, error) {
	list, err := as.users.ListAll(ctx)
	if err != nil {
		return nil, storeFailure(err, "[AdminService.ListUsers] ListAll")
	}
	return list, nil
}

// SetUserRole changes the role of the user with email. role must be a known role.
func (as *AdminService) SetUserRole(ctx context.Context, email, role string) error {
	parsed, err := users.ParseRole(role)
	if err != nil {
		return err
	}

	if err := as.users.UpdateRole(ctx, email, parsed); err != nil {
		if errors.Is(err, ierrors.ErrNotFound) {
			return errors.Wrap(err, "[AdminService.SetUserRole]")
		}
		return storeFailure(err, "[AdminService.SetUserRole] UpdateRole")
	}

	log.Info().Str("email", email).Str("role", string(parsed)).Msg("user role updated")
	return nil
}
