package auth

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	ierrors "github.com/jrsteele09/go-members-server/internal/errors"
	"github.com/jrsteele09/go-members-server/sessions"
	"github.com/jrsteele09/go-members-server/users"
)

// Deps holds the collaborators of the AuthService
type Deps struct {
	Users    users.UserRepo        // Credential store
	Sessions *sessions.Manager     // Session lifecycle
	Hasher   users.PasswordHasher // Password digests
}

// AuthService runs signup, login and logout: Validator -> Store -> Hasher -> Session Manager.
type AuthService struct {
	deps      Deps
	validator *Validator
}

func NewAuthService(deps Deps) (*AuthService, error) {
	if deps.Users == nil {
		return nil, errors.New("[NewAuthService] Users repo is required")
	}
	if deps.Sessions == nil {
		return nil, errors.New("[NewAuthService] Sessions manager is required")
	}
	if deps.Hasher == nil {
		return nil, errors.New("[NewAuthService] Hasher is required")
	}

	v, err := NewValidator()
	if err != nil {
		return nil, err
	}

	return &AuthService{
		deps:      deps,
		validator: v,
	}, nil
}

// Signup registers a new user with the "user" role and returns its authenticated session.
// currentSessionID, when set, is destroyed so the browser never keeps two identities.
func (as *AuthService) Signup(ctx context.Context, in SignupInput, currentSessionID string) (sessions.Session, error) {
	valid, err := as.validator.ValidateSignup(in)
	if err != nil {
		return sessions.Anonymous(), err
	}

	existing, err := as.deps.Users.FindByEmail(ctx, valid.Email)
	if err != nil {
		return sessions.Anonymous(), storeFailure(err, "[AuthService.Signup] FindByEmail")
	}
	if len(existing) > 0 {
		return sessions.Anonymous(), DuplicateEmailErr
	}

	hash, err := as.deps.Hasher.Hash(valid.Password)
	if err != nil {
		return sessions.Anonymous(), errors.Wrap(err, "[AuthService.Signup] Hash")
	}

	user := users.New(valid.Name, valid.Email, hash)
	if err := as.deps.Users.Insert(ctx, user); err != nil {
		if errors.Is(err, ierrors.ErrDuplicate) {
			return sessions.Anonymous(), DuplicateEmailErr
		}
		return sessions.Anonymous(), storeFailure(err, "[AuthService.Signup] Insert")
	}

	log.Info().Str("email", user.Email).Msg("user signed up")
	return as.establish(ctx, currentSessionID, user)
}

// Login checks the credentials and returns a fresh authenticated session carrying
// the stored name and role. Unknown email and wrong password fail identically.
func (as *AuthService) Login(ctx context.Context, in LoginInput, currentSessionID string) (sessions.Session, error) {
	valid, err := as.validator.ValidateLogin(in)
	if err != nil {
		return sessions.Anonymous(), err
	}

	found, err := as.deps.Users.FindByEmail(ctx, valid.Email)
	if err != nil {
		return sessions.Anonymous(), storeFailure(err, "[AuthService.Login] FindByEmail")
	}
	if len(found) != 1 {
		if len(found) > 1 {
			log.Warn().Str("email", valid.Email).Int("matches", len(found)).Msg("ambiguous login email")
		}
		return sessions.Anonymous(), InvalidCredentialsErr
	}

	user := found[0]
	if !as.deps.Hasher.Verify(valid.Password, user.PasswordHash) {
		return sessions.Anonymous(), InvalidCredentialsErr
	}

	return as.establish(ctx, currentSessionID, user)
}

// Logout destroys the session. Idempotent; the returned error is only useful for logging,
// the browser is treated as logged out either way.
func (as *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := as.deps.Sessions.Destroy(ctx, sessionID); err != nil {
		return storeFailure(err, "[AuthService.Logout] Destroy")
	}
	return nil
}

func (as *AuthService) establish(ctx context.Context, currentSessionID string, user *users.User) (sessions.Session, error) {
	if err := as.deps.Sessions.Destroy(ctx, currentSessionID); err != nil {
		return sessions.Anonymous(), storeFailure(err, "[AuthService] destroy previous session")
	}

	session, err := as.deps.Sessions.Establish(ctx, user.Name, user.Email, user.Role)
	if err != nil {
		return sessions.Anonymous(), storeFailure(err, "[AuthService] Establish")
	}
	return session, nil
}

// storeFailure returns an error matching both StoreErr and err. Callers log it.
func storeFailure(err error, op string) error {
	return fmt.Errorf("%s: %w: %w", op, StoreErr, err)
}
