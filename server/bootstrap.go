package server

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-members-server/users"
)

const bootstrapTimeout = 10 * time.Second

// InitialiseAdmin makes sure the configured admin account exists and holds the admin role.
// Nothing happens when no admin email is configured.
func (s *Server) InitialiseAdmin() error {
	email := s.config.GetAdminEmail()
	if email == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), bootstrapTimeout)
	defer cancel()

	generatedPassword, err := BootstrapAdmin(ctx, s.deps.Users, s.deps.Hasher, s.config.GetAdminName(), email, s.config.GetAdminPassword())
	if err != nil {
		return err
	}

	if generatedPassword != "" {
		log.Warn().
			Str("email", email).
			Str("password", generatedPassword).
			Msg("created admin user, SAVE THIS PASSWORD - it will not be displayed again")
	}
	return nil
}

// BootstrapAdmin creates the admin user when the email is unknown, or promotes the
// existing user. When password is empty a random one is generated and returned.
func BootstrapAdmin(ctx context.Context, repo users.UserRepo, hasher users.PasswordHasher, name, email, password string) (generatedPassword string, err error) {
	existing, err := repo.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("[BootstrapAdmin] failed to check for existing admin: %w", err)
	}

	if len(existing) > 0 {
		if existing[0].IsAdmin() {
			log.Info().Str("email", email).Msg("admin user already exists")
			return "", nil
		}
		if err := repo.UpdateRole(ctx, email, users.RoleAdmin); err != nil {
			return "", fmt.Errorf("[BootstrapAdmin] failed to promote %s: %w", email, err)
		}
		log.Info().Str("email", email).Msg("promoted existing user to admin")
		return "", nil
	}

	if password == "" {
		passwordBytes := make([]byte, 16)
		if _, err := rand.Read(passwordBytes); err != nil {
			return "", fmt.Errorf("[BootstrapAdmin] failed to generate password: %w", err)
		}
		password = base64.RawURLEncoding.EncodeToString(passwordBytes)
		generatedPassword = password
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("[BootstrapAdmin] failed to hash password: %w", err)
	}

	admin := users.New(name, email, hash)
	admin.Role = users.RoleAdmin
	if err := repo.Insert(ctx, admin); err != nil {
		return "", fmt.Errorf("[BootstrapAdmin] failed to create admin: %w", err)
	}

	log.Info().Str("email", email).Msg("created admin user")
	return generatedPassword, nil
}
