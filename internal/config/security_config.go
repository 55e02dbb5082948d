package config

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/jrsteele09/go-members-server/sessions"
)

const (
	sessionSecretVar       = "SESSION_SECRET"
	legacySessionSecretVar = "NODE_SESSION_SECRET"
	sessionTTLVar          = "SESSION_TTL"
	bcryptCostVar          = "BCRYPT_COST"
	adminEmailVar          = "ADMIN_EMAIL"
	adminPasswordVar       = "ADMIN_PASSWORD"
	adminNameVar           = "ADMIN_NAME"
)

type SecurityConfig interface {
	GetSessionSecret() []byte
	GetSessionTTL() time.Duration
	GetBcryptCost() int
	GetAdminEmail() string
	GetAdminPassword() string
	GetAdminName() string
}

type Security struct {
	sessionSecret []byte
	sessionTTL    time.Duration
	bcryptCost    int
	adminEmail    string
	adminPassword string
	adminName     string
}

var _ SecurityConfig = Security{}

func loadSecurity(lookup LookupFunc, dev bool) (Security, error) {
	s := Security{
		adminEmail:    lookup.get(adminEmailVar, ""),
		adminPassword: lookup.get(adminPasswordVar, ""),
		adminName:     lookup.get(adminNameVar, "Administrator"),
	}

	secret := lookup.get(sessionSecretVar, lookup.get(legacySessionSecretVar, ""))
	switch {
	case secret == "" && !dev:
		return Security{}, fmt.Errorf("[config] %s is required outside %s", sessionSecretVar, DevEnv)
	case secret == "":
		generated := make([]byte, 32)
		if _, err := rand.Read(generated); err != nil {
			return Security{}, fmt.Errorf("[config] generate session secret: %w", err)
		}
		log.Warn().Msg("no " + sessionSecretVar + " set, sessions will not survive a restart")
		s.sessionSecret = generated
	case len(secret) < sessions.MinSecretLength:
		return Security{}, fmt.Errorf("[config] %s must be at least %d characters", sessionSecretVar, sessions.MinSecretLength)
	default:
		s.sessionSecret = []byte(secret)
	}

	ttl, err := time.ParseDuration(lookup.get(sessionTTLVar, "1h"))
	if err != nil {
		return Security{}, fmt.Errorf("[config] %s: %w", sessionTTLVar, err)
	}
	if ttl <= 0 {
		return Security{}, errors.New("[config] " + sessionTTLVar + " must be positive")
	}
	s.sessionTTL = ttl

	cost, err := strconv.Atoi(lookup.get(bcryptCostVar, "10"))
	if err != nil {
		return Security{}, fmt.Errorf("[config] %s: %w", bcryptCostVar, err)
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return Security{}, fmt.Errorf("[config] %s must be between %d and %d", bcryptCostVar, bcrypt.MinCost, bcrypt.MaxCost)
	}
	s.bcryptCost = cost

	return s, nil
}

func (s Security) GetSessionSecret() []byte {
	return s.sessionSecret
}

func (s Security) GetSessionTTL() time.Duration {
	return s.sessionTTL
}

func (s Security) GetBcryptCost() int {
	return s.bcryptCost
}

// GetAdminEmail is the account created at startup. Empty disables the bootstrap.
func (s Security) GetAdminEmail() string {
	return s.adminEmail
}

// GetAdminPassword may be empty, in which case one is generated on first creation
func (s Security) GetAdminPassword() string {
	return s.adminPassword
}

func (s Security) GetAdminName() string {
	return s.adminName
}
