package sessions

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	ierrors "github.com/jrsteele09/go-members-server/internal/errors"
	"github.com/jrsteele09/go-members-server/users"
)

const (
	// DefaultTTL is how long an established session stays valid
	DefaultTTL = time.Hour

	sessionIDLength = 32 // bytes of randomness, 256 bits
)

// Manager owns the session lifecycle: Anonymous -> Authenticated -> Expired or destroyed.
type Manager struct {
	repo    Repo
	ttl     time.Duration
	nowTime func() time.Time
	newID   func() (string, error)
}

// ManagerOption defines a function type to modify the Manager instance.
type ManagerOption func(*Manager)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

// WithIDGenerator replaces the session id generator (primarily for testing)
func WithIDGenerator(gen func() (string, error)) ManagerOption {
	return func(m *Manager) {
		m.newID = gen
	}
}

// NewManager creates a session manager over repo. A non-positive ttl uses DefaultTTL.
func NewManager(repo Repo, ttl time.Duration, options ...ManagerOption) (*Manager, error) {
	if repo == nil {
		return nil, errors.New("[NewManager] session repo is required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	m := &Manager{
		repo:    repo,
		ttl:     ttl,
		nowTime: time.Now,
		newID:   NewSessionID,
	}
	for _, opt := range options {
		opt(m)
	}
	return m, nil
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

func (m *Manager) Now() time.Time {
	return m.nowTime()
}

// Establish creates a fresh authenticated session under a new identifier.
func (m *Manager) Establish(ctx context.Context, name, email string, role users.RoleType) (Session, error) {
	id, err := m.newID()
	if err != nil {
		return Session{}, fmt.Errorf("[Manager.Establish] session id: %w", err)
	}

	now := m.nowTime()
	session := Session{
		ID:            id,
		Authenticated: true,
		Name:          name,
		Email:         email,
		Role:          role,
		CreatedAt:     now,
		ExpiresAt:     now.Add(m.ttl),
	}
	if err := m.repo.Upsert(ctx, session); err != nil {
		return Session{}, fmt.Errorf("[Manager.Establish] store session: %w", err)
	}
	return session, nil
}

// Load returns the session stored under id. Unknown and expired sessions come back
// as Anonymous with a nil error; expired ones are removed from the store.
func (m *Manager) Load(ctx context.Context, id string) (Session, error) {
	if id == "" {
		return Anonymous(), nil
	}

	session, err := m.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ierrors.ErrSessionNotFound) {
			return Anonymous(), nil
		}
		return Anonymous(), fmt.Errorf("[Manager.Load] get session: %w", err)
	}

	if !session.IsValid(m.nowTime()) {
		if err := m.repo.Delete(ctx, id); err != nil {
			return Anonymous(), fmt.Errorf("[Manager.Load] delete expired session: %w", err)
		}
		return Anonymous(), nil
	}
	return session, nil
}

// Destroy invalidates the identifier so it cannot be replayed. Idempotent.
func (m *Manager) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := m.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("[Manager.Destroy] delete session: %w", err)
	}
	return nil
}

// PurgeExpired removes every expired session from the store
func (m *Manager) PurgeExpired(ctx context.Context) error {
	return m.repo.DeleteExpired(ctx, m.nowTime())
}

// NewSessionID returns a random, url safe session identifier
func NewSessionID() (string, error) {
	b := make([]byte, sessionIDLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
