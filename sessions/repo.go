package sessions

import (
	"context"
	"time"
)

// Repo persists sessions. Implementations must be safe for concurrent use.
type Repo interface {
	// Upsert creates or replaces the session stored under session.ID
	Upsert(ctx context.Context, session Session) error

	// Get retrieves a session by ID, errors.ErrSessionNotFound when absent
	Get(ctx context.Context, sessionID string) (Session, error)

	// Delete removes a session. Deleting an unknown session is not an error.
	Delete(ctx context.Context, sessionID string) error

	// DeleteExpired removes sessions whose expiry is at or before now
	DeleteExpired(ctx context.Context, now time.Time) error
}
