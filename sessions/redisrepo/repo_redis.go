// Package redisrepo stores sessions in Redis, letting Redis expire them.
package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	ierrors "github.com/jrsteele09/go-members-server/internal/errors"
	"github.com/jrsteele09/go-members-server/sessions"
)

const keyPrefix = "members:sess:"

// Repo is a sessions.Repo backed by Redis
type Repo struct {
	client  redis.UniversalClient
	nowTime func() time.Time
}

var _ sessions.Repo = (*Repo)(nil)

// Options configures a Redis connection
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Dial connects to Redis and checks the connection
func Dial(ctx context.Context, opts Options) (*Repo, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[redisrepo Dial] ping %s: %w", opts.Addr, err)
	}
	return New(client), nil
}

func New(client redis.UniversalClient) *Repo {
	return &Repo{client: client, nowTime: time.Now}
}

// WithNowTime sets the clock used to compute key expiry (primarily for testing)
func (r *Repo) WithNowTime(nowFunc func() time.Time) *Repo {
	r.nowTime = nowFunc
	return r
}

func key(sessionID string) string {
	return keyPrefix + sessionID
}

func (r *Repo) Upsert(ctx context.Context, session sessions.Session) error {
	if session.ID == "" {
		return fmt.Errorf("sessionID is required")
	}

	ttl := session.ExpiresAt.Sub(r.nowTime())
	if ttl <= 0 {
		// Already expired, make sure nothing stale remains
		return r.Delete(ctx, session.ID)
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.client.Set(ctx, key(session.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, sessionID string) (sessions.Session, error) {
	if sessionID == "" {
		return sessions.Session{}, ierrors.ErrSessionNotFound
	}

	data, err := r.client.Get(ctx, key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return sessions.Session{}, ierrors.ErrSessionNotFound
		}
		return sessions.Session{}, fmt.Errorf("redis get: %w", err)
	}

	var session sessions.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return sessions.Session{}, fmt.Errorf("unmarshal session: %w", err)
	}
	return session, nil
}

func (r *Repo) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// DeleteExpired is a no-op, Redis expires the keys itself
func (r *Repo) DeleteExpired(context.Context, time.Time) error {
	return nil
}

func (r *Repo) Close() error {
	return r.client.Close()
}
