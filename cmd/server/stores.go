package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-members-server/internal/config"
	"github.com/jrsteele09/go-members-server/sessions"
	"github.com/jrsteele09/go-members-server/sessions/redisrepo"
	"github.com/jrsteele09/go-members-server/users"
	fakeuserrepo "github.com/jrsteele09/go-members-server/users/repofake"
	"github.com/jrsteele09/go-members-server/users/sqlrepo"
)

func openUserStore(ctx context.Context, c config.StoreConfig) (users.UserRepo, error) {
	switch c.GetUserStore() {
	case config.StoreSQLite:
		path := c.GetSQLitePath()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite folder: %w", err)
		}
		return openSQLStore(ctx, sqlrepo.DialectSQLite, path)
	case config.StorePostgres:
		return openSQLStore(ctx, sqlrepo.DialectPostgres, c.GetDatabaseURL())
	}

	log.Warn().Msg("using the in-memory user store, accounts are lost on restart")
	return fakeuserrepo.NewFakeUserRepo(), nil
}

func openSQLStore(ctx context.Context, dialect sqlrepo.Dialect, dsn string) (users.UserRepo, error) {
	repo, err := sqlrepo.Open(ctx, dialect, dsn)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

func openSessionStore(ctx context.Context, c config.StoreConfig) (sessions.Repo, func() error, error) {
	if c.GetSessionStore() == config.StoreRedis {
		repo, err := redisrepo.Dial(ctx, redisrepo.Options{
			Addr:     c.GetRedisAddr(),
			Password: c.GetRedisPassword(),
			DB:       c.GetRedisDB(),
		})
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	}
	return sessions.NewInMemoryRepo(), func() error { return nil }, nil
}
