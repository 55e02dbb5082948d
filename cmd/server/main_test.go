package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-members-server/internal/config"
	"github.com/jrsteele09/go-members-server/sessions"
	"github.com/jrsteele09/go-members-server/sessions/redisrepo"
	"github.com/jrsteele09/go-members-server/users"
	fakeuserrepo "github.com/jrsteele09/go-members-server/users/repofake"
	"github.com/jrsteele09/go-members-server/users/sqlrepo"
)

func TestOpenUserStore(t *testing.T) {
	ctx := context.Background()

	c, err := config.NewFromLookup(config.FromMap(nil))
	require.NoError(t, err)
	repo, err := openUserStore(ctx, c)
	require.NoError(t, err)
	require.IsType(t, &fakeuserrepo.FakeUserRepo{}, repo)

	path := filepath.Join(t.TempDir(), "nested", "members.db")
	c, err = config.NewFromLookup(config.FromMap(map[string]string{"USER_STORE": "sqlite", "SQLITE_PATH": path}))
	require.NoError(t, err)
	repo, err = openUserStore(ctx, c)
	require.NoError(t, err)
	require.IsType(t, &sqlrepo.Repo{}, repo)
	require.NoError(t, repo.Close())
}

func TestOpenSessionStore(t *testing.T) {
	ctx := context.Background()

	c, err := config.NewFromLookup(config.FromMap(nil))
	require.NoError(t, err)
	repo, closeFn, err := openSessionStore(ctx, c)
	require.NoError(t, err)
	require.IsType(t, &sessions.InMemoryRepo{}, repo)
	require.NoError(t, closeFn())

	mr := miniredis.RunT(t)
	c, err = config.NewFromLookup(config.FromMap(map[string]string{"SESSION_STORE": "redis", "REDIS_ADDR": mr.Addr()}))
	require.NoError(t, err)
	repo, closeFn, err = openSessionStore(ctx, c)
	require.NoError(t, err)
	require.IsType(t, &redisrepo.Repo{}, repo)
	require.NoError(t, closeFn())
}

func TestMigrateAndSetRoleCommands(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "members.db")
	t.Setenv("ENV", "DEV")
	t.Setenv("USER_STORE", "sqlite")
	t.Setenv("SQLITE_PATH", path)

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		root := newRootCmd()
		root.SetOut(&out)
		root.SetErr(&out)
		root.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "none.env")}, args...))
		err := root.ExecuteContext(ctx)
		return out.String(), err
	}

	out, err := run("migrate")
	require.NoError(t, err)
	require.Contains(t, out, "sqlite schema is up to date")

	repo, err := sqlrepo.Open(ctx, sqlrepo.DialectSQLite, path)
	require.NoError(t, err)
	require.NoError(t, repo.Insert(ctx, users.New("Alice", "a@x.com", "hash")))
	require.NoError(t, repo.Close())

	out, err = run("set-role", "a@x.com", "admin")
	require.NoError(t, err)
	require.Contains(t, out, "a@x.com is now admin")

	_, err = run("set-role", "a@x.com", "superuser")
	require.ErrorIs(t, err, users.UnknownRoleErr)

	_, err = run("set-role", "only-one-arg")
	require.Error(t, err)

	repo, err = sqlrepo.Open(ctx, sqlrepo.DialectSQLite, path)
	require.NoError(t, err)
	defer repo.Close()
	found, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, users.RoleAdmin, found[0].Role)
}

func TestCommandsRejectMemoryStore(t *testing.T) {
	t.Setenv("ENV", "DEV")
	t.Setenv("USER_STORE", "memory")

	root := newRootCmd()
	root.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), "none.env"), "migrate"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	require.ErrorIs(t, root.Execute(), errMemoryStore)
}
