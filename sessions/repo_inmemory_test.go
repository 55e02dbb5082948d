package sessions_test

import (
	"context"
	"testing"
	"time"

	ierrors "github.com/jrsteele09/go-members-server/internal/errors"
	"github.com/jrsteele09/go-members-server/sessions"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepo(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	repo := sessions.NewInMemoryRepo()

	require.Error(t, repo.Upsert(ctx, sessions.Session{}))

	require.NoError(t, repo.Upsert(ctx, sessions.Session{ID: "a", Authenticated: true, ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, repo.Upsert(ctx, sessions.Session{ID: "b", Authenticated: true, ExpiresAt: now.Add(-time.Second)}))
	require.Equal(t, 2, repo.Len())

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "a", got.ID)

	_, err = repo.Get(ctx, "missing")
	require.ErrorIs(t, err, ierrors.ErrSessionNotFound)
	_, err = repo.Get(ctx, "")
	require.ErrorIs(t, err, ierrors.ErrSessionNotFound)

	require.NoError(t, repo.DeleteExpired(ctx, now))
	require.Equal(t, 1, repo.Len())

	require.NoError(t, repo.Delete(ctx, "a"))
	require.NoError(t, repo.Delete(ctx, "a"))
	require.Equal(t, 0, repo.Len())
}
