package fakeuserrepo_test

import (
	"context"
	"errors"
	"testing"

	ierrors "github.com/jrsteele09/go-members-server/internal/errors"
	"github.com/jrsteele09/go-members-server/users"
	fakeuserrepo "github.com/jrsteele09/go-members-server/users/repofake"
	"github.com/stretchr/testify/require"
)

func TestFakeUserRepo(t *testing.T) {
	ctx := context.Background()
	repo := fakeuserrepo.NewFakeUserRepo()

	found, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Empty(t, found)

	require.NoError(t, repo.Insert(ctx, users.New("Alice", "a@x.com", "h1")))
	require.NoError(t, repo.Insert(ctx, users.New("Bob", "b@x.com", "h2")))

	err = repo.Insert(ctx, users.New("Alice again", "a@x.com", "h3"))
	require.ErrorIs(t, err, ierrors.ErrDuplicate)

	found, err = repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "Alice", found[0].Name)
	require.NotEmpty(t, found[0].ID)

	// Returned users are copies
	found[0].Role = users.RoleAdmin
	again, _ := repo.FindByEmail(ctx, "a@x.com")
	require.Equal(t, users.RoleUser, again[0].Role)

	require.NoError(t, repo.UpdateRole(ctx, "a@x.com", users.RoleAdmin))
	require.ErrorIs(t, repo.UpdateRole(ctx, "nobody@x.com", users.RoleAdmin), ierrors.ErrNotFound)

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Equal(t, []users.UserSummary{
		{Name: "Alice", Email: "a@x.com", Role: users.RoleAdmin},
		{Name: "Bob", Email: "b@x.com", Role: users.RoleUser},
	}, list)
}

func TestFakeUserRepo_Unavailable(t *testing.T) {
	ctx := context.Background()
	repo := fakeuserrepo.NewFakeUserRepo()
	repo.Err = errors.New("connection refused")

	_, err := repo.FindByEmail(ctx, "a@x.com")
	require.Error(t, err)
	require.Error(t, repo.Insert(ctx, users.New("A", "a@x.com", "h")))
	require.Error(t, repo.UpdateRole(ctx, "a@x.com", users.RoleAdmin))
	_, err = repo.ListAll(ctx)
	require.Error(t, err)
}
