package users_test

import (
	"strings"
	"testing"

	"github.com/jrsteele09/go-members-server/users"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := users.NewBcryptHasher(bcrypt.MinCost)

	for _, password := range []string{"pw1", "correct horse battery staple", "ünïcødé", " "} {
		digest, err := h.Hash(password)
		require.NoError(t, err)
		require.NotEqual(t, password, digest)
		require.True(t, h.Verify(password, digest), "password %q", password)
		require.False(t, h.Verify(password+"x", digest))
	}
}

func TestBcryptHasher_SaltedDigestsDiffer(t *testing.T) {
	h := users.NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash("pw1")
	require.NoError(t, err)
	second, err := h.Hash("pw1")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.True(t, h.Verify("pw1", first))
	require.True(t, h.Verify("pw1", second))
}

func TestBcryptHasher_CostIsEmbedded(t *testing.T) {
	h := users.NewBcryptHasher(bcrypt.MinCost + 1)
	require.Equal(t, bcrypt.MinCost+1, h.Cost())

	digest, err := h.Hash("pw1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	require.Equal(t, bcrypt.MinCost+1, cost)
}

func TestBcryptHasher_OutOfRangeCostFallsBack(t *testing.T) {
	require.Equal(t, users.DefaultHashCost, users.NewBcryptHasher(0).Cost())
	require.Equal(t, users.DefaultHashCost, users.NewBcryptHasher(bcrypt.MaxCost+1).Cost())
}

func TestBcryptHasher_MalformedDigest(t *testing.T) {
	h := users.NewBcryptHasher(bcrypt.MinCost)

	for _, digest := range []string{"", "not-a-hash", "$2a$10$short", strings.Repeat("$", 60)} {
		require.NotPanics(t, func() {
			require.False(t, h.Verify("pw1", digest))
		})
	}
}

func TestBcryptHasher_TooLong(t *testing.T) {
	h := users.NewBcryptHasher(bcrypt.MinCost)
	_, err := h.Hash(strings.Repeat("a", users.MaxPasswordBytes+1))
	require.Error(t, err)
}

func TestHashPasswordHelpers(t *testing.T) {
	digest, err := users.HashPassword("pw1")
	require.NoError(t, err)
	require.True(t, users.CheckPasswordHash("pw1", digest))
	require.False(t, users.CheckPasswordHash("pw2", digest))
}
