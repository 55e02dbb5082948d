package auth_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/jrsteele09/go-members-server/auth"
	"github.com/stretchr/testify/require"
)

func TestValidator_ValidateSignup(t *testing.T) {
	v, err := auth.NewValidator()
	require.NoError(t, err)

	t.Run("valid input is trimmed", func(t *testing.T) {
		in, err := v.ValidateSignup(auth.SignupInput{Name: "  Alice ", Email: " a@x.com ", Password: " pw1 "})
		require.NoError(t, err)
		require.Equal(t, "Alice", in.Name)
		require.Equal(t, "a@x.com", in.Email)
		require.Equal(t, " pw1 ", in.Password, "password must not be trimmed")
	})

	t.Run("every bad field is reported", func(t *testing.T) {
		_, err := v.ValidateSignup(auth.SignupInput{Name: "   ", Email: "not-an-email", Password: ""})
		require.Error(t, err)
		require.ErrorIs(t, err, auth.ValidationErr)

		var verr *auth.ValidationError
		require.True(t, errors.As(err, &verr))
		require.Len(t, verr.Fields, 3)
		require.True(t, verr.Has("name"))
		require.True(t, verr.Has("email"))
		require.True(t, verr.Has("password"))
		require.Contains(t, verr.Message(), "name is required")
		require.Contains(t, verr.Message(), "email must be a valid email address")
	})

	t.Run("missing email reports required", func(t *testing.T) {
		_, err := v.ValidateSignup(auth.SignupInput{Name: "Alice", Password: "pw1"})
		var verr *auth.ValidationError
		require.True(t, errors.As(err, &verr))
		require.Len(t, verr.Fields, 1)
		require.Equal(t, "email", verr.Fields[0].Field)
		require.Equal(t, "required", verr.Fields[0].Rule)
	})

	t.Run("password longer than bcrypt accepts", func(t *testing.T) {
		_, err := v.ValidateSignup(auth.SignupInput{Name: "Alice", Email: "a@x.com", Password: strings.Repeat("p", 73)})
		var verr *auth.ValidationError
		require.True(t, errors.As(err, &verr))
		require.True(t, verr.Has("password"))
		require.Contains(t, verr.Error(), "at most 72 bytes")

		_, err = v.ValidateSignup(auth.SignupInput{Name: "Alice", Email: "a@x.com", Password: strings.Repeat("p", 72)})
		require.NoError(t, err)
	})
}

func TestValidator_ValidateLogin(t *testing.T) {
	v, err := auth.NewValidator()
	require.NoError(t, err)

	in, err := v.ValidateLogin(auth.LoginInput{Email: " a@x.com", Password: "pw1"})
	require.NoError(t, err)
	require.Equal(t, "a@x.com", in.Email)

	_, err = v.ValidateLogin(auth.LoginInput{Email: "", Password: ""})
	var verr *auth.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 2)

	_, err = v.ValidateLogin(auth.LoginInput{Email: "a@x.com"})
	require.ErrorIs(t, err, auth.ValidationErr)
}
