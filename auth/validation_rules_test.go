package auth

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func TestRegisterRules(t *testing.T) {
	require.NoError(t, registerRules(validator.New(), customRules))

	err := registerRules(validator.New(), map[string]validator.Func{"": customRules[bcryptMaxTag]})
	require.Error(t, err)

	err = registerRules(validator.New(), map[string]validator.Func{bcryptMaxTag: nil})
	require.Error(t, err)
}

func TestNewValidator_KnowsCustomRules(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	// an unregistered tag would panic inside validator
	require.NotPanics(t, func() {
		_, _ = v.ValidateSignup(SignupInput{Name: "Alice", Email: "a@x.com", Password: "pw1"})
	})
}
