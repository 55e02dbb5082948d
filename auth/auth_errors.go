package auth

import (
	"errors"

	"github.com/jrsteele09/go-members-server/users"
)

var (
	ValidationErr         = errors.New("invalid input")
	InvalidCredentialsErr = errors.New("invalid email or password")
	DuplicateEmailErr     = errors.New("email already registered")
	StoreErr              = errors.New("store unavailable")
	NotAuthenticatedErr   = errors.New("not authenticated")
	ForbiddenErr          = errors.New("forbidden")
	UnknownRoleErr        = users.UnknownRoleErr
)
