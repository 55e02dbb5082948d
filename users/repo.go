package users

import "context"

// UserRepo is the credential store. Every call may block on I/O and may fail.
type UserRepo interface {
	// FindByEmail returns every user stored under the email, normally zero or one.
	FindByEmail(ctx context.Context, email string) ([]*User, error)

	// Insert stores a new user. A clash on the email returns errors.ErrDuplicate.
	Insert(ctx context.Context, user *User) error

	// UpdateRole changes the role of the user with the email. Returns errors.ErrNotFound
	// when there is no such user.
	UpdateRole(ctx context.Context, email string, role RoleType) error

	// ListAll returns every user without password hashes, ordered by email.
	ListAll(ctx context.Context) ([]UserSummary, error)

	Close() error
}
