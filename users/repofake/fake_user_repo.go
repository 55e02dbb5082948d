package fakeuserrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	ierrors "github.com/jrsteele09/go-members-server/internal/errors"
	"github.com/jrsteele09/go-members-server/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	users    map[string]*users.User
	emailIds map[string]string // email to user id
	lock     sync.RWMutex

	// Err, when set, is returned by every call to simulate an unavailable store
	Err error
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users:    make(map[string]*users.User),
		emailIds: make(map[string]string),
	}
}

// SetErr makes every following call fail with err, nil restores normal behaviour
func (ur *FakeUserRepo) SetErr(err error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()
	ur.Err = err
}

func (ur *FakeUserRepo) FindByEmail(_ context.Context, email string) ([]*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	if ur.Err != nil {
		return nil, ur.Err
	}

	id, ok := ur.emailIds[email]
	if !ok {
		return []*users.User{}, nil
	}
	u := *ur.users[id]
	return []*users.User{&u}, nil
}

func (ur *FakeUserRepo) Insert(_ context.Context, user *users.User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if ur.Err != nil {
		return ur.Err
	}

	if _, ok := ur.emailIds[user.Email]; ok {
		return ierrors.Wrapf(ierrors.ErrDuplicate, "insert user %s", user.Email)
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = users.RoleUser
	}
	stored := *user
	ur.users[user.ID] = &stored
	ur.emailIds[user.Email] = user.ID
	return nil
}

func (ur *FakeUserRepo) UpdateRole(_ context.Context, email string, role users.RoleType) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if ur.Err != nil {
		return ur.Err
	}

	id, ok := ur.emailIds[email]
	if !ok {
		return ierrors.Wrapf(ierrors.ErrNotFound, "update role %s", email)
	}
	ur.users[id].Role = role
	return nil
}

func (ur *FakeUserRepo) ListAll(_ context.Context) ([]users.UserSummary, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	if ur.Err != nil {
		return nil, ur.Err
	}

	list := make([]users.UserSummary, 0, len(ur.users))
	for _, v := range ur.users {
		list = append(list, v.Summary())
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].Email < list[j].Email
	})
	return list, nil
}

func (ur *FakeUserRepo) Close() error {
	return nil
}
