package inmem

import (
	"context"
	"sync"
	"time"

	"github.com/marsoolapp/marsool"
)

type UserStore struct {
	users map[string]marsool.User
	mutex sync.RWMutex
}

func NewUserStore() *UserStore {
	return &UserStore{
		users: map[string]marsool.User{},
	}
}

var _ marsool.UserStore = (*UserStore)(nil)

func (s *UserStore) ById(ctx context.Context, userId string) (marsool.User, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	u, ok := s.users[userId]
	if !ok {
		return u, marsool.ErrUserNotFound
	}
	return u, nil
}

func (s *UserStore) SaveProfile(ctx context.Context, userId string, fields marsool.ProfileFields) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	user, ok := s.users[userId]
	if !ok {
		user = marsool.User{Id: userId, CreatedAt: time.Now()}
	}
	user.Profile = fields
	s.users[userId] = user
	return nil
}
