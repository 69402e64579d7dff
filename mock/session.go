package mock

import (
	"context"

	"github.com/marsoolapp/marsool"
)

type SessionStore struct {
	RegisterNewFn func(ctx context.Context, userId string) (marsool.UserSession, error)

	ByTokenFn func(token string) (marsool.UserSession, error)

	ExistsFn func(token string) (bool, error)

	InvalidateByTokenFn func(token string) error
}

func (s SessionStore) RegisterNew(ctx context.Context, userId string) (marsool.UserSession, error) {
	return s.RegisterNewFn(ctx, userId)
}

func (s SessionStore) ByToken(token string) (marsool.UserSession, error) {
	return s.ByTokenFn(token)
}

func (s SessionStore) Exists(token string) (bool, error) {
	return s.ExistsFn(token)
}

func (s SessionStore) InvalidateByToken(token string) error {
	return s.InvalidateByTokenFn(token)
}
