package mock

import (
	"context"

	"github.com/marsoolapp/marsool"
)

type UserStore struct {
	ByIdFn func(ctx context.Context, userId string) (marsool.User, error)

	SaveProfileFn func(ctx context.Context, userId string, fields marsool.ProfileFields) error
}

func (s UserStore) ById(ctx context.Context, userId string) (marsool.User, error) {
	return s.ByIdFn(ctx, userId)
}

func (s UserStore) SaveProfile(ctx context.Context, userId string, fields marsool.ProfileFields) error {
	return s.SaveProfileFn(ctx, userId, fields)
}
