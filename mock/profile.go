package mock

import (
	"context"

	"github.com/marsoolapp/marsool"
)

type ProfileBackend struct {
	LoadFn func(ctx context.Context) marsool.LoadResult

	SaveFn func(ctx context.Context, fields marsool.ProfileFields) error
}

func (b ProfileBackend) Load(ctx context.Context) marsool.LoadResult {
	return b.LoadFn(ctx)
}

func (b ProfileBackend) Save(ctx context.Context, fields marsool.ProfileFields) error {
	return b.SaveFn(ctx, fields)
}

type GuestBackend struct {
	ProfileBackend

	ClearFn func(ctx context.Context) error
}

func (b GuestBackend) Clear(ctx context.Context) error {
	return b.ClearFn(ctx)
}

type Notifier struct {
	SaveSucceededFn func()

	SaveFailedFn func(err error)
}

func (n Notifier) SaveSucceeded() {
	n.SaveSucceededFn()
}

func (n Notifier) SaveFailed(err error) {
	n.SaveFailedFn(err)
}
