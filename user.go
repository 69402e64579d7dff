package marsool

import (
	"context"
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

type User struct {
	Id        string
	CreatedAt time.Time
	Profile   ProfileFields
}

type UserStore interface {
	ById(ctx context.Context, userId string) (User, error)

	// Whole-record replace of the user's profile. Creates the record when
	// the user has none yet.
	SaveProfile(ctx context.Context, userId string, fields ProfileFields) error
}
