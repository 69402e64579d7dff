package persistent

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/marsoolapp/marsool"
	"github.com/uptrace/bun"
)

type UserProfile struct {
	bun.BaseModel `bun:"table:user_profile"`

	Id          int64     `bun:",pk,autoincrement"`
	UserId      string    `bun:",unique,notnull"`
	CreatedAt   time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	Username    string
	DisplayName string
	Phone       string
	Email       string
	Address     string
}

func (p UserProfile) ToDomain() marsool.User {
	return marsool.User{
		Id:        p.UserId,
		CreatedAt: p.CreatedAt,
		Profile: marsool.ProfileFields{
			Username:    p.Username,
			DisplayName: p.DisplayName,
			Phone:       p.Phone,
			Email:       p.Email,
			Address:     p.Address,
		},
	}
}

type UserStore struct {
	DB *bun.DB
}

var _ marsool.UserStore = (*UserStore)(nil)

func (s *UserStore) ById(ctx context.Context, userId string) (marsool.User, error) {
	profile := new(UserProfile)
	err := s.DB.NewSelect().
		Model(profile).
		Where(`user_id=?`, userId).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return marsool.User{}, marsool.ErrUserNotFound
		}
		return marsool.User{}, fmt.Errorf("select user profile: %w", err)
	}
	return profile.ToDomain(), nil
}

func (s *UserStore) SaveProfile(ctx context.Context, userId string, fields marsool.ProfileFields) error {
	profile := &UserProfile{
		UserId:      userId,
		Username:    fields.Username,
		DisplayName: fields.DisplayName,
		Phone:       fields.Phone,
		Email:       fields.Email,
		Address:     fields.Address,
	}
	_, err := s.DB.NewInsert().
		Model(profile).
		On(`CONFLICT (user_id) DO UPDATE SET username=EXCLUDED.username, ` +
			`display_name=EXCLUDED.display_name, phone=EXCLUDED.phone, ` +
			`email=EXCLUDED.email, address=EXCLUDED.address`).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert user profile: %w", err)
	}
	return nil
}
