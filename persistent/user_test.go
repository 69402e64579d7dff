package persistent

import (
	"context"
	"testing"

	"github.com/marsoolapp/marsool"
	"github.com/marsoolapp/marsool/pgdb"
	"github.com/stretchr/testify/assert"
)

func TestUserStoreSaveAndLookup(t *testing.T) {
	if testing.Short() {
		t.SkipNow()
		return
	}
	assert := assert.New(t)
	ctx := context.Background()

	db := pgdb.OpenTest(ctx)
	defer db.Close()

	store := &UserStore{DB: db}

	_, err := store.ById(ctx, "42")
	assert.ErrorIs(err, marsool.ErrUserNotFound)

	fields := marsool.ProfileFields{
		Username:    "omar1",
		DisplayName: "Omar",
		Phone:       "0500000000",
		Email:       "omar@marsool.app",
		Address:     "Dammam",
	}
	err = store.SaveProfile(ctx, "42", fields)
	if !assert.NoError(err) {
		return
	}

	user, err := store.ById(ctx, "42")
	if !assert.NoError(err) {
		return
	}
	assert.Equal("42", user.Id)
	assert.Equal(fields, user.Profile)
	assert.False(user.CreatedAt.IsZero())

	// upsert replaces the whole record
	err = store.SaveProfile(ctx, "42", marsool.ProfileFields{DisplayName: "Omar"})
	if !assert.NoError(err) {
		return
	}
	user, err = store.ById(ctx, "42")
	if !assert.NoError(err) {
		return
	}
	assert.Equal(marsool.ProfileFields{DisplayName: "Omar"}, user.Profile)
}
