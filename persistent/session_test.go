package persistent

import (
	"context"
	"testing"

	"github.com/marsoolapp/marsool"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/buntdb"
)

func openSessionStore(t *testing.T) *SessionStore {
	bdb, err := buntdb.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { bdb.Close() })
	return &SessionStore{Buntdb: bdb}
}

func TestSessionRegisterAndLookup(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	store := openSessionStore(t)

	session, err := store.RegisterNew(ctx, "42")
	if !assert.NoError(err) {
		return
	}
	assert.Equal("42", session.UserId)
	assert.NotEmpty(session.Id)
	assert.NotEmpty(session.Token)
	assert.NotContains(session.Token, ":")
	assert.True(session.ExpiresAt.After(session.LastAccessedAt))

	found, err := store.ByToken(session.Token)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(session.Id, found.Id)
	assert.Equal(session.UserId, found.UserId)

	exists, err := store.Exists(session.Token)
	if assert.NoError(err) {
		assert.True(exists)
	}
}

func TestSessionUnknownToken(t *testing.T) {
	assert := assert.New(t)
	store := openSessionStore(t)

	_, err := store.ByToken("unknown")
	assert.ErrorIs(err, marsool.ErrSessionNotFound)

	exists, err := store.Exists("unknown")
	if assert.NoError(err) {
		assert.False(exists)
	}
}

func TestSessionInvalidate(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	store := openSessionStore(t)

	session, err := store.RegisterNew(ctx, "42")
	if !assert.NoError(err) {
		return
	}

	err = store.InvalidateByToken(session.Token)
	if !assert.NoError(err) {
		return
	}

	_, err = store.ByToken(session.Token)
	assert.ErrorIs(err, marsool.ErrSessionNotFound)

	err = store.InvalidateByToken(session.Token)
	assert.ErrorIs(err, marsool.ErrSessionNotFound)
}

func TestSessionTokensAreUnique(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	store := openSessionStore(t)

	first, err := store.RegisterNew(ctx, "42")
	if !assert.NoError(err) {
		return
	}
	second, err := store.RegisterNew(ctx, "42")
	if !assert.NoError(err) {
		return
	}
	assert.NotEqual(first.Token, second.Token)
	assert.NotEqual(first.Id, second.Id)
}
