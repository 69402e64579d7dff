package marsool

import (
	"context"
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is what the profile editor sees of the authentication state.
// The editor reads it, never mutates it.
type Session struct {
	Authenticated bool
	UserId        string
}

// UserSession is a server-side bearer-token session.
type UserSession struct {
	Id             string
	UserId         string
	Token          string
	LastAccessedAt time.Time
	ExpiresAt      time.Time
}

type SessionStore interface {
	RegisterNew(ctx context.Context, userId string) (UserSession, error)

	ByToken(token string) (UserSession, error)

	Exists(token string) (bool, error)

	InvalidateByToken(token string) error
}
