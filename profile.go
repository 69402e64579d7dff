package marsool

import (
	"context"
	"errors"
)

var ErrNoSession = errors.New("no authenticated session")

// Field identifies one editable profile attribute.
type Field string

const (
	FieldUsername    Field = "username"
	FieldDisplayName Field = "displayName"
	FieldPhone       Field = "phone"
	FieldEmail       Field = "email"
	FieldAddress     Field = "address"
)

// ProfileFields is the whole-record unit of persistence. Saves always
// replace the full record; there is no per-field patch.
type ProfileFields struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

func (f *ProfileFields) Set(field Field, value string) {
	switch field {
	case FieldUsername:
		f.Username = value
	case FieldDisplayName:
		f.DisplayName = value
	case FieldPhone:
		f.Phone = value
	case FieldEmail:
		f.Email = value
	case FieldAddress:
		f.Address = value
	}
}

func (f ProfileFields) Get(field Field) string {
	switch field {
	case FieldUsername:
		return f.Username
	case FieldDisplayName:
		return f.DisplayName
	case FieldPhone:
		return f.Phone
	case FieldEmail:
		return f.Email
	case FieldAddress:
		return f.Address
	default:
		return ""
	}
}

func (f ProfileFields) IsZero() bool {
	return f == ProfileFields{}
}

type LoadStatus byte

const (
	// LoadLoaded - backend returned a stored record.
	LoadLoaded LoadStatus = iota
	// LoadEmpty - backend reachable, no record stored.
	LoadEmpty
	// LoadFailed - backend unreachable or the stored record could not be
	// retrieved. Callers degrade to prior fields instead of failing.
	LoadFailed
)

// LoadResult keeps "no data" distinguishable from "fetch failed" so the
// editor and tests do not have to guess from zero values.
type LoadResult struct {
	Status LoadStatus
	Fields ProfileFields
	Err    error
}

func Loaded(fields ProfileFields) LoadResult {
	return LoadResult{Status: LoadLoaded, Fields: fields}
}

func EmptyResult() LoadResult {
	return LoadResult{Status: LoadEmpty}
}

func FailedResult(err error) LoadResult {
	return LoadResult{Status: LoadFailed, Err: err}
}

// ProfileBackend is a storage destination for one profile record.
type ProfileBackend interface {
	Load(ctx context.Context) LoadResult

	// Whole-record replace. A failed write leaves the previous record intact.
	Save(ctx context.Context, fields ProfileFields) error
}

// GuestBackend additionally supports dropping the stored record, used when
// a guest profile has been migrated to an account.
type GuestBackend interface {
	ProfileBackend

	Clear(ctx context.Context) error
}

// BackendForSession selects the storage destination for a session. Both
// backends are passed in explicitly; nothing ambient decides the choice.
func BackendForSession(session Session, remote ProfileBackend, guest ProfileBackend) ProfileBackend {
	if session.Authenticated && session.UserId != "" {
		return remote
	}
	return guest
}
