package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/marsoolapp/marsool"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/buntdb"
)

// Guest profiles live under a single fixed key. One device, one record.
const profileKey = "guest_profile"

// ProfileStore persists the guest profile in the on-device key-value store.
type ProfileStore struct {
	Buntdb *buntdb.DB
}

var _ marsool.GuestBackend = (*ProfileStore)(nil)

func (s *ProfileStore) Load(ctx context.Context) marsool.LoadResult {
	var serialized string
	err := s.Buntdb.View(func(tx *buntdb.Tx) error {
		var err error
		serialized, err = tx.Get(profileKey)
		return err
	})
	if err != nil {
		if errors.Is(err, buntdb.ErrNotFound) {
			return marsool.EmptyResult()
		}
		return marsool.FailedResult(fmt.Errorf("bunt view: %w", err))
	}

	var fields marsool.ProfileFields
	if err := json.Unmarshal([]byte(serialized), &fields); err != nil {
		// malformed blob counts as no data, never as a user-facing error
		logrus.WithError(err).Warningln("Malformed guest profile, treating as absent.")
		return marsool.EmptyResult()
	}
	return marsool.Loaded(fields)
}

func (s *ProfileStore) Save(ctx context.Context, fields marsool.ProfileFields) error {
	serialized, err := json.Marshal(&fields)
	if err != nil {
		return fmt.Errorf("profile serialize: %w", err)
	}
	err = s.Buntdb.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(profileKey, string(serialized), nil)
		return err
	})
	if err != nil {
		return fmt.Errorf("bunt update: %w", err)
	}
	return nil
}

func (s *ProfileStore) Clear(ctx context.Context) error {
	err := s.Buntdb.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(profileKey)
		return err
	})
	if err != nil && !errors.Is(err, buntdb.ErrNotFound) {
		return fmt.Errorf("bunt update: %w", err)
	}
	return nil
}
