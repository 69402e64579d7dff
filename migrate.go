package marsool

import (
	"context"
	"fmt"
)

// MigrateGuestProfile moves a guest-saved profile into the account backend
// after authentication. Guest values fill only fields the account record
// leaves empty; the merged record is written once and the guest copy is
// cleared on success. Returns whether a migration happened.
//
// A failed account load aborts the migration instead of guessing: merging
// against fields we could not fetch would silently overwrite account data.
func MigrateGuestProfile(ctx context.Context, guest GuestBackend, remote ProfileBackend) (bool, error) {
	guestResult := guest.Load(ctx)
	switch guestResult.Status {
	case LoadEmpty:
		return false, nil
	case LoadFailed:
		return false, fmt.Errorf("load guest profile: %w", guestResult.Err)
	}
	if guestResult.Fields.IsZero() {
		_ = guest.Clear(ctx)
		return false, nil
	}

	remoteResult := remote.Load(ctx)
	if remoteResult.Status == LoadFailed {
		return false, fmt.Errorf("load account profile: %w", remoteResult.Err)
	}

	merged := mergeFields(remoteResult.Fields, guestResult.Fields)
	if err := remote.Save(ctx, merged); err != nil {
		return false, fmt.Errorf("save merged profile: %w", err)
	}
	if err := guest.Clear(ctx); err != nil {
		return true, fmt.Errorf("clear guest profile: %w", err)
	}
	return true, nil
}

// mergeFields keeps every non-empty base field and fills the gaps from
// fallback.
func mergeFields(base ProfileFields, fallback ProfileFields) ProfileFields {
	fields := []Field{FieldUsername, FieldDisplayName, FieldPhone, FieldEmail, FieldAddress}
	merged := base
	for _, field := range fields {
		if merged.Get(field) == "" {
			merged.Set(field, fallback.Get(field))
		}
	}
	return merged
}
