package service

import (
	"github.com/noah-isme/clarifyai-api/internal/auth"
)

// authorizeOwner allows the action only when the persisted owner is the
// caller. Records without an owner are editable by nobody. The role claim is
// deliberately not consulted.
//
// Callers fetch the record, check, then act in separate statements; a
// concurrent change between the check and the write is not detected.
func authorizeOwner(owner *string, actor auth.Identity) error {
	if owner == nil || actor.ID == "" || *owner != actor.ID {
		return ErrForbidden
	}
	return nil
}
