// Package authz decides whether an authenticated identity may act on a record.
package authz

import "errors"

// ErrForbidden indicates the identity does not own the resource.
var ErrForbidden = errors.New("forbidden")

// RequireOwner allows access iff identity equals the record's owner.
// A missing identity is an authentication concern and is rejected before
// this check is reached.
func RequireOwner(identity, owner string) error {
	if identity == owner {
		return nil
	}
	return ErrForbidden
}
