package authz

import "context"

// Repository persists authorization tuples.
type Repository interface {
	// Insert adds a tuple, silently ignoring exact duplicates per the
	// dedup-by-content invariant.
	Insert(ctx context.Context, t *Tuple) error

	// Delete removes the tuple matching the exact four-tuple, failing with
	// apperrors.ErrNotFound if absent.
	Delete(ctx context.Context, subject, relation, objectType, objectID string) error

	// Find returns tuples matching filter; empty fields are wildcards.
	Find(ctx context.Context, filter Filter) ([]*Tuple, error)
}
