package audit

import "context"

// Repository persists the append-only audit log.
type Repository interface {
	// GetLatest returns the highest-id entry for orgID, or
	// apperrors.ErrNotFound if the org has no entries yet.
	GetLatest(ctx context.Context, orgID string) (*Entry, error)

	// Create appends an entry.
	Create(ctx context.Context, entry *Entry) error

	// List returns every entry for orgID in ascending id order, for chain
	// verification.
	List(ctx context.Context, orgID string) ([]*Entry, error)
}
