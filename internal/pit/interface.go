package pit

import "context"

// Repository persists and replays snapshot rows for one store (env or
// secret).
type Repository interface {
	// Create appends a snapshot.
	Create(ctx context.Context, snapshot *Snapshot) error

	// ListAscending returns every snapshot for (orgID, appID, envTypeID) in
	// ascending id order.
	ListAscending(ctx context.Context, orgID, appID, envTypeID string) ([]*Snapshot, error)
}
