package pit

import (
	"context"

	"github.com/google/uuid"

	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
)

// UseCase replays a store's snapshot history.
type UseCase struct {
	repo Repository
}

// NewUseCase builds a pit UseCase over one store's Repository (env or
// secret; callers construct two instances, one per store).
func NewUseCase(repo Repository) *UseCase {
	return &UseCase{repo: repo}
}

// Record appends a new snapshot for (orgID, appID, envTypeID).
func (u *UseCase) Record(ctx context.Context, orgID, appID, envTypeID string, changes []ChangeEntry) (uuid.UUID, error) {
	id := uuid.New()
	err := u.repo.Create(ctx, &Snapshot{
		UUID:      id,
		OrgID:     orgID,
		AppID:     appID,
		EnvTypeID: envTypeID,
		Changes:   changes,
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// ReplayAt reconstructs the logical state of (orgID, appID, envTypeID) as of
// the snapshot whose uuid matches target, applying every CREATE/UPDATE in
// order and removing DELETEs. Fails with apperrors.ErrNotFound if target is
// never encountered in the stored log.
func (u *UseCase) ReplayAt(ctx context.Context, orgID, appID, envTypeID string, target uuid.UUID) ([]KV, error) {
	snapshots, err := u.repo.ListAscending(ctx, orgID, appID, envTypeID)
	if err != nil {
		return nil, err
	}

	state := make(map[string]string)
	found := false
	for _, snap := range snapshots {
		for _, change := range snap.Changes {
			switch change.Operation {
			case OpCreate, OpUpdate:
				state[change.Key] = change.Value
			case OpDelete:
				delete(state, change.Key)
			}
		}
		if snap.UUID == target {
			found = true
			break
		}
	}
	if !found {
		return nil, apperrors.ErrNotFound
	}

	out := make([]KV, 0, len(state))
	for k, v := range state {
		out = append(out, KV{Key: k, Value: v})
	}
	return out, nil
}
