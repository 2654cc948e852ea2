package pit

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
)

type fakeRepository struct {
	snapshots []*Snapshot
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{}
}

func (f *fakeRepository) Create(_ context.Context, snapshot *Snapshot) error {
	if snapshot.UUID == uuid.Nil {
		snapshot.UUID = uuid.New()
	}
	snapshot.ID = int64(len(f.snapshots) + 1)
	f.snapshots = append(f.snapshots, snapshot)
	return nil
}

func (f *fakeRepository) ListAscending(_ context.Context, orgID, appID, envTypeID string) ([]*Snapshot, error) {
	var out []*Snapshot
	for _, s := range f.snapshots {
		if s.OrgID == orgID && s.AppID == appID && s.EnvTypeID == envTypeID {
			out = append(out, s)
		}
	}
	return out, nil
}

func TestUseCase_ReplayAt(t *testing.T) {
	repo := newFakeRepository()
	uc := NewUseCase(repo)
	ctx := context.Background()

	id1, err := uc.Record(ctx, "org1", "app1", "env1", []ChangeEntry{
		{Key: "A", Value: "1", Operation: OpCreate},
		{Key: "B", Value: "2", Operation: OpCreate},
	})
	require.NoError(t, err)

	id2, err := uc.Record(ctx, "org1", "app1", "env1", []ChangeEntry{
		{Key: "A", Value: "updated", Operation: OpUpdate},
		{Key: "B", Value: "", Operation: OpDelete},
	})
	require.NoError(t, err)

	state, err := uc.ReplayAt(ctx, "org1", "app1", "env1", id1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []KV{{Key: "A", Value: "1"}, {Key: "B", Value: "2"}}, state)

	state, err = uc.ReplayAt(ctx, "org1", "app1", "env1", id2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []KV{{Key: "A", Value: "updated"}}, state)
}

func TestUseCase_ReplayAtUnknownUUID(t *testing.T) {
	repo := newFakeRepository()
	uc := NewUseCase(repo)
	ctx := context.Background()

	_, err := uc.Record(ctx, "org1", "app1", "env1", []ChangeEntry{{Key: "A", Value: "1", Operation: OpCreate}})
	require.NoError(t, err)

	_, err = uc.ReplayAt(ctx, "org1", "app1", "env1", uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
