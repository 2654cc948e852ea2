package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
)

type fakeRepository struct {
	entries []*Entry
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{}
}

func (f *fakeRepository) GetLatest(_ context.Context, orgID string) (*Entry, error) {
	var latest *Entry
	for _, e := range f.entries {
		if e.OrgID == orgID {
			latest = e
		}
	}
	if latest == nil {
		return nil, apperrors.ErrNotFound
	}
	return latest, nil
}

func (f *fakeRepository) Create(_ context.Context, entry *Entry) error {
	entry.ID = int64(len(f.entries) + 1)
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeRepository) List(_ context.Context, orgID string) ([]*Entry, error) {
	var out []*Entry
	for _, e := range f.entries {
		if e.OrgID == orgID {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestUseCase_AppendChain(t *testing.T) {
	repo := newFakeRepository()
	uc := NewUseCase(repo)
	ctx := context.Background()

	first, err := uc.Append(ctx, "org1", "alice", "login", "{}", "logged in")
	require.NoError(t, err)
	assert.Equal(t, genesisHash, first.PreviousHash)

	second, err := uc.Append(ctx, "org1", "alice", "rotate_key", "{}", "rotated")
	require.NoError(t, err)
	assert.Equal(t, first.EntryHash, second.PreviousHash)
	assert.NotEqual(t, first.EntryHash, second.EntryHash)
}

func TestUseCase_VerifyChainDetectsTamper(t *testing.T) {
	repo := newFakeRepository()
	uc := NewUseCase(repo)
	ctx := context.Background()

	_, err := uc.Append(ctx, "org1", "alice", "login", "{}", "ok")
	require.NoError(t, err)
	_, err = uc.Append(ctx, "org1", "alice", "logout", "{}", "ok")
	require.NoError(t, err)

	report, err := uc.VerifyChain(ctx, "org1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), report.TotalChecked)
	assert.Empty(t, report.InvalidIDs)

	// Tamper with the first entry's action after the fact.
	repo.entries[0].Action = "tampered"

	report, err = uc.VerifyChain(ctx, "org1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2}, report.InvalidIDs, "tamper on entry 1 invalidates its own hash and breaks the chain for entry 2")
}
