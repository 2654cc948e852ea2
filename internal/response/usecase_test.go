package response

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
)

type fakeRepository struct {
	entries map[string]*Entry
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{entries: make(map[string]*Entry)}
}

func (f *fakeRepository) Create(_ context.Context, entry *Entry) error {
	if _, exists := f.entries[entry.RequestID]; exists {
		return apperrors.ErrAlreadyExists
	}
	entry.CreatedAt = time.Now().UTC()
	f.entries[entry.RequestID] = entry
	return nil
}

func (f *fakeRepository) Get(_ context.Context, requestID string) (*Entry, error) {
	entry, ok := f.entries[requestID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}

func (f *fakeRepository) Delete(_ context.Context, requestID string) error {
	if _, ok := f.entries[requestID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.entries, requestID)
	return nil
}

func (f *fakeRepository) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var removed int64
	for id, entry := range f.entries {
		if entry.CreatedAt.Before(cutoff) {
			delete(f.entries, id)
			removed++
		}
	}
	return removed, nil
}

func TestUseCase_WriteAndCollect(t *testing.T) {
	repo := newFakeRepository()
	uc := NewUseCase(repo)
	ctx := context.Background()

	require.NoError(t, uc.Write(ctx, "req-1", "payload"))

	data, err := uc.Collect(ctx, "req-1")
	require.NoError(t, err)
	assert.Equal(t, "payload", data)

	_, err = uc.Collect(ctx, "req-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUseCase_WriteRejectsDuplicateRequestID(t *testing.T) {
	repo := newFakeRepository()
	uc := NewUseCase(repo)
	ctx := context.Background()

	require.NoError(t, uc.Write(ctx, "req-1", "first"))
	err := uc.Write(ctx, "req-1", "second")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestUseCase_CleanExpired(t *testing.T) {
	repo := newFakeRepository()
	uc := NewUseCase(repo)
	ctx := context.Background()

	require.NoError(t, uc.Write(ctx, "old", "stale"))
	repo.entries["old"].CreatedAt = time.Now().UTC().Add(-48 * time.Hour)

	require.NoError(t, uc.Write(ctx, "fresh", "new"))

	removed, err := uc.CleanExpired(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = uc.Collect(ctx, "fresh")
	require.NoError(t, err)
}
