package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/EnvSync-Cloud/envsync/internal/crypto/domain"
	cryptoService "github.com/EnvSync-Cloud/envsync/internal/crypto/service"
	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
)

// fakeDekRepository is an in-memory DekRepository for envelope usecase tests.
type fakeDekRepository struct {
	mu   sync.Mutex
	rows map[string][]*cryptoDomain.Dek // key: orgID+"/"+scopeID, ordered by version
}

func newFakeDekRepository() *fakeDekRepository {
	return &fakeDekRepository{rows: make(map[string][]*cryptoDomain.Dek)}
}

func (f *fakeDekRepository) key(orgID, scopeID string) string { return orgID + "/" + scopeID }

func (f *fakeDekRepository) GetCurrent(_ context.Context, orgID, scopeID string) (*cryptoDomain.Dek, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := f.rows[f.key(orgID, scopeID)]
	if len(rows) == 0 {
		return nil, cryptoDomain.ErrDekNotFound
	}
	return rows[len(rows)-1], nil
}

func (f *fakeDekRepository) GetByVersion(_ context.Context, orgID, scopeID string, version int) (*cryptoDomain.Dek, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows[f.key(orgID, scopeID)] {
		if row.Version == version {
			return row, nil
		}
	}
	return nil, cryptoDomain.ErrDekNotFound
}

func (f *fakeDekRepository) Create(_ context.Context, dek *cryptoDomain.Dek) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := f.key(dek.OrgID, dek.ScopeID)
	dek.ID = int64(len(f.rows[k]) + 1)
	f.rows[k] = append(f.rows[k], dek)
	return nil
}

func testRootKey() []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

func TestEnvelopeUseCase_GetOrCreateDEK(t *testing.T) {
	repo := newFakeDekRepository()
	uc := NewEnvelopeUseCase(repo, cryptoService.NewAEADManager())
	ctx := context.Background()
	root := testRootKey()

	dek1, version1, err := uc.GetOrCreateDEK(ctx, root, "orgA", "app1:env")
	require.NoError(t, err)
	assert.Len(t, dek1, 32)
	assert.Equal(t, 1, version1)

	dek2, version2, err := uc.GetOrCreateDEK(ctx, root, "orgA", "app1:env")
	require.NoError(t, err)
	assert.Equal(t, dek1, dek2)
	assert.Equal(t, version1, version2)
}

func TestEnvelopeUseCase_RotateDataKey(t *testing.T) {
	repo := newFakeDekRepository()
	uc := NewEnvelopeUseCase(repo, cryptoService.NewAEADManager())
	ctx := context.Background()
	root := testRootKey()

	_, _, err := uc.GetOrCreateDEK(ctx, root, "orgA", "app1:env")
	require.NoError(t, err)

	nextVersion, err := uc.RotateDataKey(ctx, root, "orgA", "app1:env")
	require.NoError(t, err)
	assert.Equal(t, 2, nextVersion)

	current, _, err := uc.GetOrCreateDEK(ctx, root, "orgA", "app1:env")
	require.NoError(t, err)
	assert.Len(t, current, 32)

	// Old version must still decrypt independently of the new current version.
	oldDek, err := uc.GetDEKAtVersion(ctx, root, "orgA", "app1:env", 1)
	require.NoError(t, err)
	assert.Len(t, oldDek, 32)
	assert.NotEqual(t, oldDek, current)
}

func TestEnvelopeUseCase_CrossScopeRejection(t *testing.T) {
	repo := newFakeDekRepository()
	uc := NewEnvelopeUseCase(repo, cryptoService.NewAEADManager())
	ctx := context.Background()
	root := testRootKey()

	_, _, err := uc.GetOrCreateDEK(ctx, root, "orgA", "app1:env")
	require.NoError(t, err)

	row, err := repo.GetByVersion(ctx, "orgA", "app1:env", 1)
	require.NoError(t, err)

	// Splice the row under a different scope key: AAD mismatch must fail.
	repo.mu.Lock()
	repo.rows[repo.key("orgA", "app2:env")] = []*cryptoDomain.Dek{{
		OrgID: "orgA", ScopeID: "app2:env", Version: 1,
		Algorithm: row.Algorithm, EncryptedKey: row.EncryptedKey, Nonce: row.Nonce,
	}}
	repo.mu.Unlock()

	_, err = uc.GetDEKAtVersion(ctx, root, "orgA", "app2:env", 1)
	assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	assert.True(t, apperrors.Is(err, apperrors.ErrMACMismatch))
}
