package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/EnvSync-Cloud/envsync/internal/crypto/domain"
)

type fakeRootKeyRepository struct {
	meta *cryptoDomain.RootKeyMeta
}

func (f *fakeRootKeyRepository) Get(_ context.Context) (*cryptoDomain.RootKeyMeta, error) {
	if f.meta == nil {
		return nil, cryptoDomain.ErrRootKeyNotInitialized
	}
	return f.meta, nil
}

func (f *fakeRootKeyRepository) Create(_ context.Context, meta *cryptoDomain.RootKeyMeta) error {
	if f.meta != nil {
		return cryptoDomain.ErrRootKeyAlreadyInitialized
	}
	f.meta = meta
	return nil
}

func testRootKey32() []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

func TestRootKeyUseCase_InitAndVerify(t *testing.T) {
	repo := &fakeRootKeyRepository{}
	uc := NewRootKeyUseCase(repo)
	ctx := context.Background()

	meta, err := uc.Init(ctx, testRootKey32())
	require.NoError(t, err)
	assert.Equal(t, cryptoDomain.RootKeyInfo, meta.KekInfo)
	assert.NotEmpty(t, meta.KekFingerprint)

	ok, err := uc.Verify(ctx, testRootKey32())
	require.NoError(t, err)
	assert.True(t, ok)

	wrongKey := testRootKey32()
	wrongKey[0] ^= 0xFF
	ok, err = uc.Verify(ctx, wrongKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRootKeyUseCase_InitRejectsSecondCall(t *testing.T) {
	repo := &fakeRootKeyRepository{}
	uc := NewRootKeyUseCase(repo)
	ctx := context.Background()

	_, err := uc.Init(ctx, testRootKey32())
	require.NoError(t, err)

	_, err = uc.Init(ctx, testRootKey32())
	assert.ErrorIs(t, err, cryptoDomain.ErrRootKeyAlreadyInitialized)
}

func TestRootKeyUseCase_InitRejectsWrongSize(t *testing.T) {
	repo := &fakeRootKeyRepository{}
	uc := NewRootKeyUseCase(repo)

	_, err := uc.Init(context.Background(), []byte("too-short"))
	assert.ErrorIs(t, err, cryptoDomain.ErrInvalidRootKey)
}
