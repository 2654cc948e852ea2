package usecase

import (
	"context"
	"time"

	cryptoDomain "github.com/EnvSync-Cloud/envsync/internal/crypto/domain"
	cryptoService "github.com/EnvSync-Cloud/envsync/internal/crypto/service"
	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
)

// RootKeyRepository persists the singleton RootKeyMeta row.
type RootKeyRepository interface {
	// Get returns the singleton row, or cryptoDomain.ErrRootKeyNotInitialized.
	Get(ctx context.Context) (*cryptoDomain.RootKeyMeta, error)

	// Create inserts the singleton row, failing if one already exists.
	Create(ctx context.Context, meta *cryptoDomain.RootKeyMeta) error
}

// RootKeyUseCase implements the init reducer: validates a caller-supplied
// root key and records its KEK fingerprint for later out-of-band checks.
type RootKeyUseCase struct {
	repo RootKeyRepository
}

// NewRootKeyUseCase builds the RootKeyUseCase.
func NewRootKeyUseCase(repo RootKeyRepository) *RootKeyUseCase {
	return &RootKeyUseCase{repo: repo}
}

// Init derives the KEK from rootKey and writes RootKeyMeta if it does not
// already exist. Fails with cryptoDomain.ErrInvalidRootKey if rootKey is not
// 32 bytes, or cryptoDomain.ErrRootKeyAlreadyInitialized on a second call.
func (u *RootKeyUseCase) Init(ctx context.Context, rootKey []byte) (*cryptoDomain.RootKeyMeta, error) {
	if len(rootKey) != 32 {
		return nil, cryptoDomain.ErrInvalidRootKey
	}

	if _, err := u.repo.Get(ctx); err == nil {
		return nil, cryptoDomain.ErrRootKeyAlreadyInitialized
	} else if !apperrors.Is(err, cryptoDomain.ErrRootKeyNotInitialized) && !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	kek, err := cryptoService.DeriveKEK(rootKey)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(kek)

	meta := &cryptoDomain.RootKeyMeta{
		ID:             1,
		KekInfo:        cryptoDomain.RootKeyInfo,
		KekFingerprint: cryptoService.Fingerprint(kek),
		InitializedAt:  time.Now().UTC(),
	}
	if err := u.repo.Create(ctx, meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// Verify checks that rootKey's derived KEK fingerprint matches the stored
// metadata, without persisting anything.
func (u *RootKeyUseCase) Verify(ctx context.Context, rootKey []byte) (bool, error) {
	meta, err := u.repo.Get(ctx)
	if err != nil {
		return false, err
	}
	kek, err := cryptoService.DeriveKEK(rootKey)
	if err != nil {
		return false, err
	}
	defer cryptoDomain.Zero(kek)
	return cryptoService.Fingerprint(kek) == meta.KekFingerprint, nil
}
