package usecase

import (
	"context"
	"crypto/rand"
	"fmt"

	cryptoDomain "github.com/EnvSync-Cloud/envsync/internal/crypto/domain"
	cryptoService "github.com/EnvSync-Cloud/envsync/internal/crypto/service"
	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
)

// dekAAD binds a wrapped DEK to the (org, scope) it belongs to, per §4.3:
// copying a row to a different scope must make unwrapping fail.
func dekAAD(orgID, scopeID string) []byte {
	return fmt.Appendf(nil, "dek:%s:%s", orgID, scopeID)
}

type envelopeUseCase struct {
	dekRepo     DekRepository
	aeadManager cryptoService.AEADManager
}

// NewEnvelopeUseCase builds the envelope layer over a DEK repository and the
// AEAD factory. Root keys are supplied per call (§5) and never retained.
func NewEnvelopeUseCase(dekRepo DekRepository, aeadManager cryptoService.AEADManager) EnvelopeUseCase {
	return &envelopeUseCase{dekRepo: dekRepo, aeadManager: aeadManager}
}

func (u *envelopeUseCase) scopeCipher(rootKey []byte, orgID, scopeID string) (cryptoService.AEAD, error) {
	kek, err := cryptoService.DeriveKEK(rootKey)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(kek)

	scopeKey, err := cryptoService.DeriveScopeKey(kek, orgID, scopeID)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(scopeKey)

	return u.aeadManager.CreateCipher(scopeKey, cryptoDomain.AESGCM)
}

func (u *envelopeUseCase) unwrap(cipher cryptoService.AEAD, row *cryptoDomain.Dek, orgID, scopeID string) ([]byte, error) {
	plain, err := cipher.Decrypt(row.EncryptedKey, row.Nonce, dekAAD(orgID, scopeID))
	if err != nil {
		return nil, err
	}
	if len(plain) != 32 {
		cryptoDomain.Zero(plain)
		return nil, cryptoDomain.ErrDekShape
	}
	return plain, nil
}

func (u *envelopeUseCase) wrapNew(ctx context.Context, cipher cryptoService.AEAD, orgID, scopeID string, version int) ([]byte, error) {
	dekPlain := make([]byte, 32)
	if _, err := rand.Read(dekPlain); err != nil {
		return nil, fmt.Errorf("generate dek: %w", err)
	}

	ciphertext, nonce, err := cipher.Encrypt(dekPlain, dekAAD(orgID, scopeID))
	if err != nil {
		cryptoDomain.Zero(dekPlain)
		return nil, err
	}

	row := &cryptoDomain.Dek{
		OrgID:        orgID,
		ScopeID:      scopeID,
		Algorithm:    cryptoDomain.AESGCM,
		EncryptedKey: ciphertext,
		Nonce:        nonce,
		Version:      version,
	}
	if err := u.dekRepo.Create(ctx, row); err != nil {
		cryptoDomain.Zero(dekPlain)
		return nil, err
	}
	return dekPlain, nil
}

func (u *envelopeUseCase) GetOrCreateDEK(ctx context.Context, rootKey []byte, orgID, scopeID string) ([]byte, int, error) {
	cipher, err := u.scopeCipher(rootKey, orgID, scopeID)
	if err != nil {
		return nil, 0, err
	}

	current, err := u.dekRepo.GetCurrent(ctx, orgID, scopeID)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		dekPlain, err := u.wrapNew(ctx, cipher, orgID, scopeID, 1)
		if err != nil {
			return nil, 0, err
		}
		return dekPlain, 1, nil
	}
	if err != nil {
		return nil, 0, err
	}

	dekPlain, err := u.unwrap(cipher, current, orgID, scopeID)
	if err != nil {
		return nil, 0, err
	}
	return dekPlain, current.Version, nil
}

func (u *envelopeUseCase) GetDEKAtVersion(ctx context.Context, rootKey []byte, orgID, scopeID string, version int) ([]byte, error) {
	cipher, err := u.scopeCipher(rootKey, orgID, scopeID)
	if err != nil {
		return nil, err
	}

	row, err := u.dekRepo.GetByVersion(ctx, orgID, scopeID, version)
	if err != nil {
		return nil, err
	}

	return u.unwrap(cipher, row, orgID, scopeID)
}

func (u *envelopeUseCase) RotateDataKey(ctx context.Context, rootKey []byte, orgID, scopeID string) (int, error) {
	cipher, err := u.scopeCipher(rootKey, orgID, scopeID)
	if err != nil {
		return 0, err
	}

	current, err := u.dekRepo.GetCurrent(ctx, orgID, scopeID)
	nextVersion := 1
	if err == nil {
		nextVersion = current.Version + 1
	} else if !apperrors.Is(err, apperrors.ErrNotFound) {
		return 0, err
	}

	dekPlain, err := u.wrapNew(ctx, cipher, orgID, scopeID, nextVersion)
	if err != nil {
		return 0, err
	}
	cryptoDomain.Zero(dekPlain)
	return nextVersion, nil
}
