package gpg

import (
	"fmt"
	"unicode/utf8"

	"context"

	cryptoDomain "github.com/EnvSync-Cloud/envsync/internal/crypto/domain"
	cryptoService "github.com/EnvSync-Cloud/envsync/internal/crypto/service"
	cryptoUsecase "github.com/EnvSync-Cloud/envsync/internal/crypto/usecase"
	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
)

const scopeID = "gpg"

func privateKeyAAD(orgID, fingerprint string) []byte {
	return fmt.Appendf(nil, "gpg:%s:%s:private_key", orgID, fingerprint)
}

func passphraseAAD(orgID, fingerprint string) []byte {
	return fmt.Appendf(nil, "gpg:%s:%s:passphrase", orgID, fingerprint)
}

// UseCase implements the GPG material vault contract.
type UseCase struct {
	repo        Repository
	envelope    cryptoUsecase.EnvelopeUseCase
	aeadManager cryptoService.AEADManager
}

// NewUseCase builds the GPG vault use case.
func NewUseCase(repo Repository, envelope cryptoUsecase.EnvelopeUseCase, aeadManager cryptoService.AEADManager) *UseCase {
	return &UseCase{repo: repo, envelope: envelope, aeadManager: aeadManager}
}

func (u *UseCase) cipherCurrent(ctx context.Context, rootKey []byte, orgID string) (cryptoService.AEAD, int, error) {
	dekPlain, version, err := u.envelope.GetOrCreateDEK(ctx, rootKey, orgID, scopeID)
	if err != nil {
		return nil, 0, err
	}
	defer cryptoDomain.Zero(dekPlain)
	cipher, err := u.aeadManager.CreateCipher(dekPlain, cryptoDomain.AESGCM)
	return cipher, version, err
}

func (u *UseCase) cipherForVersion(ctx context.Context, rootKey []byte, orgID string, version int) (cryptoService.AEAD, error) {
	dekPlain, err := u.envelope.GetDEKAtVersion(ctx, rootKey, orgID, scopeID, version)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(dekPlain)
	return u.aeadManager.CreateCipher(dekPlain, cryptoDomain.AESGCM)
}

// StoreGPGMaterial encrypts and upserts both fields under the current "gpg"
// scope DEK version.
func (u *UseCase) StoreGPGMaterial(ctx context.Context, rootKey []byte, orgID, fingerprint, privateKey, passphrase string) error {
	cipher, version, err := u.cipherCurrent(ctx, rootKey, orgID)
	if err != nil {
		return err
	}

	privateKeyCT, privateKeyNonce, err := cipher.Encrypt([]byte(privateKey), privateKeyAAD(orgID, fingerprint))
	if err != nil {
		return err
	}
	passphraseCT, passphraseNonce, err := cipher.Encrypt([]byte(passphrase), passphraseAAD(orgID, fingerprint))
	if err != nil {
		return err
	}

	return u.repo.Upsert(ctx, &Material{
		OrgID:               orgID,
		Fingerprint:         fingerprint,
		EncryptedPrivateKey: privateKeyCT,
		PrivateKeyNonce:     privateKeyNonce,
		EncryptedPassphrase: passphraseCT,
		PassphraseNonce:     passphraseNonce,
		KeyVersion:          version,
	})
}

// GetGPGPrivateKey decrypts and returns the stored private key.
func (u *UseCase) GetGPGPrivateKey(ctx context.Context, rootKey []byte, orgID, fingerprint string) (string, error) {
	m, err := u.repo.GetByFingerprint(ctx, orgID, fingerprint)
	if err != nil {
		return "", err
	}
	cipher, err := u.cipherForVersion(ctx, rootKey, orgID, m.KeyVersion)
	if err != nil {
		return "", err
	}
	plain, err := cipher.Decrypt(m.EncryptedPrivateKey, m.PrivateKeyNonce, privateKeyAAD(orgID, fingerprint))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(plain) {
		return "", apperrors.ErrUTF8
	}
	return string(plain), nil
}

// GetGPGPassphrase decrypts and returns the stored passphrase.
func (u *UseCase) GetGPGPassphrase(ctx context.Context, rootKey []byte, orgID, fingerprint string) (string, error) {
	m, err := u.repo.GetByFingerprint(ctx, orgID, fingerprint)
	if err != nil {
		return "", err
	}
	cipher, err := u.cipherForVersion(ctx, rootKey, orgID, m.KeyVersion)
	if err != nil {
		return "", err
	}
	plain, err := cipher.Decrypt(m.EncryptedPassphrase, m.PassphraseNonce, passphraseAAD(orgID, fingerprint))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(plain) {
		return "", apperrors.ErrUTF8
	}
	return string(plain), nil
}

// DeleteGPGMaterial removes both fields at once.
func (u *UseCase) DeleteGPGMaterial(ctx context.Context, orgID, fingerprint string) error {
	return u.repo.Delete(ctx, orgID, fingerprint)
}

// GetMaterialMeta returns a material row without decrypting either field,
// for collaborators that only need the key version and timestamps.
func (u *UseCase) GetMaterialMeta(ctx context.Context, orgID, fingerprint string) (*Material, error) {
	return u.repo.GetByFingerprint(ctx, orgID, fingerprint)
}
