package payload

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	cryptoDomain "github.com/EnvSync-Cloud/envsync/internal/crypto/domain"
	cryptoService "github.com/EnvSync-Cloud/envsync/internal/crypto/service"
	cryptoUsecase "github.com/EnvSync-Cloud/envsync/internal/crypto/usecase"
	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
)

// UseCase implements create/get/update/delete/list and their batch forms
// over one payload Repository, generalized across env vars and secrets by
// the Kind type parameter (see interface.go's Kind/EnvVar/Secret).
type UseCase[K Kind] struct {
	repo        Repository
	envelope    cryptoUsecase.EnvelopeUseCase
	aeadManager cryptoService.AEADManager
}

// NewUseCase builds a payload use case bound to one Kind.
func NewUseCase[K Kind](repo Repository, envelope cryptoUsecase.EnvelopeUseCase, aeadManager cryptoService.AEADManager) *UseCase[K] {
	return &UseCase[K]{repo: repo, envelope: envelope, aeadManager: aeadManager}
}

func (u *UseCase[K]) kind() K {
	var k K
	return k
}

func (u *UseCase[K]) scopeID(appID string) string {
	return fmt.Sprintf("%s:%s", appID, u.kind().Prefix())
}

func (u *UseCase[K]) aad(orgID, appID, envTypeID, key string) []byte {
	return fmt.Appendf(nil, "%s:%s:%s:%s:%s", u.kind().Prefix(), orgID, appID, envTypeID, key)
}

func (u *UseCase[K]) cipherForVersion(ctx context.Context, rootKey []byte, orgID, appID string, version int) (cryptoService.AEAD, error) {
	dekPlain, err := u.envelope.GetDEKAtVersion(ctx, rootKey, orgID, u.scopeID(appID), version)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(dekPlain)
	return u.aeadManager.CreateCipher(dekPlain, cryptoDomain.AESGCM)
}

func (u *UseCase[K]) cipherCurrent(ctx context.Context, rootKey []byte, orgID, appID string) (cryptoService.AEAD, int, error) {
	dekPlain, version, err := u.envelope.GetOrCreateDEK(ctx, rootKey, orgID, u.scopeID(appID))
	if err != nil {
		return nil, 0, err
	}
	defer cryptoDomain.Zero(dekPlain)
	cipher, err := u.aeadManager.CreateCipher(dekPlain, cryptoDomain.AESGCM)
	return cipher, version, err
}

func (u *UseCase[K]) decrypt(row *Record, cipher cryptoService.AEAD, orgID string) (string, error) {
	plain, err := cipher.Decrypt(row.Ciphertext, row.Nonce, u.aad(orgID, row.AppID, row.EnvTypeID, row.Key))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(plain) {
		return "", apperrors.ErrUTF8
	}
	return string(plain), nil
}

// Create fails with apperrors.ErrAlreadyExists if (org, app, env_type, key) is
// already present.
func (u *UseCase[K]) Create(ctx context.Context, rootKey []byte, orgID, appID, envTypeID, key, value string) error {
	if _, err := u.repo.GetByKey(ctx, orgID, appID, envTypeID, key); err == nil {
		return apperrors.ErrAlreadyExists
	} else if !apperrors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	cipher, version, err := u.cipherCurrent(ctx, rootKey, orgID, appID)
	if err != nil {
		return err
	}

	ciphertext, nonce, err := cipher.Encrypt([]byte(value), u.aad(orgID, appID, envTypeID, key))
	if err != nil {
		return err
	}

	return u.repo.Create(ctx, &Record{
		OrgID: orgID, AppID: appID, EnvTypeID: envTypeID, Key: key,
		Ciphertext: ciphertext, Nonce: nonce, KeyVersion: version,
	})
}

// Get decrypts the current value for (org, app, env_type, key).
func (u *UseCase[K]) Get(ctx context.Context, rootKey []byte, orgID, appID, envTypeID, key string) (KV, error) {
	row, err := u.repo.GetByKey(ctx, orgID, appID, envTypeID, key)
	if err != nil {
		return KV{}, err
	}

	cipher, err := u.cipherForVersion(ctx, rootKey, orgID, appID, row.KeyVersion)
	if err != nil {
		return KV{}, err
	}

	value, err := u.decrypt(row, cipher, orgID)
	if err != nil {
		return KV{}, err
	}
	return KV{Key: row.Key, Value: value, CreatedAt: row.CreatedAt}, nil
}

// Update re-encrypts under the current DEK version, preserving CreatedAt
// and the row's identity.
func (u *UseCase[K]) Update(ctx context.Context, rootKey []byte, orgID, appID, envTypeID, key, value string) error {
	row, err := u.repo.GetByKey(ctx, orgID, appID, envTypeID, key)
	if err != nil {
		return err
	}

	cipher, version, err := u.cipherCurrent(ctx, rootKey, orgID, appID)
	if err != nil {
		return err
	}

	ciphertext, nonce, err := cipher.Encrypt([]byte(value), u.aad(orgID, appID, envTypeID, key))
	if err != nil {
		return err
	}

	row.Ciphertext = ciphertext
	row.Nonce = nonce
	row.KeyVersion = version
	row.UpdatedAt = time.Now().UTC()
	return u.repo.Update(ctx, row)
}

// Delete removes the row by the four-tuple, failing apperrors.ErrNotFound if
// absent.
func (u *UseCase[K]) Delete(ctx context.Context, orgID, appID, envTypeID, key string) error {
	return u.repo.Delete(ctx, orgID, appID, envTypeID, key)
}

// List decrypts every row for (org, app, env_type), each with its own
// stored key_version.
func (u *UseCase[K]) List(ctx context.Context, rootKey []byte, orgID, appID, envTypeID string) ([]KV, error) {
	rows, err := u.repo.List(ctx, orgID, appID, envTypeID)
	if err != nil {
		return nil, err
	}

	ciphers := make(map[int]cryptoService.AEAD)
	out := make([]KV, 0, len(rows))
	for _, row := range rows {
		cipher, ok := ciphers[row.KeyVersion]
		if !ok {
			cipher, err = u.cipherForVersion(ctx, rootKey, orgID, appID, row.KeyVersion)
			if err != nil {
				return nil, err
			}
			ciphers[row.KeyVersion] = cipher
		}
		value, err := u.decrypt(row, cipher, orgID)
		if err != nil {
			return nil, err
		}
		out = append(out, KV{Key: row.Key, Value: value, CreatedAt: row.CreatedAt})
	}
	return out, nil
}

// BatchCreate fetches one DEK for the whole batch (the current version) and
// creates every item under it, each with its own per-key AAD.
func (u *UseCase[K]) BatchCreate(ctx context.Context, rootKey []byte, orgID, appID, envTypeID string, items map[string]string) error {
	cipher, version, err := u.cipherCurrent(ctx, rootKey, orgID, appID)
	if err != nil {
		return err
	}

	for key, value := range items {
		if _, err := u.repo.GetByKey(ctx, orgID, appID, envTypeID, key); err == nil {
			return apperrors.Wrap(apperrors.ErrAlreadyExists, key)
		} else if !apperrors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		ciphertext, nonce, err := cipher.Encrypt([]byte(value), u.aad(orgID, appID, envTypeID, key))
		if err != nil {
			return err
		}
		if err := u.repo.Create(ctx, &Record{
			OrgID: orgID, AppID: appID, EnvTypeID: envTypeID, Key: key,
			Ciphertext: ciphertext, Nonce: nonce, KeyVersion: version,
		}); err != nil {
			return err
		}
	}
	return nil
}

// BatchUpdate fetches one DEK for the whole batch and looks up each existing
// row individually before re-encrypting it.
func (u *UseCase[K]) BatchUpdate(ctx context.Context, rootKey []byte, orgID, appID, envTypeID string, items map[string]string) error {
	cipher, version, err := u.cipherCurrent(ctx, rootKey, orgID, appID)
	if err != nil {
		return err
	}

	for key, value := range items {
		row, err := u.repo.GetByKey(ctx, orgID, appID, envTypeID, key)
		if err != nil {
			return err
		}

		ciphertext, nonce, err := cipher.Encrypt([]byte(value), u.aad(orgID, appID, envTypeID, key))
		if err != nil {
			return err
		}
		row.Ciphertext = ciphertext
		row.Nonce = nonce
		row.KeyVersion = version
		row.UpdatedAt = time.Now().UTC()
		if err := u.repo.Update(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

// BatchDelete removes each key in turn, failing on the first missing one.
func (u *UseCase[K]) BatchDelete(ctx context.Context, orgID, appID, envTypeID string, keys []string) error {
	for _, key := range keys {
		if err := u.repo.Delete(ctx, orgID, appID, envTypeID, key); err != nil {
			return err
		}
	}
	return nil
}
