package reducer

import (
	"context"

	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
)

// StoreGPGMaterial encrypts and upserts a member's GPG private key and passphrase.
func (d *Dispatcher) StoreGPGMaterial(ctx context.Context, rootKey []byte, orgID, fingerprint, privateKey, passphrase string) error {
	return apperrors.Wrap(
		d.gpgVault.StoreGPGMaterial(ctx, rootKey, orgID, fingerprint, privateKey, passphrase),
		"store_gpg_material")
}

// GetGPGPrivateKey decrypts and returns a stored GPG private key.
func (d *Dispatcher) GetGPGPrivateKey(ctx context.Context, rootKey []byte, orgID, fingerprint string) (string, error) {
	key, err := d.gpgVault.GetGPGPrivateKey(ctx, rootKey, orgID, fingerprint)
	if err != nil {
		return "", apperrors.Wrap(err, "get_gpg_private_key")
	}
	return key, nil
}

// GetGPGPassphrase decrypts and returns a stored GPG passphrase.
func (d *Dispatcher) GetGPGPassphrase(ctx context.Context, rootKey []byte, orgID, fingerprint string) (string, error) {
	passphrase, err := d.gpgVault.GetGPGPassphrase(ctx, rootKey, orgID, fingerprint)
	if err != nil {
		return "", apperrors.Wrap(err, "get_gpg_passphrase")
	}
	return passphrase, nil
}

// DeleteGPGMaterial removes both the private key and passphrase for a fingerprint.
func (d *Dispatcher) DeleteGPGMaterial(ctx context.Context, orgID, fingerprint string) error {
	return apperrors.Wrap(d.gpgVault.DeleteGPGMaterial(ctx, orgID, fingerprint), "delete_gpg_material")
}
