// Package mysql implements gpg.Repository against MySQL.
package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/EnvSync-Cloud/envsync/internal/database"
	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
	"github.com/EnvSync-Cloud/envsync/internal/gpg"
)

// Repository backs the encrypted_gpg table.
type Repository struct {
	db *sql.DB
}

// NewRepository builds a Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByFingerprint(ctx context.Context, orgID, fingerprint string) (*gpg.Material, error) {
	querier := database.GetTx(ctx, r.db)
	row := querier.QueryRowContext(ctx, `
		SELECT id, org_id, fingerprint, encrypted_private_key, private_key_nonce,
		       encrypted_passphrase, passphrase_nonce, key_version, created_at, updated_at
		FROM encrypted_gpg
		WHERE org_id = ? AND fingerprint = ?`, orgID, fingerprint)

	var m gpg.Material
	err := row.Scan(&m.ID, &m.OrgID, &m.Fingerprint, &m.EncryptedPrivateKey, &m.PrivateKeyNonce,
		&m.EncryptedPassphrase, &m.PassphraseNonce, &m.KeyVersion, &m.CreatedAt, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to scan encrypted_gpg row")
	}
	return &m, nil
}

func (r *Repository) Upsert(ctx context.Context, m *gpg.Material) error {
	querier := database.GetTx(ctx, r.db)
	now := time.Now().UTC()
	result, err := querier.ExecContext(ctx, `
		INSERT INTO encrypted_gpg (org_id, fingerprint, encrypted_private_key, private_key_nonce,
		                           encrypted_passphrase, passphrase_nonce, key_version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			encrypted_private_key = VALUES(encrypted_private_key),
			private_key_nonce = VALUES(private_key_nonce),
			encrypted_passphrase = VALUES(encrypted_passphrase),
			passphrase_nonce = VALUES(passphrase_nonce),
			key_version = VALUES(key_version),
			updated_at = VALUES(updated_at)`,
		m.OrgID, m.Fingerprint, m.EncryptedPrivateKey, m.PrivateKeyNonce,
		m.EncryptedPassphrase, m.PassphraseNonce, m.KeyVersion, now, now)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert encrypted_gpg row")
	}
	m.UpdatedAt = now

	if id, err := result.LastInsertId(); err == nil && id > 0 {
		m.ID = id
		m.CreatedAt = now
		return nil
	}

	existing, err := r.GetByFingerprint(ctx, m.OrgID, m.Fingerprint)
	if err != nil {
		return err
	}
	m.ID, m.CreatedAt = existing.ID, existing.CreatedAt
	return nil
}

func (r *Repository) Delete(ctx context.Context, orgID, fingerprint string) error {
	querier := database.GetTx(ctx, r.db)
	result, err := querier.ExecContext(ctx, `
		DELETE FROM encrypted_gpg WHERE org_id = ? AND fingerprint = ?`, orgID, fingerprint)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete encrypted_gpg row")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read rows affected")
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
