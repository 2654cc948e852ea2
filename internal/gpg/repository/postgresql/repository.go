// Package postgresql implements gpg.Repository against PostgreSQL.
package postgresql

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
		WHERE org_id = $1 AND fingerprint = $2`, orgID, fingerprint)

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
	row := querier.QueryRowContext(ctx, `
		INSERT INTO encrypted_gpg (org_id, fingerprint, encrypted_private_key, private_key_nonce,
		                            encrypted_passphrase, passphrase_nonce, key_version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		ON CONFLICT (org_id, fingerprint) DO UPDATE SET
			encrypted_private_key = EXCLUDED.encrypted_private_key,
			private_key_nonce = EXCLUDED.private_key_nonce,
			encrypted_passphrase = EXCLUDED.encrypted_passphrase,
			passphrase_nonce = EXCLUDED.passphrase_nonce,
			key_version = EXCLUDED.key_version,
			updated_at = $8
		RETURNING id, created_at`,
		m.OrgID, m.Fingerprint, m.EncryptedPrivateKey, m.PrivateKeyNonce,
		m.EncryptedPassphrase, m.PassphraseNonce, m.KeyVersion, now)
	if err := row.Scan(&m.ID, &m.CreatedAt); err != nil {
		return apperrors.Wrap(err, "failed to upsert encrypted_gpg row")
	}
	m.UpdatedAt = now
	return nil
}

func (r *Repository) Delete(ctx context.Context, orgID, fingerprint string) error {
	querier := database.GetTx(ctx, r.db)
	result, err := querier.ExecContext(ctx, `
		DELETE FROM encrypted_gpg WHERE org_id = $1 AND fingerprint = $2`, orgID, fingerprint)
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
