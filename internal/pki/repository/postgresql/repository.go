// Package postgresql implements pki.Repository against PostgreSQL.
package postgresql

import (
	"context"
	"database/sql"
	"time"

	"github.com/EnvSync-Cloud/envsync/internal/database"
	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
	"github.com/EnvSync-Cloud/envsync/internal/pki"
)

// Repository backs pki_certificates and pki_crl_entries.
type Repository struct {
	db *sql.DB
}

// NewRepository builds a Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const certColumns = `id, org_id, cert_type, serial_hex, subject_cn, cert_der,
	encrypted_private_key, private_key_nonce, key_version, status, created_at, updated_at`

func scanCert(row rowScanner) (*pki.Certificate, error) {
	var c pki.Certificate
	err := row.Scan(&c.ID, &c.OrgID, &c.CertType, &c.SerialHex, &c.SubjectCN, &c.CertDER,
		&c.EncryptedPrivateKey, &c.PrivateKeyNonce, &c.KeyVersion, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to scan pki_certificates row")
	}
	return &c, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *Repository) GetActiveRoot(ctx context.Context) (*pki.Certificate, error) {
	querier := database.GetTx(ctx, r.db)
	row := querier.QueryRowContext(ctx, `
		SELECT `+certColumns+`
		FROM pki_certificates
		WHERE cert_type = 'root_ca' AND status = 'active'`)
	return scanCert(row)
}

func (r *Repository) GetActiveOrgCA(ctx context.Context, orgID string) (*pki.Certificate, error) {
	querier := database.GetTx(ctx, r.db)
	row := querier.QueryRowContext(ctx, `
		SELECT `+certColumns+`
		FROM pki_certificates
		WHERE org_id = $1 AND cert_type = 'org_ca' AND status = 'active'`, orgID)
	return scanCert(row)
}

func (r *Repository) GetBySerial(ctx context.Context, orgID, serialHex string) (*pki.Certificate, error) {
	querier := database.GetTx(ctx, r.db)
	row := querier.QueryRowContext(ctx, `
		SELECT `+certColumns+`
		FROM pki_certificates
		WHERE org_id = $1 AND serial_hex = $2`, orgID, serialHex)
	return scanCert(row)
}

func (r *Repository) Create(ctx context.Context, cert *pki.Certificate) error {
	querier := database.GetTx(ctx, r.db)
	now := time.Now().UTC()
	cert.CreatedAt, cert.UpdatedAt = now, now
	row := querier.QueryRowContext(ctx, `
		INSERT INTO pki_certificates (org_id, cert_type, serial_hex, subject_cn, cert_der,
			encrypted_private_key, private_key_nonce, key_version, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING id`,
		cert.OrgID, cert.CertType, cert.SerialHex, cert.SubjectCN, cert.CertDER,
		cert.EncryptedPrivateKey, cert.PrivateKeyNonce, cert.KeyVersion, cert.Status, now)
	if err := row.Scan(&cert.ID); err != nil {
		return apperrors.Wrap(err, "failed to create pki_certificates row")
	}
	return nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id int64, status string) error {
	querier := database.GetTx(ctx, r.db)
	result, err := querier.ExecContext(ctx, `
		UPDATE pki_certificates SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().UTC(), id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update pki_certificates row")
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

func (r *Repository) CreateCrlEntry(ctx context.Context, entry *pki.CrlEntry) error {
	querier := database.GetTx(ctx, r.db)
	row := querier.QueryRowContext(ctx, `
		INSERT INTO pki_crl_entries (org_id, serial_hex, reason, revoked_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, entry.OrgID, entry.SerialHex, entry.Reason, entry.RevokedAt)
	if err := row.Scan(&entry.ID); err != nil {
		return apperrors.Wrap(err, "failed to create pki_crl_entries row")
	}
	return nil
}

func (r *Repository) ListCrlEntries(ctx context.Context, orgID string) ([]*pki.CrlEntry, error) {
	querier := database.GetTx(ctx, r.db)
	rows, err := querier.QueryContext(ctx, `
		SELECT id, org_id, serial_hex, reason, revoked_at
		FROM pki_crl_entries
		WHERE org_id = $1
		ORDER BY id`, orgID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list pki_crl_entries")
	}
	defer rows.Close()

	var out []*pki.CrlEntry
	for rows.Next() {
		var e pki.CrlEntry
		if err := rows.Scan(&e.ID, &e.OrgID, &e.SerialHex, &e.Reason, &e.RevokedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan pki_crl_entries row")
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (r *Repository) GetCrlEntryBySerial(ctx context.Context, orgID, serialHex string) (*pki.CrlEntry, error) {
	querier := database.GetTx(ctx, r.db)
	row := querier.QueryRowContext(ctx, `
		SELECT id, org_id, serial_hex, reason, revoked_at
		FROM pki_crl_entries
		WHERE org_id = $1 AND serial_hex = $2`, orgID, serialHex)

	var e pki.CrlEntry
	err := row.Scan(&e.ID, &e.OrgID, &e.SerialHex, &e.Reason, &e.RevokedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to scan pki_crl_entries row")
	}
	return &e, nil
}
