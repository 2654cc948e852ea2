// Package postgresql implements the DEK repository against PostgreSQL.
package postgresql

import (
	"context"
	"database/sql"
	"time"

	cryptoDomain "github.com/EnvSync-Cloud/envsync/internal/crypto/domain"
	"github.com/EnvSync-Cloud/envsync/internal/database"
	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
)

// DekRepository persists encryption_key rows in PostgreSQL.
type DekRepository struct {
	db *sql.DB
}

// NewDekRepository creates a new PostgreSQL-backed DEK repository.
func NewDekRepository(db *sql.DB) *DekRepository {
	return &DekRepository{db: db}
}

func (r *DekRepository) GetCurrent(ctx context.Context, orgID, scopeID string) (*cryptoDomain.Dek, error) {
	querier := database.GetTx(ctx, r.db)
	query := `
		SELECT id, org_id, scope_id, algorithm, encrypted_dek, dek_nonce, version, created_at
		FROM encryption_keys
		WHERE org_id = $1 AND scope_id = $2
		ORDER BY version DESC
		LIMIT 1`
	row := querier.QueryRowContext(ctx, query, orgID, scopeID)
	return scanDek(row)
}

func (r *DekRepository) GetByVersion(ctx context.Context, orgID, scopeID string, version int) (*cryptoDomain.Dek, error) {
	querier := database.GetTx(ctx, r.db)
	query := `
		SELECT id, org_id, scope_id, algorithm, encrypted_dek, dek_nonce, version, created_at
		FROM encryption_keys
		WHERE org_id = $1 AND scope_id = $2 AND version = $3`
	row := querier.QueryRowContext(ctx, query, orgID, scopeID, version)
	return scanDek(row)
}

func (r *DekRepository) Create(ctx context.Context, dek *cryptoDomain.Dek) error {
	querier := database.GetTx(ctx, r.db)
	query := `
		INSERT INTO encryption_keys (org_id, scope_id, algorithm, encrypted_dek, dek_nonce, version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	dek.CreatedAt = time.Now().UTC()
	row := querier.QueryRowContext(ctx, query,
		dek.OrgID, dek.ScopeID, string(dek.Algorithm), dek.EncryptedKey, dek.Nonce, dek.Version, dek.CreatedAt)
	if err := row.Scan(&dek.ID, &dek.CreatedAt); err != nil {
		return apperrors.Wrap(err, "failed to create encryption key")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDek(row rowScanner) (*cryptoDomain.Dek, error) {
	var dek cryptoDomain.Dek
	var algorithm string
	err := row.Scan(&dek.ID, &dek.OrgID, &dek.ScopeID, &algorithm, &dek.EncryptedKey, &dek.Nonce, &dek.Version, &dek.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, cryptoDomain.ErrDekNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to scan encryption key")
	}
	dek.Algorithm = cryptoDomain.Algorithm(algorithm)
	return &dek, nil
}
