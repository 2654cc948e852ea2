// Package mysql implements the DEK repository against MySQL.
package mysql

import (
	"context"
	"database/sql"
	"time"

	cryptoDomain "github.com/EnvSync-Cloud/envsync/internal/crypto/domain"
	"github.com/EnvSync-Cloud/envsync/internal/database"
	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
)

// DekRepository persists encryption_key rows in MySQL.
type DekRepository struct {
	db *sql.DB
}

// NewDekRepository creates a new MySQL-backed DEK repository.
func NewDekRepository(db *sql.DB) *DekRepository {
	return &DekRepository{db: db}
}

func (r *DekRepository) GetCurrent(ctx context.Context, orgID, scopeID string) (*cryptoDomain.Dek, error) {
	querier := database.GetTx(ctx, r.db)
	query := `
		SELECT id, org_id, scope_id, algorithm, encrypted_dek, dek_nonce, version, created_at
		FROM encryption_keys
		WHERE org_id = ? AND scope_id = ?
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
		WHERE org_id = ? AND scope_id = ? AND version = ?`
	row := querier.QueryRowContext(ctx, query, orgID, scopeID, version)
	return scanDek(row)
}

func (r *DekRepository) Create(ctx context.Context, dek *cryptoDomain.Dek) error {
	querier := database.GetTx(ctx, r.db)
	query := `
		INSERT INTO encryption_keys (org_id, scope_id, algorithm, encrypted_dek, dek_nonce, version, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	dek.CreatedAt = time.Now().UTC()
	result, err := querier.ExecContext(ctx, query,
		dek.OrgID, dek.ScopeID, string(dek.Algorithm), dek.EncryptedKey, dek.Nonce, dek.Version, dek.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create encryption key")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to read encryption key id")
	}
	dek.ID = id
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
