// Package postgresql implements audit.Repository against PostgreSQL.
package postgresql

import (
	"context"
	"database/sql"
	"time"

	"github.com/EnvSync-Cloud/envsync/internal/audit"
	"github.com/EnvSync-Cloud/envsync/internal/database"
	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
)

// Repository backs the app_audit_log table.
type Repository struct {
	db *sql.DB
}

// NewRepository builds a Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetLatest(ctx context.Context, orgID string) (*audit.Entry, error) {
	querier := database.GetTx(ctx, r.db)
	row := querier.QueryRowContext(ctx, `
		SELECT id, org_id, user_id, action, details, message, previous_hash, entry_hash, created_at
		FROM app_audit_log
		WHERE org_id = $1
		ORDER BY id DESC
		LIMIT 1`, orgID)
	return scanEntry(row)
}

func (r *Repository) Create(ctx context.Context, entry *audit.Entry) error {
	querier := database.GetTx(ctx, r.db)
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	row := querier.QueryRowContext(ctx, `
		INSERT INTO app_audit_log (org_id, user_id, action, details, message, previous_hash, entry_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		entry.OrgID, entry.UserID, entry.Action, entry.Details, entry.Message,
		entry.PreviousHash, entry.EntryHash, entry.CreatedAt)
	if err := row.Scan(&entry.ID); err != nil {
		return apperrors.Wrap(err, "failed to create app_audit_log row")
	}
	return nil
}

func (r *Repository) List(ctx context.Context, orgID string) ([]*audit.Entry, error) {
	querier := database.GetTx(ctx, r.db)
	rows, err := querier.QueryContext(ctx, `
		SELECT id, org_id, user_id, action, details, message, previous_hash, entry_hash, created_at
		FROM app_audit_log
		WHERE org_id = $1
		ORDER BY id`, orgID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list app_audit_log")
	}
	defer rows.Close()

	var out []*audit.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*audit.Entry, error) {
	var e audit.Entry
	err := row.Scan(&e.ID, &e.OrgID, &e.UserID, &e.Action, &e.Details, &e.Message,
		&e.PreviousHash, &e.EntryHash, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to scan app_audit_log row")
	}
	return &e, nil
}
