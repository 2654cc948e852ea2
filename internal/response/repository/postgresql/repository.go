// Package postgresql implements response.Repository against PostgreSQL.
package postgresql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/EnvSync-Cloud/envsync/internal/database"
	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
	"github.com/EnvSync-Cloud/envsync/internal/response"
)

// Repository backs the reducer_response table.
type Repository struct {
	db *sql.DB
}

// NewRepository builds a Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, entry *response.Entry) error {
	querier := database.GetTx(ctx, r.db)
	entry.CreatedAt = time.Now().UTC()
	_, err := querier.ExecContext(ctx, `
		INSERT INTO reducer_response (request_id, data, created_at)
		VALUES ($1, $2, $3)`, entry.RequestID, entry.Data, entry.CreatedAt)
	if isUniqueViolation(err) {
		return apperrors.ErrAlreadyExists
	}
	if err != nil {
		return apperrors.Wrap(err, "failed to create reducer_response row")
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, requestID string) (*response.Entry, error) {
	querier := database.GetTx(ctx, r.db)
	row := querier.QueryRowContext(ctx, `
		SELECT request_id, data, created_at FROM reducer_response WHERE request_id = $1`, requestID)

	var entry response.Entry
	err := row.Scan(&entry.RequestID, &entry.Data, &entry.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to scan reducer_response row")
	}
	return &entry, nil
}

func (r *Repository) Delete(ctx context.Context, requestID string) error {
	querier := database.GetTx(ctx, r.db)
	result, err := querier.ExecContext(ctx, `DELETE FROM reducer_response WHERE request_id = $1`, requestID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete reducer_response row")
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

func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	querier := database.GetTx(ctx, r.db)
	result, err := querier.ExecContext(ctx, `DELETE FROM reducer_response WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired reducer_response rows")
	}
	return result.RowsAffected()
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
