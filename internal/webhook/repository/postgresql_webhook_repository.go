// Package repository provides data persistence implementations for webhook entities.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/EnvSync-Cloud/envsync/internal/database"
	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
	"github.com/EnvSync-Cloud/envsync/internal/webhook"
)

// PostgreSQLWebhookRepository handles webhook persistence for PostgreSQL.
type PostgreSQLWebhookRepository struct {
	db *sql.DB
}

// NewPostgreSQLWebhookRepository creates a new PostgreSQLWebhookRepository.
func NewPostgreSQLWebhookRepository(db *sql.DB) *PostgreSQLWebhookRepository {
	return &PostgreSQLWebhookRepository{db: db}
}

func (r *PostgreSQLWebhookRepository) Create(ctx context.Context, w *webhook.Webhook) error {
	querier := database.GetTx(ctx, r.db)
	_, err := querier.ExecContext(ctx,
		`INSERT INTO webhooks (id, org_id, url, created_at) VALUES ($1, $2, $3, NOW())`, w.ID, w.OrgID, w.URL)
	if err != nil {
		return apperrors.Wrap(err, "failed to create webhook")
	}
	return nil
}

func (r *PostgreSQLWebhookRepository) GetByID(ctx context.Context, id uuid.UUID) (*webhook.Webhook, error) {
	var w webhook.Webhook
	querier := database.GetTx(ctx, r.db)
	err := querier.QueryRowContext(ctx, `SELECT id, org_id, url, created_at FROM webhooks WHERE id = $1`, id).
		Scan(&w.ID, &w.OrgID, &w.URL, &w.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, webhook.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get webhook by id")
	}
	return &w, nil
}

func (r *PostgreSQLWebhookRepository) ListByOrg(ctx context.Context, orgID string) ([]*webhook.Webhook, error) {
	querier := database.GetTx(ctx, r.db)
	rows, err := querier.QueryContext(ctx, `SELECT id, org_id, url, created_at FROM webhooks WHERE org_id = $1 ORDER BY id`, orgID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list webhooks")
	}
	defer rows.Close()

	var out []*webhook.Webhook
	for rows.Next() {
		var w webhook.Webhook
		if err := rows.Scan(&w.ID, &w.OrgID, &w.URL, &w.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan webhook row")
		}
		out = append(out, &w)
	}
	return out, rows.Err()
}

func (r *PostgreSQLWebhookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)
	result, err := querier.ExecContext(ctx, `DELETE FROM webhooks WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete webhook")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read rows affected")
	}
	if affected == 0 {
		return webhook.ErrNotFound
	}
	return nil
}
