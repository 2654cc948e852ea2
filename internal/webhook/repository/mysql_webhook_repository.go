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

// MySQLWebhookRepository handles webhook persistence for MySQL.
type MySQLWebhookRepository struct {
	db *sql.DB
}

// NewMySQLWebhookRepository creates a new MySQLWebhookRepository.
func NewMySQLWebhookRepository(db *sql.DB) *MySQLWebhookRepository {
	return &MySQLWebhookRepository{db: db}
}

func (r *MySQLWebhookRepository) Create(ctx context.Context, w *webhook.Webhook) error {
	querier := database.GetTx(ctx, r.db)
	_, err := querier.ExecContext(ctx,
		`INSERT INTO webhooks (id, org_id, url, created_at) VALUES (?, ?, ?, NOW())`, w.ID.String(), w.OrgID, w.URL)
	if err != nil {
		return apperrors.Wrap(err, "failed to create webhook")
	}
	return nil
}

func (r *MySQLWebhookRepository) GetByID(ctx context.Context, id uuid.UUID) (*webhook.Webhook, error) {
	var w webhook.Webhook
	var rawID string
	querier := database.GetTx(ctx, r.db)
	err := querier.QueryRowContext(ctx, `SELECT id, org_id, url, created_at FROM webhooks WHERE id = ?`, id.String()).
		Scan(&rawID, &w.OrgID, &w.URL, &w.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, webhook.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get webhook by id")
	}
	if w.ID, err = uuid.Parse(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse webhook id")
	}
	return &w, nil
}

func (r *MySQLWebhookRepository) ListByOrg(ctx context.Context, orgID string) ([]*webhook.Webhook, error) {
	querier := database.GetTx(ctx, r.db)
	rows, err := querier.QueryContext(ctx, `SELECT id, org_id, url, created_at FROM webhooks WHERE org_id = ? ORDER BY id`, orgID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list webhooks")
	}
	defer rows.Close()

	var out []*webhook.Webhook
	for rows.Next() {
		var w webhook.Webhook
		var rawID string
		if err := rows.Scan(&rawID, &w.OrgID, &w.URL, &w.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan webhook row")
		}
		if w.ID, err = uuid.Parse(rawID); err != nil {
			return nil, apperrors.Wrap(err, "failed to parse webhook id")
		}
		out = append(out, &w)
	}
	return out, rows.Err()
}

func (r *MySQLWebhookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)
	result, err := querier.ExecContext(ctx, `DELETE FROM webhooks WHERE id = ?`, id.String())
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
