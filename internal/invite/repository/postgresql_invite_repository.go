// Package repository provides data persistence implementations for invite entities.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/EnvSync-Cloud/envsync/internal/database"
	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
	"github.com/EnvSync-Cloud/envsync/internal/invite"
)

// PostgreSQLInviteRepository handles invite persistence for PostgreSQL.
type PostgreSQLInviteRepository struct {
	db *sql.DB
}

// NewPostgreSQLInviteRepository creates a new PostgreSQLInviteRepository.
func NewPostgreSQLInviteRepository(db *sql.DB) *PostgreSQLInviteRepository {
	return &PostgreSQLInviteRepository{db: db}
}

func (r *PostgreSQLInviteRepository) Create(ctx context.Context, i *invite.Invite) error {
	querier := database.GetTx(ctx, r.db)
	_, err := querier.ExecContext(ctx, `
		INSERT INTO invites (id, org_id, email, token, created_at, expires_at)
		VALUES ($1, $2, $3, $4, NOW(), $5)`, i.ID, i.OrgID, i.Email, i.Token, i.ExpiresAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create invite")
	}
	return nil
}

func (r *PostgreSQLInviteRepository) GetByToken(ctx context.Context, token string) (*invite.Invite, error) {
	var i invite.Invite
	querier := database.GetTx(ctx, r.db)
	err := querier.QueryRowContext(ctx,
		`SELECT id, org_id, email, token, created_at, expires_at FROM invites WHERE token = $1`, token).
		Scan(&i.ID, &i.OrgID, &i.Email, &i.Token, &i.CreatedAt, &i.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, invite.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get invite by token")
	}
	return &i, nil
}

func (r *PostgreSQLInviteRepository) ListByOrg(ctx context.Context, orgID string) ([]*invite.Invite, error) {
	querier := database.GetTx(ctx, r.db)
	rows, err := querier.QueryContext(ctx,
		`SELECT id, org_id, email, token, created_at, expires_at FROM invites WHERE org_id = $1 ORDER BY id`, orgID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list invites")
	}
	defer rows.Close()

	var out []*invite.Invite
	for rows.Next() {
		var i invite.Invite
		if err := rows.Scan(&i.ID, &i.OrgID, &i.Email, &i.Token, &i.CreatedAt, &i.ExpiresAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan invite row")
		}
		out = append(out, &i)
	}
	return out, rows.Err()
}

func (r *PostgreSQLInviteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)
	result, err := querier.ExecContext(ctx, `DELETE FROM invites WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete invite")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read rows affected")
	}
	if affected == 0 {
		return invite.ErrNotFound
	}
	return nil
}
