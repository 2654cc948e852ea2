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

// MySQLInviteRepository handles invite persistence for MySQL.
type MySQLInviteRepository struct {
	db *sql.DB
}

// NewMySQLInviteRepository creates a new MySQLInviteRepository.
func NewMySQLInviteRepository(db *sql.DB) *MySQLInviteRepository {
	return &MySQLInviteRepository{db: db}
}

func (r *MySQLInviteRepository) Create(ctx context.Context, i *invite.Invite) error {
	querier := database.GetTx(ctx, r.db)
	_, err := querier.ExecContext(ctx, `
		INSERT INTO invites (id, org_id, email, token, created_at, expires_at)
		VALUES (?, ?, ?, ?, NOW(), ?)`, i.ID.String(), i.OrgID, i.Email, i.Token, i.ExpiresAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create invite")
	}
	return nil
}

func (r *MySQLInviteRepository) GetByToken(ctx context.Context, token string) (*invite.Invite, error) {
	var i invite.Invite
	var rawID string
	querier := database.GetTx(ctx, r.db)
	err := querier.QueryRowContext(ctx,
		`SELECT id, org_id, email, token, created_at, expires_at FROM invites WHERE token = ?`, token).
		Scan(&rawID, &i.OrgID, &i.Email, &i.Token, &i.CreatedAt, &i.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, invite.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get invite by token")
	}
	if i.ID, err = uuid.Parse(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse invite id")
	}
	return &i, nil
}

func (r *MySQLInviteRepository) ListByOrg(ctx context.Context, orgID string) ([]*invite.Invite, error) {
	querier := database.GetTx(ctx, r.db)
	rows, err := querier.QueryContext(ctx,
		`SELECT id, org_id, email, token, created_at, expires_at FROM invites WHERE org_id = ? ORDER BY id`, orgID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list invites")
	}
	defer rows.Close()

	var out []*invite.Invite
	for rows.Next() {
		var i invite.Invite
		var rawID string
		if err := rows.Scan(&rawID, &i.OrgID, &i.Email, &i.Token, &i.CreatedAt, &i.ExpiresAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan invite row")
		}
		if i.ID, err = uuid.Parse(rawID); err != nil {
			return nil, apperrors.Wrap(err, "failed to parse invite id")
		}
		out = append(out, &i)
	}
	return out, rows.Err()
}

func (r *MySQLInviteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)
	result, err := querier.ExecContext(ctx, `DELETE FROM invites WHERE id = ?`, id.String())
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
