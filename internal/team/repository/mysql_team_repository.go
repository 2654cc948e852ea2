package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/EnvSync-Cloud/envsync/internal/database"
	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
	"github.com/EnvSync-Cloud/envsync/internal/team"
)

// MySQLTeamRepository handles team persistence for MySQL.
type MySQLTeamRepository struct {
	db *sql.DB
}

// NewMySQLTeamRepository creates a new MySQLTeamRepository.
func NewMySQLTeamRepository(db *sql.DB) *MySQLTeamRepository {
	return &MySQLTeamRepository{db: db}
}

func (r *MySQLTeamRepository) Create(ctx context.Context, t *team.Team) error {
	querier := database.GetTx(ctx, r.db)
	_, err := querier.ExecContext(ctx,
		`INSERT INTO teams (id, org_id, name, created_at) VALUES (?, ?, ?, NOW())`, t.ID.String(), t.OrgID, t.Name)
	if err != nil {
		return apperrors.Wrap(err, "failed to create team")
	}
	return nil
}

func (r *MySQLTeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*team.Team, error) {
	var t team.Team
	var rawID string
	querier := database.GetTx(ctx, r.db)
	err := querier.QueryRowContext(ctx, `SELECT id, org_id, name, created_at FROM teams WHERE id = ?`, id.String()).
		Scan(&rawID, &t.OrgID, &t.Name, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, team.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get team by id")
	}
	if t.ID, err = uuid.Parse(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse team id")
	}
	return &t, nil
}

func (r *MySQLTeamRepository) ListByOrg(ctx context.Context, orgID string) ([]*team.Team, error) {
	querier := database.GetTx(ctx, r.db)
	rows, err := querier.QueryContext(ctx, `SELECT id, org_id, name, created_at FROM teams WHERE org_id = ? ORDER BY id`, orgID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list teams")
	}
	defer rows.Close()

	var out []*team.Team
	for rows.Next() {
		var t team.Team
		var rawID string
		if err := rows.Scan(&rawID, &t.OrgID, &t.Name, &t.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan team row")
		}
		if t.ID, err = uuid.Parse(rawID); err != nil {
			return nil, apperrors.Wrap(err, "failed to parse team id")
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

func (r *MySQLTeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)
	result, err := querier.ExecContext(ctx, `DELETE FROM teams WHERE id = ?`, id.String())
	if err != nil {
		return apperrors.Wrap(err, "failed to delete team")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read rows affected")
	}
	if affected == 0 {
		return team.ErrNotFound
	}
	return nil
}
