// Package repository provides data persistence implementations for team entities.
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

// PostgreSQLTeamRepository handles team persistence for PostgreSQL.
type PostgreSQLTeamRepository struct {
	db *sql.DB
}

// NewPostgreSQLTeamRepository creates a new PostgreSQLTeamRepository.
func NewPostgreSQLTeamRepository(db *sql.DB) *PostgreSQLTeamRepository {
	return &PostgreSQLTeamRepository{db: db}
}

func (r *PostgreSQLTeamRepository) Create(ctx context.Context, t *team.Team) error {
	querier := database.GetTx(ctx, r.db)
	_, err := querier.ExecContext(ctx,
		`INSERT INTO teams (id, org_id, name, created_at) VALUES ($1, $2, $3, NOW())`, t.ID, t.OrgID, t.Name)
	if err != nil {
		return apperrors.Wrap(err, "failed to create team")
	}
	return nil
}

func (r *PostgreSQLTeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*team.Team, error) {
	var t team.Team
	querier := database.GetTx(ctx, r.db)
	err := querier.QueryRowContext(ctx, `SELECT id, org_id, name, created_at FROM teams WHERE id = $1`, id).
		Scan(&t.ID, &t.OrgID, &t.Name, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, team.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get team by id")
	}
	return &t, nil
}

func (r *PostgreSQLTeamRepository) ListByOrg(ctx context.Context, orgID string) ([]*team.Team, error) {
	querier := database.GetTx(ctx, r.db)
	rows, err := querier.QueryContext(ctx, `SELECT id, org_id, name, created_at FROM teams WHERE org_id = $1 ORDER BY id`, orgID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list teams")
	}
	defer rows.Close()

	var out []*team.Team
	for rows.Next() {
		var t team.Team
		if err := rows.Scan(&t.ID, &t.OrgID, &t.Name, &t.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan team row")
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

func (r *PostgreSQLTeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)
	result, err := querier.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
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
