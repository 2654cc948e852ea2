// Package repository provides data persistence implementations for user entities.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/EnvSync-Cloud/envsync/internal/database"
	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
	"github.com/EnvSync-Cloud/envsync/internal/user"
)

// PostgreSQLUserRepository handles user persistence for PostgreSQL.
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQLUserRepository.
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{db: db}
}

func (r *PostgreSQLUserRepository) Create(ctx context.Context, u *user.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, org_id, email, name, created_at)
			  VALUES ($1, $2, $3, $4, NOW())`

	_, err := querier.ExecContext(ctx, query, u.ID, u.OrgID, u.Email, u.Name)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return user.ErrAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

func (r *PostgreSQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var u user.User
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, org_id, email, name, created_at FROM users WHERE id = $1`
	err := querier.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.OrgID, &u.Email, &u.Name, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get user by id")
	}
	return &u, nil
}

func (r *PostgreSQLUserRepository) GetByEmail(ctx context.Context, orgID, email string) (*user.User, error) {
	var u user.User
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, org_id, email, name, created_at FROM users WHERE org_id = $1 AND email = $2`
	err := querier.QueryRowContext(ctx, query, orgID, email).Scan(&u.ID, &u.OrgID, &u.Email, &u.Name, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get user by email")
	}
	return &u, nil
}

func (r *PostgreSQLUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)
	result, err := querier.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete user")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read rows affected")
	}
	if affected == 0 {
		return user.ErrNotFound
	}
	return nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
