package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/EnvSync-Cloud/envsync/internal/database"
	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
	"github.com/EnvSync-Cloud/envsync/internal/user"
)

// MySQLUserRepository handles user persistence for MySQL.
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

func (r *MySQLUserRepository) Create(ctx context.Context, u *user.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, org_id, email, name, created_at)
			  VALUES (?, ?, ?, ?, NOW())`

	_, err := querier.ExecContext(ctx, query, u.ID.String(), u.OrgID, u.Email, u.Name)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return user.ErrAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

func (r *MySQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var u user.User
	var rawID string
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, org_id, email, name, created_at FROM users WHERE id = ?`
	err := querier.QueryRowContext(ctx, query, id.String()).Scan(&rawID, &u.OrgID, &u.Email, &u.Name, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get user by id")
	}
	if u.ID, err = uuid.Parse(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse user id")
	}
	return &u, nil
}

func (r *MySQLUserRepository) GetByEmail(ctx context.Context, orgID, email string) (*user.User, error) {
	var u user.User
	var rawID string
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, org_id, email, name, created_at FROM users WHERE org_id = ? AND email = ?`
	err := querier.QueryRowContext(ctx, query, orgID, email).Scan(&rawID, &u.OrgID, &u.Email, &u.Name, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get user by email")
	}
	if u.ID, err = uuid.Parse(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse user id")
	}
	return &u, nil
}

func (r *MySQLUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)
	result, err := querier.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id.String())
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
