// Package user defines the caller identity entity referenced by audit
// entries, authorization subjects, and team membership.
package user

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/EnvSync-Cloud/envsync/internal/errors"
)

// User is an account that can appear as an auth tuple subject ("user:<uuid>").
type User struct {
	ID        uuid.UUID
	OrgID     string
	Email     string
	Name      string
	CreatedAt time.Time
}

var (
	// ErrNotFound indicates the requested user does not exist.
	ErrNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrAlreadyExists indicates a user with the same email already exists within the org.
	ErrAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")
)

// Repository persists users.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, orgID, email string) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
