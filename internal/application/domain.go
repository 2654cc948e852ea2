// Package application defines the app entity: the FK parent of env types
// and the "app" object type in authorization structural inheritance.
package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/EnvSync-Cloud/envsync/internal/errors"
)

// App is a deployable unit scoped to an org.
type App struct {
	ID        uuid.UUID
	OrgID     string
	Name      string
	CreatedAt time.Time
}

var (
	// ErrNotFound indicates the requested app does not exist.
	ErrNotFound = errors.Wrap(errors.ErrNotFound, "app not found")
)

// Repository persists applications.
type Repository interface {
	Create(ctx context.Context, a *App) error
	GetByID(ctx context.Context, id uuid.UUID) (*App, error)
	ListByOrg(ctx context.Context, orgID string) ([]*App, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
