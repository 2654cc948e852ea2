// Package team defines the team entity referenced by authorization team
// expansion ("team:<uuid>#member" subjects, recorded as auth tuples rather
// than in this package's own storage).
package team

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/EnvSync-Cloud/envsync/internal/errors"
)

// Team groups users within an org for permission expansion.
type Team struct {
	ID        uuid.UUID
	OrgID     string
	Name      string
	CreatedAt time.Time
}

var (
	// ErrNotFound indicates the requested team does not exist.
	ErrNotFound = errors.Wrap(errors.ErrNotFound, "team not found")
)

// Repository persists teams.
type Repository interface {
	Create(ctx context.Context, t *Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*Team, error)
	ListByOrg(ctx context.Context, orgID string) ([]*Team, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
