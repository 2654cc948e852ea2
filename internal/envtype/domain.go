// Package envtype defines the environment-type entity (e.g. "production",
// "staging") that payload records and PiT snapshots are partitioned by.
package envtype

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/EnvSync-Cloud/envsync/internal/errors"
)

// EnvType is a deployment environment scoped to an app.
type EnvType struct {
	ID        uuid.UUID
	AppID     string
	Name      string
	CreatedAt time.Time
}

var (
	// ErrNotFound indicates the requested env type does not exist.
	ErrNotFound = errors.Wrap(errors.ErrNotFound, "env type not found")
)

// Repository persists environment types.
type Repository interface {
	Create(ctx context.Context, e *EnvType) error
	GetByID(ctx context.Context, id uuid.UUID) (*EnvType, error)
	ListByApp(ctx context.Context, appID string) ([]*EnvType, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
