// Package webhook defines the org-scoped webhook subscription entity.
package webhook

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/EnvSync-Cloud/envsync/internal/errors"
)

// Webhook is an outbound notification target for an org.
type Webhook struct {
	ID        uuid.UUID
	OrgID     string
	URL       string
	CreatedAt time.Time
}

var (
	// ErrNotFound indicates the requested webhook does not exist.
	ErrNotFound = errors.Wrap(errors.ErrNotFound, "webhook not found")
)

// Repository persists webhooks.
type Repository interface {
	Create(ctx context.Context, w *Webhook) error
	GetByID(ctx context.Context, id uuid.UUID) (*Webhook, error)
	ListByOrg(ctx context.Context, orgID string) ([]*Webhook, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
