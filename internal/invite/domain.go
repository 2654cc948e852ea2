// Package invite defines pending org membership invitations.
package invite

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/EnvSync-Cloud/envsync/internal/errors"
)

// Invite is a pending membership offer for an email address within an org.
type Invite struct {
	ID        uuid.UUID
	OrgID     string
	Email     string
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

var (
	// ErrNotFound indicates the requested invite does not exist.
	ErrNotFound = errors.Wrap(errors.ErrNotFound, "invite not found")
)

// Repository persists invites.
type Repository interface {
	Create(ctx context.Context, i *Invite) error
	GetByToken(ctx context.Context, token string) (*Invite, error)
	ListByOrg(ctx context.Context, orgID string) ([]*Invite, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
