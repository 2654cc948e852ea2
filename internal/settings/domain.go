// Package settings defines org-scoped key/value configuration entries.
package settings

import (
	"context"
	"time"

	"github.com/EnvSync-Cloud/envsync/internal/errors"
)

// Setting is a single org-scoped config key.
type Setting struct {
	OrgID     string
	Key       string
	Value     string
	UpdatedAt time.Time
}

var (
	// ErrNotFound indicates the requested setting does not exist.
	ErrNotFound = errors.Wrap(errors.ErrNotFound, "setting not found")
)

// Repository persists settings.
type Repository interface {
	// Upsert creates or overwrites the value for (orgID, key).
	Upsert(ctx context.Context, s *Setting) error
	Get(ctx context.Context, orgID, key string) (*Setting, error)
	ListByOrg(ctx context.Context, orgID string) ([]*Setting, error)
	Delete(ctx context.Context, orgID, key string) error
}
