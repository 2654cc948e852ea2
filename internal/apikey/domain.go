// Package apikey defines org-scoped API credentials. Only a salted hash of
// the key is ever persisted; the plaintext is returned once at creation.
package apikey

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/EnvSync-Cloud/envsync/internal/errors"
)

// APIKey is one api_keys row.
type APIKey struct {
	ID        uuid.UUID
	OrgID     string
	Name      string
	KeyHash   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

var (
	// ErrNotFound indicates the requested key does not exist.
	ErrNotFound = errors.Wrap(errors.ErrNotFound, "api key not found")
)

// Repository persists API keys.
type Repository interface {
	Create(ctx context.Context, k *APIKey) error
	GetByHash(ctx context.Context, keyHash string) (*APIKey, error)
	ListByOrg(ctx context.Context, orgID string) ([]*APIKey, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
