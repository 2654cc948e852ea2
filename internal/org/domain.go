// Package org defines the organization entity, the tenancy root for
// scope-keyed DEKs, PKI intermediate CAs, and authorization objects.
package org

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/EnvSync-Cloud/envsync/internal/errors"
)

// Org is a tenant boundary.
type Org struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

var (
	// ErrNotFound indicates the requested org does not exist.
	ErrNotFound = errors.Wrap(errors.ErrNotFound, "org not found")
)

// Repository persists organizations.
type Repository interface {
	Create(ctx context.Context, o *Org) error
	GetByID(ctx context.Context, id uuid.UUID) (*Org, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
