// Package usecase implements the envelope encryption layer: given a
// caller-supplied root key, an org, and a scope, it returns the current or a
// specific historical data-encryption key, generating and persisting one on
// first use.
package usecase

import (
	"context"

	cryptoDomain "github.com/EnvSync-Cloud/envsync/internal/crypto/domain"
)

// DekRepository persists the append-only DEK version history for (org, scope)
// keyspaces.
type DekRepository interface {
	// GetCurrent returns the highest-version row for (orgID, scopeID), or
	// cryptoDomain.ErrDekNotFound if none exists yet.
	GetCurrent(ctx context.Context, orgID, scopeID string) (*cryptoDomain.Dek, error)

	// GetByVersion returns the row for (orgID, scopeID, version), or
	// cryptoDomain.ErrDekNotFound.
	GetByVersion(ctx context.Context, orgID, scopeID string, version int) (*cryptoDomain.Dek, error)

	// Create inserts a new DEK version row. Callers are responsible for
	// computing Version = max+1 within a serializable transaction.
	Create(ctx context.Context, dek *cryptoDomain.Dek) error
}

// EnvelopeUseCase is the (root_key, org, scope) -> DEK contract described in
// the spec's envelope layer.
type EnvelopeUseCase interface {
	// GetOrCreateDEK selects the current DEK for (org, scope), generating and
	// persisting version 1 if none exists. Returns the 32-byte plaintext DEK
	// and its version; callers must zero the returned key after use.
	GetOrCreateDEK(ctx context.Context, rootKey []byte, orgID, scopeID string) ([]byte, int, error)

	// GetDEKAtVersion returns the plaintext DEK for an exact historical
	// version, failing with cryptoDomain.ErrDekNotFound if absent or
	// cryptoDomain.ErrDekShape if the decrypted key is not 32 bytes.
	GetDEKAtVersion(ctx context.Context, rootKey []byte, orgID, scopeID string, version int) ([]byte, error)

	// RotateDataKey appends a freshly generated DEK as version = max+1 and
	// returns the new version number.
	RotateDataKey(ctx context.Context, rootKey []byte, orgID, scopeID string) (int, error)
}
