package gpg

import "context"

// Repository persists encrypted_gpg rows.
type Repository interface {
	GetByFingerprint(ctx context.Context, orgID, fingerprint string) (*Material, error)
	Upsert(ctx context.Context, m *Material) error
	Delete(ctx context.Context, orgID, fingerprint string) error
}
