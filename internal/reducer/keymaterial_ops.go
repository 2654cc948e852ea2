package reducer

import (
	"context"

	cryptoDomain "github.com/EnvSync-Cloud/envsync/internal/crypto/domain"
	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
)

// Init validates rootKey and writes the singleton root key metadata row.
// Fails with cryptoDomain.ErrRootKeyAlreadyInitialized on a second call.
func (d *Dispatcher) Init(ctx context.Context, rootKey []byte) (*cryptoDomain.RootKeyMeta, error) {
	meta, err := d.rootKey.Init(ctx, rootKey)
	if err != nil {
		return nil, apperrors.Wrap(err, "init")
	}
	return meta, nil
}

// CreateDataKey ensures a DEK exists for (orgID, scopeID), creating version
// 1 if none does, and returns its version.
func (d *Dispatcher) CreateDataKey(ctx context.Context, rootKey []byte, orgID, scopeID string) (int, error) {
	_, version, err := d.envelope.GetOrCreateDEK(ctx, rootKey, orgID, scopeID)
	if err != nil {
		return 0, apperrors.Wrap(err, "create_data_key")
	}
	return version, nil
}

// RotateDataKey appends a fresh DEK version for (orgID, scopeID).
func (d *Dispatcher) RotateDataKey(ctx context.Context, rootKey []byte, orgID, scopeID string) (int, error) {
	version, err := d.envelope.RotateDataKey(ctx, rootKey, orgID, scopeID)
	if err != nil {
		return 0, apperrors.Wrap(err, "rotate_data_key")
	}
	return version, nil
}
