package reducer

import (
	"context"

	"github.com/google/uuid"

	"github.com/EnvSync-Cloud/envsync/internal/payload"

	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
)

// CreateEnvPit snapshots a sequence of env-var changes for (org, app, env_type).
func (d *Dispatcher) CreateEnvPit(ctx context.Context, orgID, appID, envTypeID string, changes []ChangeEntry) (uuid.UUID, error) {
	id, err := d.envPit.Record(ctx, orgID, appID, envTypeID, toPitChanges(changes))
	if err != nil {
		return uuid.Nil, apperrors.Wrap(err, "create_env_pit")
	}
	return id, nil
}

// GetEnvsAtPit replays env-var snapshots up to target, returning the
// reconstructed key/value state.
func (d *Dispatcher) GetEnvsAtPit(ctx context.Context, orgID, appID, envTypeID string, target uuid.UUID) ([]payload.KV, error) {
	state, err := d.envPit.ReplayAt(ctx, orgID, appID, envTypeID, target)
	if err != nil {
		return nil, apperrors.Wrap(err, "get_envs_at_pit")
	}
	return toPayloadKVs(state), nil
}

// CreateSecretPit snapshots a sequence of secret changes for (org, app, env_type).
func (d *Dispatcher) CreateSecretPit(ctx context.Context, orgID, appID, envTypeID string, changes []ChangeEntry) (uuid.UUID, error) {
	id, err := d.secretPit.Record(ctx, orgID, appID, envTypeID, toPitChanges(changes))
	if err != nil {
		return uuid.Nil, apperrors.Wrap(err, "create_secret_pit")
	}
	return id, nil
}

// GetSecretsAtPit replays secret snapshots up to target, returning the
// reconstructed key/value state.
func (d *Dispatcher) GetSecretsAtPit(ctx context.Context, orgID, appID, envTypeID string, target uuid.UUID) ([]payload.KV, error) {
	state, err := d.secretPit.ReplayAt(ctx, orgID, appID, envTypeID, target)
	if err != nil {
		return nil, apperrors.Wrap(err, "get_secrets_at_pit")
	}
	return toPayloadKVs(state), nil
}
