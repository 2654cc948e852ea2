package reducer

import (
	"context"

	"github.com/EnvSync-Cloud/envsync/internal/payload"

	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
)

// CreateEnv stores a new environment variable.
func (d *Dispatcher) CreateEnv(ctx context.Context, rootKey []byte, orgID, appID, envTypeID, key, value string) error {
	return apperrors.Wrap(d.envVars.Create(ctx, rootKey, orgID, appID, envTypeID, key, value), "create_env")
}

// GetEnv decrypts and returns one environment variable.
func (d *Dispatcher) GetEnv(ctx context.Context, rootKey []byte, orgID, appID, envTypeID, key string) (payload.KV, error) {
	kv, err := d.envVars.Get(ctx, rootKey, orgID, appID, envTypeID, key)
	if err != nil {
		return payload.KV{}, apperrors.Wrap(err, "get_env")
	}
	return kv, nil
}

// UpdateEnv re-encrypts an existing environment variable.
func (d *Dispatcher) UpdateEnv(ctx context.Context, rootKey []byte, orgID, appID, envTypeID, key, value string) error {
	return apperrors.Wrap(d.envVars.Update(ctx, rootKey, orgID, appID, envTypeID, key, value), "update_env")
}

// DeleteEnv removes an environment variable.
func (d *Dispatcher) DeleteEnv(ctx context.Context, orgID, appID, envTypeID, key string) error {
	return apperrors.Wrap(d.envVars.Delete(ctx, orgID, appID, envTypeID, key), "delete_env")
}

// ListEnvs decrypts and returns every environment variable for (org, app, env_type).
func (d *Dispatcher) ListEnvs(ctx context.Context, rootKey []byte, orgID, appID, envTypeID string) ([]payload.KV, error) {
	kvs, err := d.envVars.List(ctx, rootKey, orgID, appID, envTypeID)
	if err != nil {
		return nil, apperrors.Wrap(err, "list_envs")
	}
	return kvs, nil
}

// BatchCreateEnv stores many environment variables under one DEK fetch.
func (d *Dispatcher) BatchCreateEnv(ctx context.Context, rootKey []byte, orgID, appID, envTypeID string, items map[string]string) error {
	return apperrors.Wrap(d.envVars.BatchCreate(ctx, rootKey, orgID, appID, envTypeID, items), "batch_create_env")
}

// BatchUpdateEnv re-encrypts many environment variables under one DEK fetch.
func (d *Dispatcher) BatchUpdateEnv(ctx context.Context, rootKey []byte, orgID, appID, envTypeID string, items map[string]string) error {
	return apperrors.Wrap(d.envVars.BatchUpdate(ctx, rootKey, orgID, appID, envTypeID, items), "batch_update_env")
}

// BatchDeleteEnv removes many environment variables.
func (d *Dispatcher) BatchDeleteEnv(ctx context.Context, orgID, appID, envTypeID string, keys []string) error {
	return apperrors.Wrap(d.envVars.BatchDelete(ctx, orgID, appID, envTypeID, keys), "batch_delete_env")
}

// CreateSecret stores a new secret.
func (d *Dispatcher) CreateSecret(ctx context.Context, rootKey []byte, orgID, appID, envTypeID, key, value string) error {
	return apperrors.Wrap(d.secrets.Create(ctx, rootKey, orgID, appID, envTypeID, key, value), "create_secret")
}

// GetSecret decrypts and returns one secret.
func (d *Dispatcher) GetSecret(ctx context.Context, rootKey []byte, orgID, appID, envTypeID, key string) (payload.KV, error) {
	kv, err := d.secrets.Get(ctx, rootKey, orgID, appID, envTypeID, key)
	if err != nil {
		return payload.KV{}, apperrors.Wrap(err, "get_secret")
	}
	return kv, nil
}

// UpdateSecret re-encrypts an existing secret.
func (d *Dispatcher) UpdateSecret(ctx context.Context, rootKey []byte, orgID, appID, envTypeID, key, value string) error {
	return apperrors.Wrap(d.secrets.Update(ctx, rootKey, orgID, appID, envTypeID, key, value), "update_secret")
}

// DeleteSecret removes a secret.
func (d *Dispatcher) DeleteSecret(ctx context.Context, orgID, appID, envTypeID, key string) error {
	return apperrors.Wrap(d.secrets.Delete(ctx, orgID, appID, envTypeID, key), "delete_secret")
}

// ListSecrets decrypts and returns every secret for (org, app, env_type).
func (d *Dispatcher) ListSecrets(ctx context.Context, rootKey []byte, orgID, appID, envTypeID string) ([]payload.KV, error) {
	kvs, err := d.secrets.List(ctx, rootKey, orgID, appID, envTypeID)
	if err != nil {
		return nil, apperrors.Wrap(err, "list_secrets")
	}
	return kvs, nil
}

// BatchCreateSecret stores many secrets under one DEK fetch.
func (d *Dispatcher) BatchCreateSecret(ctx context.Context, rootKey []byte, orgID, appID, envTypeID string, items map[string]string) error {
	return apperrors.Wrap(d.secrets.BatchCreate(ctx, rootKey, orgID, appID, envTypeID, items), "batch_create_secret")
}

// BatchUpdateSecret re-encrypts many secrets under one DEK fetch.
func (d *Dispatcher) BatchUpdateSecret(ctx context.Context, rootKey []byte, orgID, appID, envTypeID string, items map[string]string) error {
	return apperrors.Wrap(d.secrets.BatchUpdate(ctx, rootKey, orgID, appID, envTypeID, items), "batch_update_secret")
}

// BatchDeleteSecret removes many secrets.
func (d *Dispatcher) BatchDeleteSecret(ctx context.Context, orgID, appID, envTypeID string, keys []string) error {
	return apperrors.Wrap(d.secrets.BatchDelete(ctx, orgID, appID, envTypeID, keys), "batch_delete_secret")
}
