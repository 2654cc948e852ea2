package reducer

import (
	"context"

	"github.com/google/uuid"

	"github.com/EnvSync-Cloud/envsync/internal/apikey"
	"github.com/EnvSync-Cloud/envsync/internal/application"
	"github.com/EnvSync-Cloud/envsync/internal/envtype"
	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
	"github.com/EnvSync-Cloud/envsync/internal/gpg"
	"github.com/EnvSync-Cloud/envsync/internal/invite"
	"github.com/EnvSync-Cloud/envsync/internal/org"
	"github.com/EnvSync-Cloud/envsync/internal/pki"
	"github.com/EnvSync-Cloud/envsync/internal/settings"
	"github.com/EnvSync-Cloud/envsync/internal/team"
	"github.com/EnvSync-Cloud/envsync/internal/user"
	"github.com/EnvSync-Cloud/envsync/internal/webhook"
)

// The role and team_member collaborators named alongside the thin-CRUD
// entities below have no row of their own: a role grant is an auth tuple
// ("user:<id>", "<role>", "org", <org_id>) and team membership is an auth
// tuple ("user:<id>", "team_member", "team", <team_id>). Both are written,
// deleted, and read through WriteAuthTuples/DeleteAuthTuples/ReadTuples.

// CreateUser inserts a new user row.
func (d *Dispatcher) CreateUser(ctx context.Context, u *user.User) error {
	return apperrors.Wrap(d.users.Create(ctx, u), "create_user")
}

// GetUser looks up a user by id.
func (d *Dispatcher) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := d.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, "get_user")
	}
	return u, nil
}

// GetUserByEmail looks up a user by (org, email).
func (d *Dispatcher) GetUserByEmail(ctx context.Context, orgID, email string) (*user.User, error) {
	u, err := d.users.GetByEmail(ctx, orgID, email)
	if err != nil {
		return nil, apperrors.Wrap(err, "get_user")
	}
	return u, nil
}

// DeleteUser removes a user row.
func (d *Dispatcher) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return apperrors.Wrap(d.users.Delete(ctx, id), "delete_user")
}

// CreateOrg inserts a new org row.
func (d *Dispatcher) CreateOrg(ctx context.Context, o *org.Org) error {
	return apperrors.Wrap(d.orgs.Create(ctx, o), "create_org")
}

// GetOrg looks up an org by id.
func (d *Dispatcher) GetOrg(ctx context.Context, id uuid.UUID) (*org.Org, error) {
	o, err := d.orgs.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, "get_org")
	}
	return o, nil
}

// DeleteOrg removes an org row.
func (d *Dispatcher) DeleteOrg(ctx context.Context, id uuid.UUID) error {
	return apperrors.Wrap(d.orgs.Delete(ctx, id), "delete_org")
}

// CreateApp inserts a new app row.
func (d *Dispatcher) CreateApp(ctx context.Context, a *application.App) error {
	return apperrors.Wrap(d.apps.Create(ctx, a), "create_app")
}

// GetApp looks up an app by id.
func (d *Dispatcher) GetApp(ctx context.Context, id uuid.UUID) (*application.App, error) {
	a, err := d.apps.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, "get_app")
	}
	return a, nil
}

// ListApps returns every app scoped to orgID.
func (d *Dispatcher) ListApps(ctx context.Context, orgID string) ([]*application.App, error) {
	apps, err := d.apps.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, apperrors.Wrap(err, "list_apps")
	}
	return apps, nil
}

// DeleteApp removes an app row.
func (d *Dispatcher) DeleteApp(ctx context.Context, id uuid.UUID) error {
	return apperrors.Wrap(d.apps.Delete(ctx, id), "delete_app")
}

// CreateEnvType inserts a new env_type row.
func (d *Dispatcher) CreateEnvType(ctx context.Context, e *envtype.EnvType) error {
	return apperrors.Wrap(d.envTypes.Create(ctx, e), "create_env_type")
}

// GetEnvType looks up an env_type by id.
func (d *Dispatcher) GetEnvType(ctx context.Context, id uuid.UUID) (*envtype.EnvType, error) {
	e, err := d.envTypes.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, "get_env_type")
	}
	return e, nil
}

// ListEnvTypes returns every env_type scoped to appID.
func (d *Dispatcher) ListEnvTypes(ctx context.Context, appID string) ([]*envtype.EnvType, error) {
	types, err := d.envTypes.ListByApp(ctx, appID)
	if err != nil {
		return nil, apperrors.Wrap(err, "list_env_types")
	}
	return types, nil
}

// DeleteEnvType removes an env_type row.
func (d *Dispatcher) DeleteEnvType(ctx context.Context, id uuid.UUID) error {
	return apperrors.Wrap(d.envTypes.Delete(ctx, id), "delete_env_type")
}

// CreateTeam inserts a new team row.
func (d *Dispatcher) CreateTeam(ctx context.Context, t *team.Team) error {
	return apperrors.Wrap(d.teams.Create(ctx, t), "create_team")
}

// GetTeam looks up a team by id.
func (d *Dispatcher) GetTeam(ctx context.Context, id uuid.UUID) (*team.Team, error) {
	t, err := d.teams.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, "get_team")
	}
	return t, nil
}

// ListTeams returns every team scoped to orgID.
func (d *Dispatcher) ListTeams(ctx context.Context, orgID string) ([]*team.Team, error) {
	teams, err := d.teams.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, apperrors.Wrap(err, "list_teams")
	}
	return teams, nil
}

// DeleteTeam removes a team row.
func (d *Dispatcher) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	return apperrors.Wrap(d.teams.Delete(ctx, id), "delete_team")
}

// CreateWebhook inserts a new webhook row.
func (d *Dispatcher) CreateWebhook(ctx context.Context, w *webhook.Webhook) error {
	return apperrors.Wrap(d.webhooks.Create(ctx, w), "create_webhook")
}

// GetWebhook looks up a webhook by id.
func (d *Dispatcher) GetWebhook(ctx context.Context, id uuid.UUID) (*webhook.Webhook, error) {
	w, err := d.webhooks.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, "get_webhook")
	}
	return w, nil
}

// ListWebhooks returns every webhook scoped to orgID.
func (d *Dispatcher) ListWebhooks(ctx context.Context, orgID string) ([]*webhook.Webhook, error) {
	webhooks, err := d.webhooks.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, apperrors.Wrap(err, "list_webhooks")
	}
	return webhooks, nil
}

// DeleteWebhook removes a webhook row.
func (d *Dispatcher) DeleteWebhook(ctx context.Context, id uuid.UUID) error {
	return apperrors.Wrap(d.webhooks.Delete(ctx, id), "delete_webhook")
}

// UpsertSetting creates or overwrites a single org-scoped setting.
func (d *Dispatcher) UpsertSetting(ctx context.Context, s *settings.Setting) error {
	return apperrors.Wrap(d.settings.Upsert(ctx, s), "upsert_setting")
}

// GetSetting looks up a setting by (org, key).
func (d *Dispatcher) GetSetting(ctx context.Context, orgID, key string) (*settings.Setting, error) {
	s, err := d.settings.Get(ctx, orgID, key)
	if err != nil {
		return nil, apperrors.Wrap(err, "get_setting")
	}
	return s, nil
}

// ListSettings returns every setting scoped to orgID.
func (d *Dispatcher) ListSettings(ctx context.Context, orgID string) ([]*settings.Setting, error) {
	list, err := d.settings.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, apperrors.Wrap(err, "list_settings")
	}
	return list, nil
}

// DeleteSetting removes a setting row.
func (d *Dispatcher) DeleteSetting(ctx context.Context, orgID, key string) error {
	return apperrors.Wrap(d.settings.Delete(ctx, orgID, key), "delete_setting")
}

// CreateInvite inserts a new pending invite row.
func (d *Dispatcher) CreateInvite(ctx context.Context, i *invite.Invite) error {
	return apperrors.Wrap(d.invites.Create(ctx, i), "create_invite")
}

// GetInviteByToken looks up a pending invite by its token.
func (d *Dispatcher) GetInviteByToken(ctx context.Context, token string) (*invite.Invite, error) {
	i, err := d.invites.GetByToken(ctx, token)
	if err != nil {
		return nil, apperrors.Wrap(err, "get_invite")
	}
	return i, nil
}

// ListInvites returns every pending invite scoped to orgID.
func (d *Dispatcher) ListInvites(ctx context.Context, orgID string) ([]*invite.Invite, error) {
	invites, err := d.invites.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, apperrors.Wrap(err, "list_invites")
	}
	return invites, nil
}

// DeleteInvite removes a pending invite row (acceptance or revocation).
func (d *Dispatcher) DeleteInvite(ctx context.Context, id uuid.UUID) error {
	return apperrors.Wrap(d.invites.Delete(ctx, id), "delete_invite")
}

// CreateAPIKey inserts a new api_keys row. The plaintext key never reaches
// this layer: callers hash it before calling in and return the plaintext to
// the user exactly once, at issuance.
func (d *Dispatcher) CreateAPIKey(ctx context.Context, k *apikey.APIKey) error {
	return apperrors.Wrap(d.apiKeys.Create(ctx, k), "create_api_key")
}

// GetAPIKeyByHash looks up an api key by its hash, for authentication.
func (d *Dispatcher) GetAPIKeyByHash(ctx context.Context, keyHash string) (*apikey.APIKey, error) {
	k, err := d.apiKeys.GetByHash(ctx, keyHash)
	if err != nil {
		return nil, apperrors.Wrap(err, "get_api_key")
	}
	return k, nil
}

// ListAPIKeys returns every api key scoped to orgID.
func (d *Dispatcher) ListAPIKeys(ctx context.Context, orgID string) ([]*apikey.APIKey, error) {
	keys, err := d.apiKeys.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, apperrors.Wrap(err, "list_api_keys")
	}
	return keys, nil
}

// DeleteAPIKey removes an api key row.
func (d *Dispatcher) DeleteAPIKey(ctx context.Context, id uuid.UUID) error {
	return apperrors.Wrap(d.apiKeys.Delete(ctx, id), "delete_api_key")
}

// GetGPGKeyMeta returns a GPG material row's metadata without decrypting
// either the private key or the passphrase.
func (d *Dispatcher) GetGPGKeyMeta(ctx context.Context, orgID, fingerprint string) (*gpg.Material, error) {
	m, err := d.gpgVault.GetMaterialMeta(ctx, orgID, fingerprint)
	if err != nil {
		return nil, apperrors.Wrap(err, "get_gpg_key_meta")
	}
	return m, nil
}

// GetCertMeta returns a certificate row's metadata without decrypting its
// private key.
func (d *Dispatcher) GetCertMeta(ctx context.Context, orgID, serialHex string) (*pki.Certificate, error) {
	c, err := d.pki.GetCertMeta(ctx, orgID, serialHex)
	if err != nil {
		return nil, apperrors.Wrap(err, "get_cert_meta")
	}
	return c, nil
}
