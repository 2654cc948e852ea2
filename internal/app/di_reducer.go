package app

import (
	"fmt"

	"github.com/EnvSync-Cloud/envsync/internal/reducer"
)

func (c *Container) initDispatcher() (*reducer.Dispatcher, error) {
	rootKeyUseCase, err := c.RootKeyUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get root key use case for dispatcher: %w", err)
	}
	envelope, err := c.EnvelopeUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get envelope use case for dispatcher: %w", err)
	}
	envVars, err := c.EnvVarUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get env var use case for dispatcher: %w", err)
	}
	secrets, err := c.SecretUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret use case for dispatcher: %w", err)
	}
	gpgUseCase, err := c.GPGUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get gpg use case for dispatcher: %w", err)
	}
	pkiUseCase, err := c.PKIUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get pki use case for dispatcher: %w", err)
	}
	authzUseCase, err := c.AuthzUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get authz use case for dispatcher: %w", err)
	}
	auditUseCase, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for dispatcher: %w", err)
	}
	envPit, err := c.EnvPitUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get env pit use case for dispatcher: %w", err)
	}
	secretPit, err := c.SecretPitUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret pit use case for dispatcher: %w", err)
	}
	responseUseCase, err := c.ResponseUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get response use case for dispatcher: %w", err)
	}
	users, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for dispatcher: %w", err)
	}
	orgs, err := c.OrgRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get org repository for dispatcher: %w", err)
	}
	apps, err := c.AppRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get app repository for dispatcher: %w", err)
	}
	envTypes, err := c.EnvTypeRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get env type repository for dispatcher: %w", err)
	}
	teams, err := c.TeamRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get team repository for dispatcher: %w", err)
	}
	webhooks, err := c.WebhookRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get webhook repository for dispatcher: %w", err)
	}
	settingsRepo, err := c.SettingsRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings repository for dispatcher: %w", err)
	}
	invites, err := c.InviteRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get invite repository for dispatcher: %w", err)
	}
	apiKeys, err := c.APIKeyRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get api key repository for dispatcher: %w", err)
	}

	return reducer.New(
		rootKeyUseCase,
		envelope,
		envVars,
		secrets,
		gpgUseCase,
		pkiUseCase,
		authzUseCase,
		auditUseCase,
		envPit,
		secretPit,
		responseUseCase,
		users,
		orgs,
		apps,
		envTypes,
		teams,
		webhooks,
		settingsRepo,
		invites,
		apiKeys,
	), nil
}
