package app

import (
	"fmt"

	"github.com/EnvSync-Cloud/envsync/internal/apikey"
	apikeyRepository "github.com/EnvSync-Cloud/envsync/internal/apikey/repository"
	"github.com/EnvSync-Cloud/envsync/internal/application"
	appRepository "github.com/EnvSync-Cloud/envsync/internal/application/repository"
	"github.com/EnvSync-Cloud/envsync/internal/envtype"
	envtypeRepository "github.com/EnvSync-Cloud/envsync/internal/envtype/repository"
	"github.com/EnvSync-Cloud/envsync/internal/invite"
	inviteRepository "github.com/EnvSync-Cloud/envsync/internal/invite/repository"
	"github.com/EnvSync-Cloud/envsync/internal/org"
	orgRepository "github.com/EnvSync-Cloud/envsync/internal/org/repository"
	"github.com/EnvSync-Cloud/envsync/internal/settings"
	settingsRepository "github.com/EnvSync-Cloud/envsync/internal/settings/repository"
	"github.com/EnvSync-Cloud/envsync/internal/team"
	teamRepository "github.com/EnvSync-Cloud/envsync/internal/team/repository"
	"github.com/EnvSync-Cloud/envsync/internal/user"
	userRepository "github.com/EnvSync-Cloud/envsync/internal/user/repository"
	"github.com/EnvSync-Cloud/envsync/internal/webhook"
	webhookRepository "github.com/EnvSync-Cloud/envsync/internal/webhook/repository"
)

// UserRepository returns the user entity repository.
func (c *Container) UserRepository() (user.Repository, error) {
	var err error
	c.userRepoInit.Do(func() {
		c.userRepo, err = c.initUserRepository()
		if err != nil {
			c.initErrors["userRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userRepo"]; exists {
		return nil, storedErr
	}
	return c.userRepo, nil
}

// OrgRepository returns the org entity repository.
func (c *Container) OrgRepository() (org.Repository, error) {
	var err error
	c.orgRepoInit.Do(func() {
		c.orgRepo, err = c.initOrgRepository()
		if err != nil {
			c.initErrors["orgRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["orgRepo"]; exists {
		return nil, storedErr
	}
	return c.orgRepo, nil
}

// AppRepository returns the application entity repository.
func (c *Container) AppRepository() (application.Repository, error) {
	var err error
	c.appRepoInit.Do(func() {
		c.appRepo, err = c.initAppRepository()
		if err != nil {
			c.initErrors["appRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["appRepo"]; exists {
		return nil, storedErr
	}
	return c.appRepo, nil
}

// EnvTypeRepository returns the env_type entity repository.
func (c *Container) EnvTypeRepository() (envtype.Repository, error) {
	var err error
	c.envTypeRepoInit.Do(func() {
		c.envTypeRepo, err = c.initEnvTypeRepository()
		if err != nil {
			c.initErrors["envTypeRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["envTypeRepo"]; exists {
		return nil, storedErr
	}
	return c.envTypeRepo, nil
}

// TeamRepository returns the team entity repository.
func (c *Container) TeamRepository() (team.Repository, error) {
	var err error
	c.teamRepoInit.Do(func() {
		c.teamRepo, err = c.initTeamRepository()
		if err != nil {
			c.initErrors["teamRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["teamRepo"]; exists {
		return nil, storedErr
	}
	return c.teamRepo, nil
}

// WebhookRepository returns the webhook entity repository.
func (c *Container) WebhookRepository() (webhook.Repository, error) {
	var err error
	c.webhookRepoInit.Do(func() {
		c.webhookRepo, err = c.initWebhookRepository()
		if err != nil {
			c.initErrors["webhookRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["webhookRepo"]; exists {
		return nil, storedErr
	}
	return c.webhookRepo, nil
}

// SettingsRepository returns the settings entity repository.
func (c *Container) SettingsRepository() (settings.Repository, error) {
	var err error
	c.settingRepoInit.Do(func() {
		c.settingRepo, err = c.initSettingsRepository()
		if err != nil {
			c.initErrors["settingRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["settingRepo"]; exists {
		return nil, storedErr
	}
	return c.settingRepo, nil
}

// InviteRepository returns the invite entity repository.
func (c *Container) InviteRepository() (invite.Repository, error) {
	var err error
	c.inviteRepoInit.Do(func() {
		c.inviteRepo, err = c.initInviteRepository()
		if err != nil {
			c.initErrors["inviteRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["inviteRepo"]; exists {
		return nil, storedErr
	}
	return c.inviteRepo, nil
}

// APIKeyRepository returns the api key entity repository.
func (c *Container) APIKeyRepository() (apikey.Repository, error) {
	var err error
	c.apiKeyRepoInit.Do(func() {
		c.apiKeyRepo, err = c.initAPIKeyRepository()
		if err != nil {
			c.initErrors["apiKeyRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["apiKeyRepo"]; exists {
		return nil, storedErr
	}
	return c.apiKeyRepo, nil
}

func (c *Container) initUserRepository() (user.Repository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for user repository: %w", err)
	}
	switch c.config.DBDriver {
	case "postgres":
		return userRepository.NewPostgreSQLUserRepository(db), nil
	case "mysql":
		return userRepository.NewMySQLUserRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initOrgRepository() (org.Repository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for org repository: %w", err)
	}
	switch c.config.DBDriver {
	case "postgres":
		return orgRepository.NewPostgreSQLOrgRepository(db), nil
	case "mysql":
		return orgRepository.NewMySQLOrgRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initAppRepository() (application.Repository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for app repository: %w", err)
	}
	switch c.config.DBDriver {
	case "postgres":
		return appRepository.NewPostgreSQLAppRepository(db), nil
	case "mysql":
		return appRepository.NewMySQLAppRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initEnvTypeRepository() (envtype.Repository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for env type repository: %w", err)
	}
	switch c.config.DBDriver {
	case "postgres":
		return envtypeRepository.NewPostgreSQLEnvTypeRepository(db), nil
	case "mysql":
		return envtypeRepository.NewMySQLEnvTypeRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initTeamRepository() (team.Repository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for team repository: %w", err)
	}
	switch c.config.DBDriver {
	case "postgres":
		return teamRepository.NewPostgreSQLTeamRepository(db), nil
	case "mysql":
		return teamRepository.NewMySQLTeamRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initWebhookRepository() (webhook.Repository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for webhook repository: %w", err)
	}
	switch c.config.DBDriver {
	case "postgres":
		return webhookRepository.NewPostgreSQLWebhookRepository(db), nil
	case "mysql":
		return webhookRepository.NewMySQLWebhookRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initSettingsRepository() (settings.Repository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for settings repository: %w", err)
	}
	switch c.config.DBDriver {
	case "postgres":
		return settingsRepository.NewPostgreSQLSettingsRepository(db), nil
	case "mysql":
		return settingsRepository.NewMySQLSettingsRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initInviteRepository() (invite.Repository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for invite repository: %w", err)
	}
	switch c.config.DBDriver {
	case "postgres":
		return inviteRepository.NewPostgreSQLInviteRepository(db), nil
	case "mysql":
		return inviteRepository.NewMySQLInviteRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initAPIKeyRepository() (apikey.Repository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for api key repository: %w", err)
	}
	switch c.config.DBDriver {
	case "postgres":
		return apikeyRepository.NewPostgreSQLAPIKeyRepository(db), nil
	case "mysql":
		return apikeyRepository.NewMySQLAPIKeyRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}
