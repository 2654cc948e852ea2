package app

import (
	"fmt"

	"github.com/EnvSync-Cloud/envsync/internal/gpg"
	gpgMySQL "github.com/EnvSync-Cloud/envsync/internal/gpg/repository/mysql"
	gpgPostgreSQL "github.com/EnvSync-Cloud/envsync/internal/gpg/repository/postgresql"
)

// GPGUseCase returns the GPG material vault use case.
func (c *Container) GPGUseCase() (*gpg.UseCase, error) {
	var err error
	c.gpgUseCaseInit.Do(func() {
		c.gpgUseCase, err = c.initGPGUseCase()
		if err != nil {
			c.initErrors["gpgUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["gpgUseCase"]; exists {
		return nil, storedErr
	}
	return c.gpgUseCase, nil
}

func (c *Container) gpgRepository() (gpg.Repository, error) {
	var err error
	c.gpgRepoInit.Do(func() {
		c.gpgRepo, err = c.initGPGRepository()
		if err != nil {
			c.initErrors["gpgRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["gpgRepo"]; exists {
		return nil, storedErr
	}
	return c.gpgRepo, nil
}

func (c *Container) initGPGRepository() (gpg.Repository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for gpg repository: %w", err)
	}
	switch c.config.DBDriver {
	case "postgres":
		return gpgPostgreSQL.NewRepository(db), nil
	case "mysql":
		return gpgMySQL.NewRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initGPGUseCase() (*gpg.UseCase, error) {
	repo, err := c.gpgRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get gpg repository for gpg use case: %w", err)
	}
	envelope, err := c.EnvelopeUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get envelope use case for gpg use case: %w", err)
	}
	return gpg.NewUseCase(repo, envelope, c.AEADManager()), nil
}
