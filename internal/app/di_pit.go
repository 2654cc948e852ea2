package app

import (
	"fmt"

	"github.com/EnvSync-Cloud/envsync/internal/pit"
	pitMySQL "github.com/EnvSync-Cloud/envsync/internal/pit/repository/mysql"
	pitPostgreSQL "github.com/EnvSync-Cloud/envsync/internal/pit/repository/postgresql"
)

// EnvPitUseCase returns the environment-variable point-in-time replay use case.
func (c *Container) EnvPitUseCase() (*pit.UseCase, error) {
	var err error
	c.envPitUseCaseInit.Do(func() {
		c.envPitUseCase, err = c.initEnvPitUseCase()
		if err != nil {
			c.initErrors["envPitUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["envPitUseCase"]; exists {
		return nil, storedErr
	}
	return c.envPitUseCase, nil
}

// SecretPitUseCase returns the secret point-in-time replay use case.
func (c *Container) SecretPitUseCase() (*pit.UseCase, error) {
	var err error
	c.secretPitUseCaseInit.Do(func() {
		c.secretPitUseCase, err = c.initSecretPitUseCase()
		if err != nil {
			c.initErrors["secretPitUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretPitUseCase"]; exists {
		return nil, storedErr
	}
	return c.secretPitUseCase, nil
}

func (c *Container) envPitRepository() (pit.Repository, error) {
	var err error
	c.envPitRepoInit.Do(func() {
		c.envPitRepo, err = c.initEnvPitRepository()
		if err != nil {
			c.initErrors["envPitRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["envPitRepo"]; exists {
		return nil, storedErr
	}
	return c.envPitRepo, nil
}

func (c *Container) secretPitRepository() (pit.Repository, error) {
	var err error
	c.secretPitRepoInit.Do(func() {
		c.secretPitRepo, err = c.initSecretPitRepository()
		if err != nil {
			c.initErrors["secretPitRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretPitRepo"]; exists {
		return nil, storedErr
	}
	return c.secretPitRepo, nil
}

func (c *Container) initEnvPitRepository() (pit.Repository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for env pit repository: %w", err)
	}
	switch c.config.DBDriver {
	case "postgres":
		return pitPostgreSQL.NewEnvStoreRepository(db), nil
	case "mysql":
		return pitMySQL.NewEnvStoreRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initSecretPitRepository() (pit.Repository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for secret pit repository: %w", err)
	}
	switch c.config.DBDriver {
	case "postgres":
		return pitPostgreSQL.NewSecretStoreRepository(db), nil
	case "mysql":
		return pitMySQL.NewSecretStoreRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initEnvPitUseCase() (*pit.UseCase, error) {
	repo, err := c.envPitRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get env pit repository for env pit use case: %w", err)
	}
	return pit.NewUseCase(repo), nil
}

func (c *Container) initSecretPitUseCase() (*pit.UseCase, error) {
	repo, err := c.secretPitRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret pit repository for secret pit use case: %w", err)
	}
	return pit.NewUseCase(repo), nil
}
