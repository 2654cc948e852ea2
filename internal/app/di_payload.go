package app

import (
	"fmt"

	payloadMySQL "github.com/EnvSync-Cloud/envsync/internal/payload/repository/mysql"
	payloadPostgreSQL "github.com/EnvSync-Cloud/envsync/internal/payload/repository/postgresql"

	"github.com/EnvSync-Cloud/envsync/internal/payload"
)

// EnvVarUseCase returns the environment-variable payload use case.
func (c *Container) EnvVarUseCase() (*payload.UseCase[payload.EnvVar], error) {
	var err error
	c.envVarUseCaseInit.Do(func() {
		c.envVarUseCase, err = c.initEnvVarUseCase()
		if err != nil {
			c.initErrors["envVarUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["envVarUseCase"]; exists {
		return nil, storedErr
	}
	return c.envVarUseCase, nil
}

// SecretUseCase returns the secret payload use case.
func (c *Container) SecretUseCase() (*payload.UseCase[payload.Secret], error) {
	var err error
	c.secretUseCaseInit.Do(func() {
		c.secretUseCase, err = c.initSecretUseCase()
		if err != nil {
			c.initErrors["secretUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretUseCase"]; exists {
		return nil, storedErr
	}
	return c.secretUseCase, nil
}

func (c *Container) envVarRepository() (payload.Repository, error) {
	var err error
	c.envVarRepoInit.Do(func() {
		c.envVarRepo, err = c.initEnvVarRepository()
		if err != nil {
			c.initErrors["envVarRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["envVarRepo"]; exists {
		return nil, storedErr
	}
	return c.envVarRepo, nil
}

func (c *Container) secretRepository() (payload.Repository, error) {
	var err error
	c.secretRepoInit.Do(func() {
		c.secretRepo, err = c.initSecretRepository()
		if err != nil {
			c.initErrors["secretRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretRepo"]; exists {
		return nil, storedErr
	}
	return c.secretRepo, nil
}

func (c *Container) initEnvVarRepository() (payload.Repository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for env var repository: %w", err)
	}
	switch c.config.DBDriver {
	case "postgres":
		return payloadPostgreSQL.NewEnvVarRepository(db), nil
	case "mysql":
		return payloadMySQL.NewEnvVarRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initSecretRepository() (payload.Repository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for secret repository: %w", err)
	}
	switch c.config.DBDriver {
	case "postgres":
		return payloadPostgreSQL.NewSecretRepository(db), nil
	case "mysql":
		return payloadMySQL.NewSecretRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initEnvVarUseCase() (*payload.UseCase[payload.EnvVar], error) {
	repo, err := c.envVarRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get env var repository for env var use case: %w", err)
	}
	envelope, err := c.EnvelopeUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get envelope use case for env var use case: %w", err)
	}
	return payload.NewUseCase[payload.EnvVar](repo, envelope, c.AEADManager()), nil
}

func (c *Container) initSecretUseCase() (*payload.UseCase[payload.Secret], error) {
	repo, err := c.secretRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret repository for secret use case: %w", err)
	}
	envelope, err := c.EnvelopeUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get envelope use case for secret use case: %w", err)
	}
	return payload.NewUseCase[payload.Secret](repo, envelope, c.AEADManager()), nil
}
