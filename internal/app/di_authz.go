package app

import (
	"fmt"

	"github.com/EnvSync-Cloud/envsync/internal/authz"
	authzMySQL "github.com/EnvSync-Cloud/envsync/internal/authz/repository/mysql"
	authzPostgreSQL "github.com/EnvSync-Cloud/envsync/internal/authz/repository/postgresql"
)

// AuthzUseCase returns the tuple store and permission resolver.
func (c *Container) AuthzUseCase() (*authz.UseCase, error) {
	var err error
	c.authzUseCaseInit.Do(func() {
		c.authzUseCase, err = c.initAuthzUseCase()
		if err != nil {
			c.initErrors["authzUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authzUseCase"]; exists {
		return nil, storedErr
	}
	return c.authzUseCase, nil
}

func (c *Container) authzRepository() (authz.Repository, error) {
	var err error
	c.authzRepoInit.Do(func() {
		c.authzRepo, err = c.initAuthzRepository()
		if err != nil {
			c.initErrors["authzRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authzRepo"]; exists {
		return nil, storedErr
	}
	return c.authzRepo, nil
}

func (c *Container) initAuthzRepository() (authz.Repository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for authz repository: %w", err)
	}
	switch c.config.DBDriver {
	case "postgres":
		return authzPostgreSQL.NewRepository(db), nil
	case "mysql":
		return authzMySQL.NewRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initAuthzUseCase() (*authz.UseCase, error) {
	repo, err := c.authzRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get authz repository for authz use case: %w", err)
	}
	return authz.NewUseCase(repo), nil
}
