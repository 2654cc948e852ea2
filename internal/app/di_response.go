package app

import (
	"fmt"

	"github.com/EnvSync-Cloud/envsync/internal/response"
	responseMySQL "github.com/EnvSync-Cloud/envsync/internal/response/repository/mysql"
	responsePostgreSQL "github.com/EnvSync-Cloud/envsync/internal/response/repository/postgresql"
)

// ResponseUseCase returns the reducer response channel use case.
func (c *Container) ResponseUseCase() (*response.UseCase, error) {
	var err error
	c.responseUseCaseInit.Do(func() {
		c.responseUseCase, err = c.initResponseUseCase()
		if err != nil {
			c.initErrors["responseUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["responseUseCase"]; exists {
		return nil, storedErr
	}
	return c.responseUseCase, nil
}

func (c *Container) responseRepository() (response.Repository, error) {
	var err error
	c.responseRepoInit.Do(func() {
		c.responseRepo, err = c.initResponseRepository()
		if err != nil {
			c.initErrors["responseRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["responseRepo"]; exists {
		return nil, storedErr
	}
	return c.responseRepo, nil
}

func (c *Container) initResponseRepository() (response.Repository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for response repository: %w", err)
	}
	switch c.config.DBDriver {
	case "postgres":
		return responsePostgreSQL.NewRepository(db), nil
	case "mysql":
		return responseMySQL.NewRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initResponseUseCase() (*response.UseCase, error) {
	repo, err := c.responseRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get response repository for response use case: %w", err)
	}
	return response.NewUseCase(repo), nil
}
