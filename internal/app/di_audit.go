package app

import (
	"fmt"

	"github.com/EnvSync-Cloud/envsync/internal/audit"
	auditMySQL "github.com/EnvSync-Cloud/envsync/internal/audit/repository/mysql"
	auditPostgreSQL "github.com/EnvSync-Cloud/envsync/internal/audit/repository/postgresql"
)

// AuditUseCase returns the hash-chained audit log use case.
func (c *Container) AuditUseCase() (*audit.UseCase, error) {
	var err error
	c.auditUseCaseInit.Do(func() {
		c.auditUseCase, err = c.initAuditUseCase()
		if err != nil {
			c.initErrors["auditUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditUseCase"]; exists {
		return nil, storedErr
	}
	return c.auditUseCase, nil
}

func (c *Container) auditRepository() (audit.Repository, error) {
	var err error
	c.auditRepoInit.Do(func() {
		c.auditRepo, err = c.initAuditRepository()
		if err != nil {
			c.initErrors["auditRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditRepo"]; exists {
		return nil, storedErr
	}
	return c.auditRepo, nil
}

func (c *Container) initAuditRepository() (audit.Repository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for audit repository: %w", err)
	}
	switch c.config.DBDriver {
	case "postgres":
		return auditPostgreSQL.NewRepository(db), nil
	case "mysql":
		return auditMySQL.NewRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initAuditUseCase() (*audit.UseCase, error) {
	repo, err := c.auditRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit repository for audit use case: %w", err)
	}
	return audit.NewUseCase(repo), nil
}
