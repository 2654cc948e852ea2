package app

import (
	"fmt"

	"github.com/EnvSync-Cloud/envsync/internal/pki"
	pkiMySQL "github.com/EnvSync-Cloud/envsync/internal/pki/repository/mysql"
	pkiPostgreSQL "github.com/EnvSync-Cloud/envsync/internal/pki/repository/postgresql"
	"github.com/EnvSync-Cloud/envsync/internal/sequence"
	sequenceMySQL "github.com/EnvSync-Cloud/envsync/internal/sequence/repository/mysql"
	sequencePostgreSQL "github.com/EnvSync-Cloud/envsync/internal/sequence/repository/postgresql"
)

// SequenceUseCase returns the named-counter use case backing PKI serial and
// CRL numbering.
func (c *Container) SequenceUseCase() (*sequence.UseCase, error) {
	var err error
	c.sequenceUCInit.Do(func() {
		c.sequenceUC, err = c.initSequenceUseCase()
		if err != nil {
			c.initErrors["sequenceUC"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sequenceUC"]; exists {
		return nil, storedErr
	}
	return c.sequenceUC, nil
}

// PKIUseCase returns the certificate authority use case.
func (c *Container) PKIUseCase() (*pki.UseCase, error) {
	var err error
	c.pkiUseCaseInit.Do(func() {
		c.pkiUseCase, err = c.initPKIUseCase()
		if err != nil {
			c.initErrors["pkiUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["pkiUseCase"]; exists {
		return nil, storedErr
	}
	return c.pkiUseCase, nil
}

func (c *Container) sequenceRepository() (sequence.Repository, error) {
	var err error
	c.sequenceRepoInit.Do(func() {
		c.sequenceRepo, err = c.initSequenceRepository()
		if err != nil {
			c.initErrors["sequenceRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sequenceRepo"]; exists {
		return nil, storedErr
	}
	return c.sequenceRepo, nil
}

func (c *Container) pkiRepository() (pki.Repository, error) {
	var err error
	c.pkiRepoInit.Do(func() {
		c.pkiRepo, err = c.initPKIRepository()
		if err != nil {
			c.initErrors["pkiRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["pkiRepo"]; exists {
		return nil, storedErr
	}
	return c.pkiRepo, nil
}

func (c *Container) initSequenceRepository() (sequence.Repository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for sequence repository: %w", err)
	}
	switch c.config.DBDriver {
	case "postgres":
		return sequencePostgreSQL.NewRepository(db), nil
	case "mysql":
		return sequenceMySQL.NewRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initSequenceUseCase() (*sequence.UseCase, error) {
	repo, err := c.sequenceRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get sequence repository for sequence use case: %w", err)
	}
	return sequence.NewUseCase(repo), nil
}

func (c *Container) initPKIRepository() (pki.Repository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for pki repository: %w", err)
	}
	switch c.config.DBDriver {
	case "postgres":
		return pkiPostgreSQL.NewRepository(db), nil
	case "mysql":
		return pkiMySQL.NewRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initPKIUseCase() (*pki.UseCase, error) {
	repo, err := c.pkiRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get pki repository for pki use case: %w", err)
	}
	sequences, err := c.SequenceUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get sequence use case for pki use case: %w", err)
	}
	envelope, err := c.EnvelopeUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get envelope use case for pki use case: %w", err)
	}
	return pki.NewUseCase(repo, sequences, envelope, c.AEADManager()), nil
}
