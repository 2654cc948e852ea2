package app

import (
	"fmt"

	cryptoMySQL "github.com/EnvSync-Cloud/envsync/internal/crypto/repository/mysql"
	cryptoPostgreSQL "github.com/EnvSync-Cloud/envsync/internal/crypto/repository/postgresql"
	cryptoService "github.com/EnvSync-Cloud/envsync/internal/crypto/service"
	cryptoUsecase "github.com/EnvSync-Cloud/envsync/internal/crypto/usecase"
)

// AEADManager returns the AEAD manager service.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = cryptoService.NewAEADManager()
	})
	return c.aeadManager
}

// RootKeyRepository returns the root key metadata repository.
func (c *Container) RootKeyRepository() (cryptoUsecase.RootKeyRepository, error) {
	var err error
	c.rootKeyRepoInit.Do(func() {
		c.rootKeyRepo, err = c.initRootKeyRepository()
		if err != nil {
			c.initErrors["rootKeyRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["rootKeyRepo"]; exists {
		return nil, storedErr
	}
	return c.rootKeyRepo, nil
}

// RootKeyUseCase returns the root key initialization use case.
func (c *Container) RootKeyUseCase() (*cryptoUsecase.RootKeyUseCase, error) {
	var err error
	c.rootKeyUseCaseInit.Do(func() {
		c.rootKeyUseCase, err = c.initRootKeyUseCase()
		if err != nil {
			c.initErrors["rootKeyUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["rootKeyUseCase"]; exists {
		return nil, storedErr
	}
	return c.rootKeyUseCase, nil
}

// CryptoDekRepository returns the DEK repository.
func (c *Container) CryptoDekRepository() (cryptoUsecase.DekRepository, error) {
	var err error
	c.dekRepoInit.Do(func() {
		c.dekRepo, err = c.initDekRepository()
		if err != nil {
			c.initErrors["dekRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["dekRepo"]; exists {
		return nil, storedErr
	}
	return c.dekRepo, nil
}

// EnvelopeUseCase returns the envelope (KEK/DEK derivation) use case.
func (c *Container) EnvelopeUseCase() (cryptoUsecase.EnvelopeUseCase, error) {
	var err error
	c.envelopeUseCaseInit.Do(func() {
		c.envelopeUseCase, err = c.initEnvelopeUseCase()
		if err != nil {
			c.initErrors["envelopeUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["envelopeUseCase"]; exists {
		return nil, storedErr
	}
	return c.envelopeUseCase, nil
}

func (c *Container) initRootKeyRepository() (cryptoUsecase.RootKeyRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for root key repository: %w", err)
	}
	switch c.config.DBDriver {
	case "postgres":
		return cryptoPostgreSQL.NewRootKeyRepository(db), nil
	case "mysql":
		return cryptoMySQL.NewRootKeyRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initRootKeyUseCase() (*cryptoUsecase.RootKeyUseCase, error) {
	repo, err := c.RootKeyRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get root key repository for root key use case: %w", err)
	}
	return cryptoUsecase.NewRootKeyUseCase(repo), nil
}

func (c *Container) initDekRepository() (cryptoUsecase.DekRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for dek repository: %w", err)
	}
	switch c.config.DBDriver {
	case "postgres":
		return cryptoPostgreSQL.NewDekRepository(db), nil
	case "mysql":
		return cryptoMySQL.NewDekRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initEnvelopeUseCase() (cryptoUsecase.EnvelopeUseCase, error) {
	dekRepo, err := c.CryptoDekRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get dek repository for envelope use case: %w", err)
	}
	baseUseCase := cryptoUsecase.NewEnvelopeUseCase(dekRepo, c.AEADManager())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for envelope use case: %w", err)
		}
		return cryptoUsecase.NewEnvelopeUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
