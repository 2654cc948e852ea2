// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/EnvSync-Cloud/envsync/internal/apikey"
	"github.com/EnvSync-Cloud/envsync/internal/application"
	"github.com/EnvSync-Cloud/envsync/internal/audit"
	"github.com/EnvSync-Cloud/envsync/internal/authz"
	"github.com/EnvSync-Cloud/envsync/internal/config"
	cryptoService "github.com/EnvSync-Cloud/envsync/internal/crypto/service"
	cryptoUsecase "github.com/EnvSync-Cloud/envsync/internal/crypto/usecase"
	"github.com/EnvSync-Cloud/envsync/internal/database"
	"github.com/EnvSync-Cloud/envsync/internal/envtype"
	"github.com/EnvSync-Cloud/envsync/internal/gpg"
	"github.com/EnvSync-Cloud/envsync/internal/invite"
	"github.com/EnvSync-Cloud/envsync/internal/metrics"
	"github.com/EnvSync-Cloud/envsync/internal/org"
	"github.com/EnvSync-Cloud/envsync/internal/payload"
	"github.com/EnvSync-Cloud/envsync/internal/pit"
	"github.com/EnvSync-Cloud/envsync/internal/pki"
	"github.com/EnvSync-Cloud/envsync/internal/reducer"
	"github.com/EnvSync-Cloud/envsync/internal/response"
	"github.com/EnvSync-Cloud/envsync/internal/sequence"
	"github.com/EnvSync-Cloud/envsync/internal/settings"
	"github.com/EnvSync-Cloud/envsync/internal/team"
	"github.com/EnvSync-Cloud/envsync/internal/user"
	"github.com/EnvSync-Cloud/envsync/internal/webhook"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger *slog.Logger
	db     *sql.DB

	// Managers
	txManager database.TxManager

	// Metrics
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Reducer surface
	dispatcher *reducer.Dispatcher

	// Crypto (§4.3)
	aeadManager     cryptoService.AEADManager
	rootKeyRepo     cryptoUsecase.RootKeyRepository
	rootKeyUseCase  *cryptoUsecase.RootKeyUseCase
	dekRepo         cryptoUsecase.DekRepository
	envelopeUseCase cryptoUsecase.EnvelopeUseCase

	// Payload (§4.5)
	envVarRepo    payload.Repository
	envVarUseCase *payload.UseCase[payload.EnvVar]
	secretRepo    payload.Repository
	secretUseCase *payload.UseCase[payload.Secret]

	// GPG vault (§4.5)
	gpgRepo    gpg.Repository
	gpgUseCase *gpg.UseCase

	// PKI (§4.6)
	pkiRepo      pki.Repository
	sequenceRepo sequence.Repository
	sequenceUC   *sequence.UseCase
	pkiUseCase   *pki.UseCase

	// Authorization (§4.7)
	authzRepo    authz.Repository
	authzUseCase *authz.UseCase

	// Audit (§4.8)
	auditRepo    audit.Repository
	auditUseCase *audit.UseCase

	// Point-in-time replay (§4.9)
	envPitRepo      pit.Repository
	envPitUseCase   *pit.UseCase
	secretPitRepo   pit.Repository
	secretPitUseCase *pit.UseCase

	// Response channel
	responseRepo    response.Repository
	responseUseCase *response.UseCase

	// Thin CRUD collaborators
	userRepo    user.Repository
	orgRepo     org.Repository
	appRepo     application.Repository
	envTypeRepo envtype.Repository
	teamRepo    team.Repository
	webhookRepo webhook.Repository
	settingRepo settings.Repository
	inviteRepo  invite.Repository
	apiKeyRepo  apikey.Repository

	// Initialization flags and mutex for thread-safety
	mu             sync.Mutex
	loggerInit     sync.Once
	dbInit         sync.Once
	txManagerInit  sync.Once
	dispatcherInit sync.Once

	metricsProviderInit sync.Once
	businessMetricsInit sync.Once

	aeadManagerInit     sync.Once
	rootKeyRepoInit     sync.Once
	rootKeyUseCaseInit  sync.Once
	dekRepoInit         sync.Once
	envelopeUseCaseInit sync.Once

	envVarRepoInit    sync.Once
	envVarUseCaseInit sync.Once
	secretRepoInit    sync.Once
	secretUseCaseInit sync.Once

	gpgRepoInit    sync.Once
	gpgUseCaseInit sync.Once

	pkiRepoInit      sync.Once
	sequenceRepoInit sync.Once
	sequenceUCInit   sync.Once
	pkiUseCaseInit   sync.Once

	authzRepoInit    sync.Once
	authzUseCaseInit sync.Once

	auditRepoInit    sync.Once
	auditUseCaseInit sync.Once

	envPitRepoInit      sync.Once
	envPitUseCaseInit   sync.Once
	secretPitRepoInit   sync.Once
	secretPitUseCaseInit sync.Once

	responseRepoInit    sync.Once
	responseUseCaseInit sync.Once

	userRepoInit    sync.Once
	orgRepoInit     sync.Once
	appRepoInit     sync.Once
	envTypeRepoInit sync.Once
	teamRepoInit    sync.Once
	webhookRepoInit sync.Once
	settingRepoInit sync.Once
	inviteRepoInit  sync.Once
	apiKeyRepoInit  sync.Once

	initErrors map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
// It requires a database connection to be initialized first.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// Dispatcher returns the reducer surface, building every bounded context's
// repository/use case pair on first access.
func (c *Container) Dispatcher() (*reducer.Dispatcher, error) {
	var err error
	c.dispatcherInit.Do(func() {
		c.dispatcher, err = c.initDispatcher()
		if err != nil {
			c.initErrors["dispatcher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["dispatcher"]; exists {
		return nil, storedErr
	}
	return c.dispatcher, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("metrics provider shutdown: %w", err)
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			return fmt.Errorf("database close: %w", err)
		}
	}
	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initTxManager creates the transaction manager using the database connection.
func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}
