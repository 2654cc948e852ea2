// Package reducer exposes every named operation from the external interface
// as a plain Go function: a thin dispatcher combining the envelope, PKI,
// authorization, audit, PiT, and response layers into the transactional
// surface callers invoke. No operation here crosses a goroutine boundary;
// each runs synchronously within the caller's transaction.
package reducer

import (
	"github.com/EnvSync-Cloud/envsync/internal/apikey"
	"github.com/EnvSync-Cloud/envsync/internal/application"
	"github.com/EnvSync-Cloud/envsync/internal/audit"
	"github.com/EnvSync-Cloud/envsync/internal/authz"
	cryptoUsecase "github.com/EnvSync-Cloud/envsync/internal/crypto/usecase"
	"github.com/EnvSync-Cloud/envsync/internal/envtype"
	"github.com/EnvSync-Cloud/envsync/internal/gpg"
	"github.com/EnvSync-Cloud/envsync/internal/invite"
	"github.com/EnvSync-Cloud/envsync/internal/org"
	"github.com/EnvSync-Cloud/envsync/internal/payload"
	"github.com/EnvSync-Cloud/envsync/internal/pit"
	"github.com/EnvSync-Cloud/envsync/internal/pki"
	"github.com/EnvSync-Cloud/envsync/internal/response"
	"github.com/EnvSync-Cloud/envsync/internal/settings"
	"github.com/EnvSync-Cloud/envsync/internal/team"
	"github.com/EnvSync-Cloud/envsync/internal/user"
	"github.com/EnvSync-Cloud/envsync/internal/webhook"
)

// Dispatcher wires every bounded context into the reducer surface. Built
// once by the DI container and handed to callers per transaction.
type Dispatcher struct {
	rootKey   *cryptoUsecase.RootKeyUseCase
	envelope  cryptoUsecase.EnvelopeUseCase
	envVars   *payload.UseCase[payload.EnvVar]
	secrets   *payload.UseCase[payload.Secret]
	gpgVault  *gpg.UseCase
	pki       *pki.UseCase
	authz     *authz.UseCase
	audit     *audit.UseCase
	envPit    *pit.UseCase
	secretPit *pit.UseCase
	response  *response.UseCase

	users    user.Repository
	orgs     org.Repository
	apps     application.Repository
	envTypes envtype.Repository
	teams    team.Repository
	webhooks webhook.Repository
	settings settings.Repository
	invites  invite.Repository
	apiKeys  apikey.Repository
}

// New builds a Dispatcher from its constituent use cases.
func New(
	rootKey *cryptoUsecase.RootKeyUseCase,
	envelope cryptoUsecase.EnvelopeUseCase,
	envVars *payload.UseCase[payload.EnvVar],
	secrets *payload.UseCase[payload.Secret],
	gpgVault *gpg.UseCase,
	pkiUseCase *pki.UseCase,
	authzUseCase *authz.UseCase,
	auditUseCase *audit.UseCase,
	envPit *pit.UseCase,
	secretPit *pit.UseCase,
	responseUseCase *response.UseCase,
	users user.Repository,
	orgs org.Repository,
	apps application.Repository,
	envTypes envtype.Repository,
	teams team.Repository,
	webhooks webhook.Repository,
	settingsRepo settings.Repository,
	invites invite.Repository,
	apiKeys apikey.Repository,
) *Dispatcher {
	return &Dispatcher{
		rootKey:   rootKey,
		envelope:  envelope,
		envVars:   envVars,
		secrets:   secrets,
		gpgVault:  gpgVault,
		pki:       pkiUseCase,
		authz:     authzUseCase,
		audit:     auditUseCase,
		envPit:    envPit,
		secretPit: secretPit,
		response:  responseUseCase,
		users:     users,
		orgs:      orgs,
		apps:      apps,
		envTypes:  envTypes,
		teams:     teams,
		webhooks:  webhooks,
		settings:  settingsRepo,
		invites:   invites,
		apiKeys:   apiKeys,
	}
}
