package commands

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	cryptoDomain "github.com/EnvSync-Cloud/envsync/internal/crypto/domain"
	cryptoUsecase "github.com/EnvSync-Cloud/envsync/internal/crypto/usecase"
)

// RunInitRootKey records the KEK fingerprint derived from a base64-encoded
// root key, so later calls can be verified against it out of band. The root
// key itself is never written anywhere by this command; only its derived
// fingerprint is persisted (see RootKeyUseCase.Init).
//
// Requirements: database must be migrated, this must be the first call for a
// deployment (a second call fails with cryptoDomain.ErrRootKeyAlreadyInitialized).
func RunInitRootKey(ctx context.Context, rootKeyUseCase *cryptoUsecase.RootKeyUseCase, logger *slog.Logger, rootKeyBase64 string) error {
	rootKey, err := base64.StdEncoding.DecodeString(rootKeyBase64)
	if err != nil {
		return fmt.Errorf("failed to decode root key: %w", err)
	}
	defer cryptoDomain.Zero(rootKey)

	meta, err := rootKeyUseCase.Init(ctx, rootKey)
	if err != nil {
		return fmt.Errorf("failed to initialize root key: %w", err)
	}

	logger.Info("root key initialized",
		slog.String("kek_fingerprint", meta.KekFingerprint),
		slog.Time("initialized_at", meta.InitializedAt),
	)
	return nil
}
