package commands

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	cryptoDomain "github.com/EnvSync-Cloud/envsync/internal/crypto/domain"
	"github.com/EnvSync-Cloud/envsync/internal/pki"
)

// RunInitRootCA creates the single root certificate authority for a
// deployment. It should run exactly once, after init-root-key, before any
// create-org-ca/issue-member-cert reducer call can succeed.
func RunInitRootCA(ctx context.Context, pkiUseCase *pki.UseCase, logger *slog.Logger, rootKeyBase64 string) error {
	rootKey, err := base64.StdEncoding.DecodeString(rootKeyBase64)
	if err != nil {
		return fmt.Errorf("failed to decode root key: %w", err)
	}
	defer cryptoDomain.Zero(rootKey)

	certPEM, err := pkiUseCase.InitRootCA(ctx, rootKey)
	if err != nil {
		return fmt.Errorf("failed to initialize root CA: %w", err)
	}

	logger.Info("root CA initialized")
	fmt.Println(certPEM)
	return nil
}
