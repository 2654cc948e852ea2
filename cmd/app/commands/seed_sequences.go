package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/EnvSync-Cloud/envsync/internal/sequence"
)

// RunSeedSequences initializes the cert_serial and crl_number counters used
// by the PKI pipeline. Safe to run repeatedly against an already-seeded
// deployment; this is the equivalent of the teacher's rewrap-deks step in
// that it is a one-time-per-deployment operational bootstrap rather than a
// reducer operation.
func RunSeedSequences(ctx context.Context, sequenceUseCase *sequence.UseCase, logger *slog.Logger) error {
	logger.Info("seeding PKI sequences")

	if err := sequenceUseCase.Init(ctx); err != nil {
		return fmt.Errorf("failed to seed sequences: %w", err)
	}

	logger.Info("sequences seeded successfully",
		slog.String("cert_serial", sequence.CertSerial),
		slog.String("crl_number", sequence.CrlNumber),
	)
	return nil
}
