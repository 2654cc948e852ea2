package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/EnvSync-Cloud/envsync/internal/response"
)

// RunCleanupOldResponses removes reducer_response rows older than maxAge.
// Intended to run on a schedule external to the process (cron, systemd
// timer); the reducer surface itself only exposes single-row cleanup via
// cleanup_response.
func RunCleanupOldResponses(ctx context.Context, responseUseCase *response.UseCase, logger *slog.Logger, maxAge time.Duration) error {
	removed, err := responseUseCase.CleanExpired(ctx, maxAge)
	if err != nil {
		return fmt.Errorf("failed to clean up old responses: %w", err)
	}

	logger.Info("cleaned up old responses",
		slog.Int64("removed", removed),
		slog.Duration("max_age", maxAge),
	)
	return nil
}
