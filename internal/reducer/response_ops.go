package reducer

import (
	"context"
	"time"

	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
)

// CleanupResponse collects and removes the response stored under requestID.
func (d *Dispatcher) CleanupResponse(ctx context.Context, requestID string) (string, error) {
	data, err := d.response.Collect(ctx, requestID)
	if err != nil {
		return "", apperrors.Wrap(err, "cleanup_response")
	}
	return data, nil
}

// CleanupOldResponses removes every response older than maxAge.
func (d *Dispatcher) CleanupOldResponses(ctx context.Context, maxAge time.Duration) (int64, error) {
	removed, err := d.response.CleanExpired(ctx, maxAge)
	if err != nil {
		return 0, apperrors.Wrap(err, "cleanup_old_responses")
	}
	return removed, nil
}
