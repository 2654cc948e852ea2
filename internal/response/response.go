// Package response implements the reducer return channel: a write-once row
// keyed by caller-chosen request_id, read and deleted by the polling
// caller. Conceptually the teacher's outbox table turned inside out — a
// single producer writes one row per request instead of a processor
// draining a pending queue.
package response

import (
	"context"
	"time"

	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
)

// Entry is one reducer_response row.
type Entry struct {
	RequestID string
	Data      string
	CreatedAt time.Time
}

// Repository persists response rows.
type Repository interface {
	// Create inserts a row, failing with apperrors.ErrAlreadyExists if
	// request_id is already in use.
	Create(ctx context.Context, entry *Entry) error

	// Get returns the row for requestID, or apperrors.ErrNotFound.
	Get(ctx context.Context, requestID string) (*Entry, error)

	// Delete removes the row for requestID.
	Delete(ctx context.Context, requestID string) error

	// DeleteOlderThan removes every row created before cutoff, returning the
	// number of rows removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// UseCase implements the write-once/read-once/delete contract.
type UseCase struct {
	repo Repository
}

// NewUseCase builds the response UseCase.
func NewUseCase(repo Repository) *UseCase {
	return &UseCase{repo: repo}
}

// Write stores data under requestID for later collection.
func (u *UseCase) Write(ctx context.Context, requestID, data string) error {
	return u.repo.Create(ctx, &Entry{RequestID: requestID, Data: data})
}

// Collect reads and deletes the response for requestID in one call.
func (u *UseCase) Collect(ctx context.Context, requestID string) (string, error) {
	entry, err := u.repo.Get(ctx, requestID)
	if err != nil {
		return "", err
	}
	if err := u.repo.Delete(ctx, requestID); err != nil {
		return "", err
	}
	return entry.Data, nil
}

// CleanExpired removes every response older than maxAge.
func (u *UseCase) CleanExpired(ctx context.Context, maxAge time.Duration) (int64, error) {
	removed, err := u.repo.DeleteOlderThan(ctx, time.Now().UTC().Add(-maxAge))
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to clean expired responses")
	}
	return removed, nil
}
