package audit

import (
	"context"
	"time"

	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
)

// UseCase appends entries to and verifies an org's audit hash chain.
type UseCase struct {
	repo Repository
}

// NewUseCase builds the audit UseCase.
func NewUseCase(repo Repository) *UseCase {
	return &UseCase{repo: repo}
}

// Append creates a new chained entry for orgID. The reducer transaction's
// serializable isolation guarantees no other writer observes or extends the
// same chain concurrently.
func (u *UseCase) Append(ctx context.Context, orgID, userID, action, details, message string) (*Entry, error) {
	previousHash := genesisHash
	latest, err := u.repo.GetLatest(ctx, orgID)
	if err == nil {
		previousHash = latest.EntryHash
	} else if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	createdAt := time.Now().UTC()
	entryHash := computeEntryHash(previousHash, orgID, userID, action, details, message, createdAt.UnixMicro())

	entry := &Entry{
		OrgID:        orgID,
		UserID:       userID,
		Action:       action,
		Details:      details,
		Message:      message,
		PreviousHash: previousHash,
		EntryHash:    entryHash,
		CreatedAt:    createdAt,
	}
	if err := u.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// VerificationReport summarizes a chain verification pass.
type VerificationReport struct {
	TotalChecked int64
	InvalidIDs   []int64
}

// VerifyChain re-derives every entry's hash from its stored fields and
// compares it against the stored entry_hash and previous_hash linkage.
func (u *UseCase) VerifyChain(ctx context.Context, orgID string) (*VerificationReport, error) {
	entries, err := u.repo.List(ctx, orgID)
	if err != nil {
		return nil, err
	}

	report := &VerificationReport{TotalChecked: int64(len(entries))}
	expectedPrevious := genesisHash
	for _, e := range entries {
		want := computeEntryHash(expectedPrevious, e.OrgID, e.UserID, e.Action, e.Details, e.Message, e.CreatedAt.UnixMicro())
		if e.PreviousHash != expectedPrevious || e.EntryHash != want {
			report.InvalidIDs = append(report.InvalidIDs, e.ID)
		}
		expectedPrevious = want
	}
	return report, nil
}
