// Package sequence implements named monotonic counters (cert_serial,
// crl_number) consumed one value at a time within a serializable
// transaction.
package sequence

import (
	"context"

	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
)

// Repository persists named counter rows. Next must be called within a
// serializable transaction (via database.GetTx) so concurrent readers never
// observe or emit the same value twice.
type Repository interface {
	// Next increments and returns the counter named name, failing with
	// apperrors.ErrSequenceMissing if it was never initialized.
	Next(ctx context.Context, name string) (int64, error)

	// Init creates a counter at value 0 if it does not already exist.
	Init(ctx context.Context, name string) error
}

// Names of the sequences defined by the PKI pipeline.
const (
	CertSerial = "cert_serial"
	CrlNumber  = "crl_number"
)

// UseCase wraps a Repository with the sequence names the rest of the system
// relies on existing.
type UseCase struct {
	repo Repository
}

// NewUseCase builds a sequence UseCase.
func NewUseCase(repo Repository) *UseCase {
	return &UseCase{repo: repo}
}

// Init creates the cert_serial and crl_number counters if absent. Safe to
// call repeatedly.
func (u *UseCase) Init(ctx context.Context) error {
	if err := u.repo.Init(ctx, CertSerial); err != nil {
		return err
	}
	return u.repo.Init(ctx, CrlNumber)
}

// Next consumes the next value of the named sequence.
func (u *UseCase) Next(ctx context.Context, name string) (int64, error) {
	value, err := u.repo.Next(ctx, name)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to advance sequence "+name)
	}
	return value, nil
}
