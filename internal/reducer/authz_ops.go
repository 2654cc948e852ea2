package reducer

import (
	"context"

	"github.com/EnvSync-Cloud/envsync/internal/authz"

	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
)

// WriteAuthTuples inserts a tuple, deduplicating by content.
func (d *Dispatcher) WriteAuthTuples(ctx context.Context, subject, relation, objectType, objectID string) error {
	return apperrors.Wrap(d.authz.Write(ctx, subject, relation, objectType, objectID), "write_auth_tuples")
}

// DeleteAuthTuples removes an exact tuple.
func (d *Dispatcher) DeleteAuthTuples(ctx context.Context, subject, relation, objectType, objectID string) error {
	return apperrors.Wrap(d.authz.Delete(ctx, subject, relation, objectType, objectID), "delete_auth_tuples")
}

// CheckPermission resolves whether userID holds relation on (objectType, objectID).
func (d *Dispatcher) CheckPermission(ctx context.Context, userID, relation, objectType, objectID string) (bool, error) {
	allowed, err := d.authz.Allowed(ctx, userID, relation, objectType, objectID)
	if err != nil {
		return false, apperrors.Wrap(err, "check_permission")
	}
	return allowed, nil
}

// BatchCheck resolves a list of checks for one user in one call.
func (d *Dispatcher) BatchCheck(ctx context.Context, userID string, checks []authz.CheckRequest) ([]authz.CheckResult, error) {
	results, err := d.authz.BatchCheck(ctx, userID, checks)
	if err != nil {
		return nil, apperrors.Wrap(err, "batch_check")
	}
	return results, nil
}

// defaultReadTuplesLimit bounds read_tuples when the caller supplies none,
// per the Open Question decision in SPEC_FULL.md §6.
const defaultReadTuplesLimit = 1000

// ReadTuples lists tuples matching filter, applying the default row cap
// when limit is zero.
func (d *Dispatcher) ReadTuples(ctx context.Context, filter authz.Filter, limit, offset int) ([]*authz.Tuple, error) {
	tuples, err := d.authz.Find(ctx, filter)
	if err != nil {
		return nil, apperrors.Wrap(err, "read_tuples")
	}
	if limit <= 0 {
		limit = defaultReadTuplesLimit
	}
	if offset >= len(tuples) {
		return []*authz.Tuple{}, nil
	}
	end := offset + limit
	if end > len(tuples) {
		end = len(tuples)
	}
	return tuples[offset:end], nil
}
