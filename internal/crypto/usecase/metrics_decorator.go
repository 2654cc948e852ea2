package usecase

import (
	"context"
	"time"

	"github.com/EnvSync-Cloud/envsync/internal/metrics"
)

// envelopeUseCaseWithMetrics decorates EnvelopeUseCase with metrics instrumentation.
type envelopeUseCaseWithMetrics struct {
	next    EnvelopeUseCase
	metrics metrics.BusinessMetrics
}

// NewEnvelopeUseCaseWithMetrics wraps an EnvelopeUseCase with metrics recording.
func NewEnvelopeUseCaseWithMetrics(useCase EnvelopeUseCase, m metrics.BusinessMetrics) EnvelopeUseCase {
	return &envelopeUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// GetOrCreateDEK records metrics for DEK lookup/creation operations.
func (e *envelopeUseCaseWithMetrics) GetOrCreateDEK(
	ctx context.Context,
	rootKey []byte,
	orgID, scopeID string,
) ([]byte, int, error) {
	start := time.Now()
	dek, version, err := e.next.GetOrCreateDEK(ctx, rootKey, orgID, scopeID)

	status := "success"
	if err != nil {
		status = "error"
	}

	e.metrics.RecordOperation(ctx, "crypto", "dek_get_or_create", status)
	e.metrics.RecordDuration(ctx, "crypto", "dek_get_or_create", time.Since(start), status)

	return dek, version, err
}

// GetDEKAtVersion records metrics for historical DEK lookups.
func (e *envelopeUseCaseWithMetrics) GetDEKAtVersion(
	ctx context.Context,
	rootKey []byte,
	orgID, scopeID string,
	version int,
) ([]byte, error) {
	start := time.Now()
	dek, err := e.next.GetDEKAtVersion(ctx, rootKey, orgID, scopeID, version)

	status := "success"
	if err != nil {
		status = "error"
	}

	e.metrics.RecordOperation(ctx, "crypto", "dek_get_at_version", status)
	e.metrics.RecordDuration(ctx, "crypto", "dek_get_at_version", time.Since(start), status)

	return dek, err
}

// RotateDataKey records metrics for DEK rotation operations.
func (e *envelopeUseCaseWithMetrics) RotateDataKey(
	ctx context.Context,
	rootKey []byte,
	orgID, scopeID string,
) (int, error) {
	start := time.Now()
	version, err := e.next.RotateDataKey(ctx, rootKey, orgID, scopeID)

	status := "success"
	if err != nil {
		status = "error"
	}

	e.metrics.RecordOperation(ctx, "crypto", "dek_rotate", status)
	e.metrics.RecordDuration(ctx, "crypto", "dek_rotate", time.Since(start), status)

	return version, err
}
