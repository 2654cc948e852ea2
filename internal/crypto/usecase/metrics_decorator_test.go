package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// fakeEnvelopeUseCase is a scripted EnvelopeUseCase for decorator tests.
type fakeEnvelopeUseCase struct {
	dek     []byte
	version int
	err     error
}

func (f *fakeEnvelopeUseCase) GetOrCreateDEK(_ context.Context, _ []byte, _, _ string) ([]byte, int, error) {
	return f.dek, f.version, f.err
}

func (f *fakeEnvelopeUseCase) GetDEKAtVersion(_ context.Context, _ []byte, _, _ string, _ int) ([]byte, error) {
	return f.dek, f.err
}

func (f *fakeEnvelopeUseCase) RotateDataKey(_ context.Context, _ []byte, _, _ string) (int, error) {
	return f.version, f.err
}

// mockBusinessMetrics is a local mock for metrics.BusinessMetrics.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func TestEnvelopeUseCaseWithMetrics_GetOrCreateDEK(t *testing.T) {
	ctx := context.Background()
	rootKey := []byte("root-key")

	t.Run("success", func(t *testing.T) {
		next := &fakeEnvelopeUseCase{dek: []byte("dek"), version: 1}
		m := &mockBusinessMetrics{}
		m.On("RecordOperation", ctx, "crypto", "dek_get_or_create", "success").Return().Once()
		m.On("RecordDuration", ctx, "crypto", "dek_get_or_create", mock.AnythingOfType("time.Duration"), "success").
			Return().Once()

		uc := NewEnvelopeUseCaseWithMetrics(next, m)
		dek, version, err := uc.GetOrCreateDEK(ctx, rootKey, "org", "scope")

		assert.NoError(t, err)
		assert.Equal(t, []byte("dek"), dek)
		assert.Equal(t, 1, version)
		m.AssertExpectations(t)
	})

	t.Run("error", func(t *testing.T) {
		expectedErr := errors.New("boom")
		next := &fakeEnvelopeUseCase{err: expectedErr}
		m := &mockBusinessMetrics{}
		m.On("RecordOperation", ctx, "crypto", "dek_get_or_create", "error").Return().Once()
		m.On("RecordDuration", ctx, "crypto", "dek_get_or_create", mock.AnythingOfType("time.Duration"), "error").
			Return().Once()

		uc := NewEnvelopeUseCaseWithMetrics(next, m)
		_, _, err := uc.GetOrCreateDEK(ctx, rootKey, "org", "scope")

		assert.Equal(t, expectedErr, err)
		m.AssertExpectations(t)
	})
}

func TestEnvelopeUseCaseWithMetrics_GetDEKAtVersion(t *testing.T) {
	ctx := context.Background()
	rootKey := []byte("root-key")

	next := &fakeEnvelopeUseCase{dek: []byte("dek-v1")}
	m := &mockBusinessMetrics{}
	m.On("RecordOperation", ctx, "crypto", "dek_get_at_version", "success").Return().Once()
	m.On("RecordDuration", ctx, "crypto", "dek_get_at_version", mock.AnythingOfType("time.Duration"), "success").
		Return().Once()

	uc := NewEnvelopeUseCaseWithMetrics(next, m)
	dek, err := uc.GetDEKAtVersion(ctx, rootKey, "org", "scope", 1)

	assert.NoError(t, err)
	assert.Equal(t, []byte("dek-v1"), dek)
	m.AssertExpectations(t)
}

func TestEnvelopeUseCaseWithMetrics_RotateDataKey(t *testing.T) {
	ctx := context.Background()
	rootKey := []byte("root-key")

	next := &fakeEnvelopeUseCase{version: 2}
	m := &mockBusinessMetrics{}
	m.On("RecordOperation", ctx, "crypto", "dek_rotate", "success").Return().Once()
	m.On("RecordDuration", ctx, "crypto", "dek_rotate", mock.AnythingOfType("time.Duration"), "success").
		Return().Once()

	uc := NewEnvelopeUseCaseWithMetrics(next, m)
	version, err := uc.RotateDataKey(ctx, rootKey, "org", "scope")

	assert.NoError(t, err)
	assert.Equal(t, 2, version)
	m.AssertExpectations(t)
}
