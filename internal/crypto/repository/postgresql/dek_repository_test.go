package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/EnvSync-Cloud/envsync/internal/crypto/domain"
)

func newMockDekRepository(t *testing.T) (*DekRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewDekRepository(db), mock
}

func TestDekRepository_GetCurrent(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		repo, mock := newMockDekRepository(t)
		now := time.Now()
		rows := sqlmock.NewRows([]string{
			"id", "org_id", "scope_id", "algorithm", "encrypted_dek", "dek_nonce", "version", "created_at",
		}).AddRow(int64(1), "org-1", "secrets", "aes-gcm", []byte("cipher"), []byte("nonce"), 3, now)

		mock.ExpectQuery("SELECT id, org_id, scope_id, algorithm, encrypted_dek, dek_nonce, version, created_at").
			WithArgs("org-1", "secrets").
			WillReturnRows(rows)

		dek, err := repo.GetCurrent(ctx, "org-1", "secrets")
		require.NoError(t, err)
		assert.Equal(t, 3, dek.Version)
		assert.Equal(t, cryptoDomain.AESGCM, dek.Algorithm)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newMockDekRepository(t)
		mock.ExpectQuery("SELECT id, org_id, scope_id, algorithm, encrypted_dek, dek_nonce, version, created_at").
			WithArgs("org-1", "secrets").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetCurrent(ctx, "org-1", "secrets")
		assert.ErrorIs(t, err, cryptoDomain.ErrDekNotFound)
	})

	t.Run("unexpected error", func(t *testing.T) {
		repo, mock := newMockDekRepository(t)
		mock.ExpectQuery("SELECT id, org_id, scope_id, algorithm, encrypted_dek, dek_nonce, version, created_at").
			WithArgs("org-1", "secrets").
			WillReturnError(errors.New("connection reset"))

		_, err := repo.GetCurrent(ctx, "org-1", "secrets")
		require.Error(t, err)
		assert.NotErrorIs(t, err, cryptoDomain.ErrDekNotFound)
	})
}

func TestDekRepository_GetByVersion(t *testing.T) {
	ctx := context.Background()
	repo, mock := newMockDekRepository(t)
	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "org_id", "scope_id", "algorithm", "encrypted_dek", "dek_nonce", "version", "created_at",
	}).AddRow(int64(2), "org-1", "secrets", "chacha20-poly1305", []byte("cipher"), []byte("nonce"), 1, now)

	mock.ExpectQuery("SELECT id, org_id, scope_id, algorithm, encrypted_dek, dek_nonce, version, created_at").
		WithArgs("org-1", "secrets", 1).
		WillReturnRows(rows)

	dek, err := repo.GetByVersion(ctx, "org-1", "secrets", 1)
	require.NoError(t, err)
	assert.Equal(t, cryptoDomain.ChaCha20, dek.Algorithm)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDekRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo, mock := newMockDekRepository(t)
		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(5), now)

		mock.ExpectQuery("INSERT INTO encryption_keys").
			WithArgs("org-1", "secrets", "aes-gcm", []byte("cipher"), []byte("nonce"), 1, sqlmock.AnyArg()).
			WillReturnRows(rows)

		dek := &cryptoDomain.Dek{
			OrgID:        "org-1",
			ScopeID:      "secrets",
			Algorithm:    cryptoDomain.AESGCM,
			EncryptedKey: []byte("cipher"),
			Nonce:        []byte("nonce"),
			Version:      1,
		}
		err := repo.Create(ctx, dek)
		require.NoError(t, err)
		assert.EqualValues(t, 5, dek.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error wrapped", func(t *testing.T) {
		repo, mock := newMockDekRepository(t)
		mock.ExpectQuery("INSERT INTO encryption_keys").
			WithArgs("org-1", "secrets", "aes-gcm", []byte("cipher"), []byte("nonce"), 1, sqlmock.AnyArg()).
			WillReturnError(errors.New("unique violation"))

		dek := &cryptoDomain.Dek{
			OrgID:        "org-1",
			ScopeID:      "secrets",
			Algorithm:    cryptoDomain.AESGCM,
			EncryptedKey: []byte("cipher"),
			Nonce:        []byte("nonce"),
			Version:      1,
		}
		err := repo.Create(ctx, dek)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create encryption key")
	})
}
