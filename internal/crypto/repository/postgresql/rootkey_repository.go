package postgresql

import (
	"context"
	"database/sql"

	cryptoDomain "github.com/EnvSync-Cloud/envsync/internal/crypto/domain"
	"github.com/EnvSync-Cloud/envsync/internal/database"
	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
)

// RootKeyRepository persists the root_key_meta singleton in PostgreSQL.
type RootKeyRepository struct {
	db *sql.DB
}

// NewRootKeyRepository creates a new PostgreSQL-backed root key repository.
func NewRootKeyRepository(db *sql.DB) *RootKeyRepository {
	return &RootKeyRepository{db: db}
}

func (r *RootKeyRepository) Get(ctx context.Context) (*cryptoDomain.RootKeyMeta, error) {
	querier := database.GetTx(ctx, r.db)
	var meta cryptoDomain.RootKeyMeta
	err := querier.QueryRowContext(ctx,
		`SELECT id, kek_info, kek_fingerprint, initialized_at FROM root_key_meta WHERE id = 1`).
		Scan(&meta.ID, &meta.KekInfo, &meta.KekFingerprint, &meta.InitializedAt)
	if err == sql.ErrNoRows {
		return nil, cryptoDomain.ErrRootKeyNotInitialized
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get root key metadata")
	}
	return &meta, nil
}

func (r *RootKeyRepository) Create(ctx context.Context, meta *cryptoDomain.RootKeyMeta) error {
	querier := database.GetTx(ctx, r.db)
	_, err := querier.ExecContext(ctx, `
		INSERT INTO root_key_meta (id, kek_info, kek_fingerprint, initialized_at)
		VALUES (1, $1, $2, $3)`, meta.KekInfo, meta.KekFingerprint, meta.InitializedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create root key metadata")
	}
	return nil
}
