// Package postgresql implements pit.Repository against PostgreSQL, table-
// name parameterized so env_store_pit and secret_store_pit share one
// implementation.
package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/EnvSync-Cloud/envsync/internal/database"
	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
	"github.com/EnvSync-Cloud/envsync/internal/pit"
)

// Repository backs one pit table.
type Repository struct {
	db    *sql.DB
	table string
}

// NewEnvStoreRepository builds a Repository over env_store_pit.
func NewEnvStoreRepository(db *sql.DB) *Repository {
	return &Repository{db: db, table: "env_store_pit"}
}

// NewSecretStoreRepository builds a Repository over secret_store_pit.
func NewSecretStoreRepository(db *sql.DB) *Repository {
	return &Repository{db: db, table: "secret_store_pit"}
}

func (r *Repository) Create(ctx context.Context, snapshot *pit.Snapshot) error {
	querier := database.GetTx(ctx, r.db)
	if snapshot.UUID == uuid.Nil {
		snapshot.UUID = uuid.New()
	}
	snapshot.CreatedAt = time.Now().UTC()

	changesJSON, err := json.Marshal(snapshot.Changes)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal pit changes")
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (uuid, org_id, app_id, env_type_id, changes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`, r.table)
	row := querier.QueryRowContext(ctx, query,
		snapshot.UUID, snapshot.OrgID, snapshot.AppID, snapshot.EnvTypeID, changesJSON, snapshot.CreatedAt)
	if err := row.Scan(&snapshot.ID); err != nil {
		return apperrors.Wrap(err, "failed to create "+r.table+" row")
	}
	return nil
}

func (r *Repository) ListAscending(ctx context.Context, orgID, appID, envTypeID string) ([]*pit.Snapshot, error) {
	querier := database.GetTx(ctx, r.db)
	query := fmt.Sprintf(`
		SELECT id, uuid, org_id, app_id, env_type_id, changes, created_at
		FROM %s
		WHERE org_id = $1 AND app_id = $2 AND env_type_id = $3
		ORDER BY id`, r.table)
	rows, err := querier.QueryContext(ctx, query, orgID, appID, envTypeID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list "+r.table)
	}
	defer rows.Close()

	var out []*pit.Snapshot
	for rows.Next() {
		var snap pit.Snapshot
		var changesJSON []byte
		if err := rows.Scan(&snap.ID, &snap.UUID, &snap.OrgID, &snap.AppID, &snap.EnvTypeID, &changesJSON, &snap.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan "+r.table+" row")
		}
		if err := json.Unmarshal(changesJSON, &snap.Changes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal pit changes")
		}
		out = append(out, &snap)
	}
	return out, rows.Err()
}
