// Package mysql implements pit.Repository against MySQL, table-name
// parameterized so env_store_pit and secret_store_pit share one
// implementation.
package mysql

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
		VALUES (?, ?, ?, ?, ?, ?)`, r.table)
	result, err := querier.ExecContext(ctx, query,
		snapshot.UUID.String(), snapshot.OrgID, snapshot.AppID, snapshot.EnvTypeID, changesJSON, snapshot.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create "+r.table+" row")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to read last insert id")
	}
	snapshot.ID = id
	return nil
}

func (r *Repository) ListAscending(ctx context.Context, orgID, appID, envTypeID string) ([]*pit.Snapshot, error) {
	querier := database.GetTx(ctx, r.db)
	query := fmt.Sprintf(`
		SELECT id, uuid, org_id, app_id, env_type_id, changes, created_at
		FROM %s
		WHERE org_id = ? AND app_id = ? AND env_type_id = ?
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
		var rawUUID string
		if err := rows.Scan(&snap.ID, &rawUUID, &snap.OrgID, &snap.AppID, &snap.EnvTypeID, &changesJSON, &snap.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan "+r.table+" row")
		}
		snap.UUID, err = uuid.Parse(rawUUID)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to parse pit uuid")
		}
		if err := json.Unmarshal(changesJSON, &snap.Changes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal pit changes")
		}
		out = append(out, &snap)
	}
	return out, rows.Err()
}
