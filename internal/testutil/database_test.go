package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMigrationsPath(t *testing.T) {
	path := getMigrationsPath("postgresql")
	assert.NotEmpty(t, path)
	assert.Contains(t, path, "postgresql")

	path = getMigrationsPath("mysql")
	assert.NotEmpty(t, path)
	assert.Contains(t, path, "mysql")
}

func TestJoinTables(t *testing.T) {
	joined := joinTables([]string{"a", "b", "c"})
	assert.Equal(t, "a, b, c", joined)

	assert.Equal(t, "", joinTables(nil))
	assert.Equal(t, "a", joinTables([]string{"a"}))
}

func TestSetupPostgresDB(t *testing.T) {
	SkipIfNoPostgres(t)

	db := SetupPostgresDB(t)
	defer TeardownDB(t, db)

	err := db.Ping()
	assert.NoError(t, err)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM orgs").Scan(&count)
	assert.NoError(t, err)
	assert.Equal(t, 0, count, "database should be clean after setup")
}

func TestSetupMySQLDB(t *testing.T) {
	SkipIfNoMySQL(t)

	db := SetupMySQLDB(t)
	defer TeardownDB(t, db)

	err := db.Ping()
	assert.NoError(t, err)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM orgs").Scan(&count)
	assert.NoError(t, err)
	assert.Equal(t, 0, count, "database should be clean after setup")
}

func TestTeardownDBWithNilDB(t *testing.T) {
	assert.NotPanics(t, func() {
		TeardownDB(t, nil)
	})
}

func TestCleanupPostgresDB(t *testing.T) {
	SkipIfNoPostgres(t)

	db := SetupPostgresDB(t)
	defer TeardownDB(t, db)

	orgID := CreateTestOrg(t, db, "postgres", "test-cleanup-org")
	require.NotEqual(t, uuid.Nil, orgID)

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM orgs").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	CleanupPostgresDB(t, db)

	err = db.QueryRow("SELECT COUNT(*) FROM orgs").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "cleanup should remove all data")
}

func TestCleanupMySQLDB(t *testing.T) {
	SkipIfNoMySQL(t)

	db := SetupMySQLDB(t)
	defer TeardownDB(t, db)

	orgID := CreateTestOrg(t, db, "mysql", "test-cleanup-org")
	require.NotEqual(t, uuid.Nil, orgID)

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM orgs").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	CleanupMySQLDB(t, db)

	err = db.QueryRow("SELECT COUNT(*) FROM orgs").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "cleanup should remove all data")
}

func TestCreateTestOrgAndApp(t *testing.T) {
	t.Run("postgres", func(t *testing.T) {
		SkipIfNoPostgres(t)
		db := SetupPostgresDB(t)
		defer TeardownDB(t, db)

		orgID, appID := CreateTestOrgAndApp(t, db, "postgres", "test-fixtures")
		assert.NotEqual(t, uuid.Nil, orgID)
		assert.NotEqual(t, uuid.Nil, appID)
		assert.NotEqual(t, orgID, appID)

		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM apps WHERE org_id = $1", orgID).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("mysql", func(t *testing.T) {
		SkipIfNoMySQL(t)
		db := SetupMySQLDB(t)
		defer TeardownDB(t, db)

		orgID, appID := CreateTestOrgAndApp(t, db, "mysql", "test-fixtures")
		assert.NotEqual(t, uuid.Nil, orgID)
		assert.NotEqual(t, uuid.Nil, appID)
		assert.NotEqual(t, orgID, appID)

		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM apps WHERE org_id = ?", orgID.String()).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}
