package database_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"mc-postgres-db/internal/database"
	"mc-postgres-db/internal/database/dbtest"
	"mc-postgres-db/internal/schema"
	"mc-postgres-db/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNewTempDB_CreatesAllTables(t *testing.T) {
	ctx := context.Background()
	tmp, err := database.NewTempDB(ctx, schema.Default(), logger.NewNop())
	require.NoError(t, err)
	defer tmp.Close(ctx)

	assert.Equal(t, schema.SQLite, database.Dialect(tmp.DB))
	for _, name := range schema.Default().TableNames() {
		assert.True(t, tmp.DB.Migrator().HasTable(name), "table %s", name)
	}
}

func TestTempDB_Independent(t *testing.T) {
	a := dbtest.New(t)
	b := dbtest.New(t)

	require.NoError(t, a.Exec(`INSERT INTO asset_type (name) VALUES ('Stock')`).Error)

	assert.Equal(t, int64(1), dbtest.Count(t, a, schema.TableAssetType))
	assert.Equal(t, int64(0), dbtest.Count(t, b, schema.TableAssetType))
}

func TestTempDB_CloseRemovesFile(t *testing.T) {
	ctx := context.Background()
	tmp, err := database.NewTempDB(ctx, schema.Default(), logger.NewNop())
	require.NoError(t, err)

	_, err = os.Stat(tmp.Path)
	require.NoError(t, err)

	require.NoError(t, tmp.Close(ctx))
	_, err = os.Stat(tmp.Path)
	assert.True(t, os.IsNotExist(err))
}

func TestWithTempDB_CleansUpOnError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	var path string

	err := database.WithTempDB(ctx, schema.Default(), logger.NewNop(), func(db *gorm.DB) error {
		var name string
		require.NoError(t, db.Raw(`PRAGMA database_list`).Row().Scan(new(int), &name, &path))
		return boom
	})

	assert.ErrorIs(t, err, boom)
	require.NotEmpty(t, path)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWithTempDB_Success(t *testing.T) {
	ctx := context.Background()
	called := false
	err := database.WithTempDB(ctx, schema.Default(), logger.NewNop(), func(db *gorm.DB) error {
		called = true
		return db.Exec(`INSERT INTO content_type (name) VALUES ('News')`).Error
	})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	dbtest.Seed(t, db)
	require.Equal(t, int64(2), dbtest.Count(t, db, schema.TableAsset))

	require.NoError(t, database.Reset(ctx, db, schema.Default()))

	assert.Equal(t, int64(0), dbtest.Count(t, db, schema.TableAsset))
	assert.Equal(t, int64(0), dbtest.Count(t, db, schema.TableProvider))
}

func TestForeignKeysEnforced(t *testing.T) {
	db := dbtest.New(t)
	err := db.Exec(`INSERT INTO asset (asset_type_id, name) VALUES (42, 'Orphan')`).Error
	assert.Error(t, err)
}
