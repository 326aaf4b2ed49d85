// Package dbtest provides temporary market databases for tests.
package dbtest

import (
	"context"
	"testing"

	"mc-postgres-db/internal/database"
	"mc-postgres-db/internal/schema"
	"mc-postgres-db/pkg/logger"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Reference holds the ids of the rows created by Seed.
type Reference struct {
	AssetTypeID    uint
	BTC            uint
	USD            uint
	ProviderTypeID uint
	ProviderID     uint
}

// New returns a fresh database with the default schema, removed when the
// test ends.
func New(t testing.TB) *gorm.DB {
	t.Helper()
	ctx := context.Background()
	tmp, err := database.NewTempDB(ctx, schema.Default(), logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, tmp.Close(ctx))
	})
	return tmp.DB
}

// Seed inserts one asset type, two assets, one provider type and one
// provider, enough to satisfy the foreign keys of the market tables.
func Seed(t testing.TB, db *gorm.DB) Reference {
	t.Helper()
	var ref Reference
	ref.AssetTypeID = insert(t, db, `INSERT INTO asset_type (name) VALUES ('Cryptocurrency')`)
	ref.BTC = insert(t, db, `INSERT INTO asset (asset_type_id, name, symbol) VALUES (?, 'Bitcoin', 'BTC')`, ref.AssetTypeID)
	ref.USD = insert(t, db, `INSERT INTO asset (asset_type_id, name, symbol) VALUES (?, 'US Dollar', 'USD')`, ref.AssetTypeID)
	ref.ProviderTypeID = insert(t, db, `INSERT INTO provider_type (name) VALUES ('Exchange')`)
	ref.ProviderID = insert(t, db, `INSERT INTO provider (provider_type_id, name) VALUES (?, 'Kraken')`, ref.ProviderTypeID)
	return ref
}

func insert(t testing.TB, db *gorm.DB, stmt string, args ...interface{}) uint {
	t.Helper()
	require.NoError(t, db.Exec(stmt, args...).Error)
	var id uint
	require.NoError(t, db.Raw(`SELECT last_insert_rowid()`).Scan(&id).Error)
	return id
}

// Count returns the number of rows in table.
func Count(t testing.TB, db *gorm.DB, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Table(table).Count(&n).Error)
	return n
}
