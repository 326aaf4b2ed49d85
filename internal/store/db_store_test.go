package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"mc-postgres-db/internal/database/dbtest"
	"mc-postgres-db/internal/entity"
	"mc-postgres-db/internal/schema"
	"mc-postgres-db/internal/store"
	"mc-postgres-db/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

var allModes = []store.Mode{store.ModeInsert, store.ModeAppend, store.ModeUpsert}

func newDBStore(t *testing.T) (*store.DBStore, *gorm.DB, dbtest.Reference) {
	t.Helper()
	db := dbtest.New(t)
	ref := dbtest.Seed(t, db)
	return store.NewDBStore(db, schema.Default(), logger.NewNop()), db, ref
}

func marketRow(ref dbtest.Reference, ts time.Time) store.Row {
	return store.Row{
		"timestamp":     ts,
		"provider_id":   ref.ProviderID,
		"from_asset_id": ref.BTC,
		"to_asset_id":   ref.USD,
	}
}

func TestDBStore_AppendAddsRows(t *testing.T) {
	ctx := context.Background()
	s, db, _ := newDBStore(t)
	before := dbtest.Count(t, db, schema.TableAssetType)
	var seeded entity.AssetType
	require.NoError(t, db.Where("name = ?", "Cryptocurrency").First(&seeded).Error)

	rows := []store.Row{
		{"name": "Stock", "description": "Listed equity"},
		{"name": "Bond"},
	}
	require.NoError(t, s.SetData(ctx, schema.TableAssetType, rows, store.ModeAppend))

	assert.Equal(t, before+2, dbtest.Count(t, db, schema.TableAssetType))

	var after entity.AssetType
	require.NoError(t, db.First(&after, seeded.ID).Error)
	assert.Equal(t, seeded.Name, after.Name)
	assert.Equal(t, seeded.Description, after.Description)
	assert.True(t, after.IsActive)
	assert.True(t, seeded.CreatedAt.Equal(after.CreatedAt))
	assert.True(t, seeded.UpdatedAt.Equal(after.UpdatedAt))
}

func TestDBStore_PartialUpsertKeepsOmittedColumns(t *testing.T) {
	ctx := context.Background()
	s, db, ref := newDBStore(t)

	require.NoError(t, s.SetData(ctx, schema.TableAssetType, []store.Row{
		{"name": "Test Asset Type", "description": "Test Asset Type Description"},
	}, store.ModeUpsert))
	var at entity.AssetType
	require.NoError(t, db.Where("name = ?", "Test Asset Type").First(&at).Error)
	require.NotNil(t, at.Description)
	assert.Equal(t, "Test Asset Type Description", *at.Description)

	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	first := marketRow(ref, ts)
	first["close"] = 10001.0
	first["open"] = 9000.0
	require.NoError(t, s.SetData(ctx, schema.TableProviderAssetMarket, []store.Row{first}, store.ModeUpsert))

	second := marketRow(ref, ts)
	second["high"] = 10500.0
	second["low"] = 9500.0
	second["open"] = 9900.0
	second["volume"] = 12.5
	require.NoError(t, s.SetData(ctx, schema.TableProviderAssetMarket, []store.Row{second}, store.ModeUpsert))

	assert.Equal(t, int64(1), dbtest.Count(t, db, schema.TableProviderAssetMarket))
	var got entity.ProviderAssetMarket
	require.NoError(t, db.Where("provider_id = ?", ref.ProviderID).First(&got).Error)
	require.NotNil(t, got.Close)
	assert.Equal(t, 10001.0, *got.Close)
	assert.Equal(t, 10500.0, *got.High)
	assert.Equal(t, 9500.0, *got.Low)
	assert.Equal(t, 9900.0, *got.Open)
	assert.Equal(t, 12.5, *got.Volume)
	assert.Nil(t, got.BestBid)
}

func TestDBStore_UpsertMixedColumnSets(t *testing.T) {
	ctx := context.Background()
	s, db, ref := newDBStore(t)

	t1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	a := marketRow(ref, t1)
	a["close"] = 1.0
	b := marketRow(ref, t2)
	b["close"] = 2.0
	require.NoError(t, s.SetData(ctx, schema.TableProviderAssetMarket, []store.Row{a, b}, store.ModeUpsert))

	a2 := marketRow(ref, t1)
	a2["close"] = 1.5
	b2 := marketRow(ref, t2)
	b2["high"] = 3.0
	require.NoError(t, s.SetData(ctx, schema.TableProviderAssetMarket, []store.Row{a2, b2}, store.ModeUpsert))

	var got []entity.ProviderAssetMarket
	require.NoError(t, db.Order("timestamp").Find(&got).Error)
	require.Len(t, got, 2)
	assert.Equal(t, 1.5, *got[0].Close)
	assert.Nil(t, got[0].High)
	assert.Equal(t, 2.0, *got[1].Close)
	assert.Equal(t, 3.0, *got[1].High)
}

func TestDBStore_InsertReplacesWholeRow(t *testing.T) {
	ctx := context.Background()
	s, db, ref := newDBStore(t)

	ts := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	row := marketRow(ref, ts)
	row["close"] = 100.0
	row["open"] = 90.0
	require.NoError(t, s.SetData(ctx, schema.TableProviderAssetMarket, []store.Row{row}, store.ModeInsert))

	row = marketRow(ref, ts)
	row["close"] = 110.0
	require.NoError(t, s.SetData(ctx, schema.TableProviderAssetMarket, []store.Row{row}, store.ModeInsert))

	var got entity.ProviderAssetMarket
	require.NoError(t, db.First(&got).Error)
	assert.Equal(t, 110.0, *got.Close)
	assert.Nil(t, got.Open)
	assert.Equal(t, int64(1), dbtest.Count(t, db, schema.TableProviderAssetMarket))
}

func TestDBStore_InsertResetsDefaults(t *testing.T) {
	ctx := context.Background()
	s, db, ref := newDBStore(t)

	require.NoError(t, s.SetData(ctx, schema.TableAssetType, []store.Row{
		{"id": ref.AssetTypeID, "name": "Crypto", "is_active": false},
	}, store.ModeUpsert))
	var got entity.AssetType
	require.NoError(t, db.First(&got, ref.AssetTypeID).Error)
	assert.False(t, got.IsActive)

	require.NoError(t, s.SetData(ctx, schema.TableAssetType, []store.Row{
		{"id": ref.AssetTypeID, "name": "Digital Assets"},
	}, store.ModeInsert))
	got = entity.AssetType{}
	require.NoError(t, db.First(&got, ref.AssetTypeID).Error)
	assert.Equal(t, "Digital Assets", got.Name)
	assert.True(t, got.IsActive)
	assert.Nil(t, got.Description)
}

func TestDBStore_UnknownColumnFailsForEveryMode(t *testing.T) {
	ctx := context.Background()
	s, db, _ := newDBStore(t)
	before := dbtest.Count(t, db, schema.TableAssetType)

	for _, mode := range allModes {
		t.Run(string(mode), func(t *testing.T) {
			err := s.SetData(ctx, schema.TableAssetType, []store.Row{{"name": "X", "colour": "red"}}, mode)
			assert.ErrorIs(t, err, store.ErrSchemaMismatch)
		})
	}
	assert.Equal(t, before, dbtest.Count(t, db, schema.TableAssetType))
}

func TestDBStore_EmptyBatchIsNoop(t *testing.T) {
	ctx := context.Background()
	s, db, _ := newDBStore(t)

	for _, table := range schema.Default().TableNames() {
		before := dbtest.Count(t, db, table)
		for _, mode := range allModes {
			require.NoError(t, s.SetData(ctx, table, nil, mode), "%s/%s", table, mode)
			require.NoError(t, s.SetData(ctx, table, []store.Row{}, mode), "%s/%s", table, mode)
		}
		assert.Equal(t, before, dbtest.Count(t, db, table), table)
	}
}

func TestDBStore_InvalidModeAndTable(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newDBStore(t)

	err := s.SetData(ctx, schema.TableAssetType, []store.Row{{"name": "X"}}, store.Mode("bogus"))
	assert.ErrorIs(t, err, store.ErrInvalidOperation)
	err = s.SetData(ctx, "no_such_table", nil, store.Mode("bogus"))
	assert.ErrorIs(t, err, store.ErrInvalidOperation)

	err = s.SetData(ctx, "no_such_table", []store.Row{{"name": "X"}}, store.ModeAppend)
	assert.ErrorIs(t, err, store.ErrUnknownTable)
}

func TestDBStore_AppendOrderTwiceYieldsDistinctIDs(t *testing.T) {
	ctx := context.Background()
	s, db, ref := newDBStore(t)

	ts := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	row := store.Row{
		"timestamp":     ts,
		"provider_id":   ref.ProviderID,
		"from_asset_id": ref.BTC,
		"to_asset_id":   ref.USD,
		"price":         64000.5,
		"volume":        0.25,
	}
	require.NoError(t, s.SetData(ctx, schema.TableProviderAssetOrder, []store.Row{row}, store.ModeAppend))
	require.NoError(t, s.SetData(ctx, schema.TableProviderAssetOrder, []store.Row{row}, store.ModeAppend))

	var orders []entity.ProviderAssetOrder
	require.NoError(t, db.Order("id").Find(&orders).Error)
	require.Len(t, orders, 2)
	assert.NotEqual(t, orders[0].ID, orders[1].ID)
	assert.Equal(t, *orders[0].Price, *orders[1].Price)
	assert.Equal(t, *orders[0].Volume, *orders[1].Volume)
	assert.True(t, orders[0].Timestamp.Equal(orders[1].Timestamp))
}

func TestDBStore_EngineErrorPropagates(t *testing.T) {
	ctx := context.Background()
	s, _, ref := newDBStore(t)

	row := marketRow(ref, time.Now().UTC())
	row["provider_id"] = ref.ProviderID + 100
	err := s.SetData(ctx, schema.TableProviderAssetMarket, []store.Row{row}, store.ModeAppend)
	require.Error(t, err)
	for _, sentinel := range []error{store.ErrInvalidOperation, store.ErrUnknownTable, store.ErrSchemaMismatch, store.ErrTypeMismatch} {
		assert.False(t, errors.Is(err, sentinel))
	}
}

func TestDBStore_LogsEachWrite(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	core, logs := observer.New(zap.InfoLevel)
	s := store.NewDBStore(db, schema.Default(), logger.FromCore(core))

	require.NoError(t, s.SetData(ctx, schema.TableContentType, []store.Row{{"name": "News"}, {"name": "Tweet"}}, store.ModeUpsert))
	require.NoError(t, s.SetData(ctx, schema.TableContentType, nil, store.ModeAppend))

	entries := logs.FilterMessage("Upserting rows").All()
	require.Len(t, entries, 1)
	assert.Equal(t, map[string]interface{}{
		"count": int64(2),
		"table": schema.TableContentType,
		"mode":  "upsert",
	}, entries[0].ContextMap())
	assert.Equal(t, 1, logs.FilterMessage("No rows to write, skipping").Len())
}
