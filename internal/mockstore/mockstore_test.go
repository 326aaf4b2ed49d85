package mockstore_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"mc-postgres-db/internal/mockstore"
	"mc-postgres-db/internal/schema"
	"mc-postgres-db/internal/store"
	"mc-postgres-db/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/datatypes"
)

func newStore() *mockstore.Store {
	return mockstore.New(schema.Default(), logger.NewNop())
}

func marketRow(ts time.Time, close float64) store.Row {
	return store.Row{
		"timestamp":     ts,
		"provider_id":   1,
		"from_asset_id": 2,
		"to_asset_id":   3,
		"close":         close,
	}
}

func TestStore_StartsEmpty(t *testing.T) {
	s := newStore()
	assert.Equal(t, schema.Default().TableNames(), s.TableNames())
	for _, name := range s.TableNames() {
		rows, err := s.GetTable(name)
		require.NoError(t, err)
		assert.Empty(t, rows)
	}
	_, err := s.GetTable("nope")
	assert.ErrorIs(t, err, store.ErrUnknownTable)
}

func TestStore_AppendAssignsSurrogateIDs(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	ts := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	row := store.Row{"timestamp": ts, "provider_id": 1, "from_asset_id": 2, "to_asset_id": 3, "price": 10.5}

	require.NoError(t, s.SetData(ctx, schema.TableProviderAssetOrder, []store.Row{row}, store.ModeAppend))
	require.NoError(t, s.SetData(ctx, schema.TableProviderAssetOrder, []store.Row{row}, store.ModeAppend))

	rows, err := s.GetTable(schema.TableProviderAssetOrder)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0]["id"])
	assert.Equal(t, int64(2), rows[1]["id"])
	assert.Equal(t, rows[0]["price"], rows[1]["price"])
	assert.Nil(t, rows[0]["volume"])
}

func TestStore_UpsertReplacesWholeRowByKey(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	ts := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	first := marketRow(ts, 10001)
	first["open"] = 9000.0
	require.NoError(t, s.SetData(ctx, schema.TableProviderAssetMarket, []store.Row{first}, store.ModeUpsert))

	second := marketRow(ts, 10002)
	second["provider_id"] = int64(1)
	other := marketRow(ts.Add(time.Minute), 5)
	require.NoError(t, s.SetData(ctx, schema.TableProviderAssetMarket, []store.Row{second, other}, store.ModeUpsert))

	rows, err := s.GetTable(schema.TableProviderAssetMarket)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 10002.0, rows[0]["close"])
	assert.Nil(t, rows[0]["open"], "mock upsert replaces the whole row")
	assert.Equal(t, 5.0, rows[1]["close"])
}

func TestStore_InsertKeepsLastWithinBatch(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	rows := []store.Row{
		{"id": 1, "name": "Stock"},
		{"id": 2, "name": "Bond"},
		{"id": 1, "name": "Equity"},
	}
	require.NoError(t, s.SetData(ctx, schema.TableAssetType, rows, store.ModeInsert))
	require.NoError(t, s.SetData(ctx, schema.TableAssetType, []store.Row{{"name": "Currency"}}, store.ModeInsert))

	got, err := s.GetTable(schema.TableAssetType)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Equity", got[0]["name"])
	assert.Equal(t, "Bond", got[1]["name"])
	assert.Equal(t, int64(3), got[2]["id"])
}

func TestStore_ValidationErrors(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	err := s.SetData(ctx, schema.TableAssetType, []store.Row{{"name": "X"}}, store.Mode("bogus"))
	assert.ErrorIs(t, err, store.ErrInvalidOperation)

	err = s.SetData(ctx, "nope", []store.Row{{"name": "X"}}, store.ModeAppend)
	assert.ErrorIs(t, err, store.ErrUnknownTable)

	for _, mode := range []store.Mode{store.ModeInsert, store.ModeAppend, store.ModeUpsert} {
		err = s.SetData(ctx, schema.TableAssetType, []store.Row{{"name": "X", "extra": 1}}, mode)
		assert.ErrorIs(t, err, store.ErrSchemaMismatch, mode)

		err = s.SetData(ctx, schema.TableAssetType, []store.Row{{"name": 42}}, mode)
		assert.ErrorIs(t, err, store.ErrTypeMismatch, mode)
	}

	rows, err := s.GetTable(schema.TableAssetType)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestStore_EmptyBatchIsNoop(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.InfoLevel)
	s := mockstore.New(schema.Default(), logger.FromCore(core))

	for _, name := range s.TableNames() {
		for _, mode := range []store.Mode{store.ModeInsert, store.ModeAppend, store.ModeUpsert} {
			require.NoError(t, s.SetData(ctx, name, nil, mode))
		}
		rows, err := s.GetTable(name)
		require.NoError(t, err)
		assert.Empty(t, rows)
	}
	assert.Equal(t, 3*len(s.TableNames()), logs.FilterMessage("No rows to write, skipping").Len())
}

func TestStore_SetAndAppendTable(t *testing.T) {
	s := newStore()

	require.NoError(t, s.SetTable(schema.TableContentType, []store.Row{{"name": "News"}}))
	require.NoError(t, s.AppendTable(schema.TableContentType, []store.Row{{"name": "Tweet"}}))

	rows, err := s.GetTable(schema.TableContentType)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []any{int64(1), int64(2)}, []any{rows[0]["id"], rows[1]["id"]})

	assert.ErrorIs(t, s.SetTable(schema.TableContentType, []store.Row{{"name": 1}}), store.ErrTypeMismatch)
	assert.ErrorIs(t, s.AppendTable(schema.TableContentType, []store.Row{{"bogus": 1}}), store.ErrSchemaMismatch)

	rows[0]["name"] = "changed"
	again, _ := s.GetTable(schema.TableContentType)
	assert.Equal(t, "News", again[0]["name"])

	s.Reset()
	rows, _ = s.GetTable(schema.TableContentType)
	assert.Empty(t, rows)
}

func TestStore_DateKeysMatchByCalendarDay(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	day := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	for i, d := range []any{datatypes.Date(day), day, day.Add(5 * time.Hour)} {
		row := store.Row{"date": d, "provider_id": 1, "asset_id": 2, "asset_code": fmt.Sprintf("XBT%d", i)}
		require.NoError(t, s.SetData(ctx, schema.TableProviderAsset, []store.Row{row}, store.ModeUpsert))
	}

	rows, err := s.GetTable(schema.TableProviderAsset)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "XBT2", rows[0]["asset_code"])
}

func TestStore_RejectsRowsWithoutNaturalKey(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	for _, mode := range []store.Mode{store.ModeInsert, store.ModeAppend, store.ModeUpsert} {
		err := s.SetData(ctx, schema.TableProviderAssetMarket, []store.Row{{"close": 1.0}}, mode)
		assert.ErrorIs(t, err, store.ErrSchemaMismatch, mode)
	}
	assert.ErrorIs(t, s.SetTable(schema.TableProviderAssetMarket, []store.Row{{"close": 2.0}}), store.ErrSchemaMismatch)

	rows, err := s.GetTable(schema.TableProviderAssetMarket)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
