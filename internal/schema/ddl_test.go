package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateSQLPostgres(t *testing.T) {
	market, _ := Default().Table(TableProviderAssetMarket)
	sql := market.CreateSQL(Postgres)

	assert.True(t, strings.HasPrefix(sql, `CREATE TABLE IF NOT EXISTS "provider_asset_market" (`))
	assert.Contains(t, sql, `"timestamp" TIMESTAMP WITHOUT TIME ZONE NOT NULL,`)
	assert.Contains(t, sql, `"close" DOUBLE PRECISION,`)
	assert.Contains(t, sql, `CONSTRAINT "provider_asset_market_pkey" PRIMARY KEY ("timestamp", "provider_id", "from_asset_id", "to_asset_id")`)
	assert.Contains(t, sql, `CONSTRAINT "provider_asset_market_provider_id_fkey" FOREIGN KEY ("provider_id") REFERENCES "provider" ("id")`)
}

func TestCreateSQLSQLite(t *testing.T) {
	assetType, _ := Default().Table(TableAssetType)
	sql := assetType.CreateSQL(SQLite)

	assert.Contains(t, sql, `"id" INTEGER,`)
	assert.Contains(t, sql, `"name" VARCHAR(100) NOT NULL,`)
	assert.Contains(t, sql, `"description" VARCHAR(1000),`)
	assert.Contains(t, sql, `"is_active" BOOLEAN NOT NULL DEFAULT TRUE,`)
	assert.Contains(t, sql, `"created_at" DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,`)
	assert.Contains(t, sql, `CONSTRAINT "asset_type_pkey" PRIMARY KEY ("id")`)

	content, _ := Default().Table(TableProviderContent)
	assert.Contains(t, content.CreateSQL(SQLite), `"content" TEXT NOT NULL,`)
	assert.Contains(t, content.CreateSQL(Postgres), `"content" VARCHAR NOT NULL,`)
}

func TestSerialKeyOnPostgres(t *testing.T) {
	order, _ := Default().Table(TableProviderAssetOrder)
	assert.Contains(t, order.CreateSQL(Postgres), `"id" SERIAL,`)
}

func TestDropAllSQLReversesOrder(t *testing.T) {
	reg := Default()
	drops := reg.DropAllSQL(Postgres)
	creates := reg.CreateAllSQL(Postgres)

	assert.Len(t, drops, len(creates))
	assert.Equal(t, `DROP TABLE IF EXISTS "asset_content" CASCADE`, drops[0])
	assert.Equal(t, `DROP TABLE IF EXISTS "asset_type" CASCADE`, drops[len(drops)-1])
	assert.Equal(t, `DROP TABLE IF EXISTS "asset_type"`, reg.DropAllSQL(SQLite)[len(drops)-1])
}
