package entity

import (
	"time"

	"mc-postgres-db/internal/schema"
)

// ProviderAssetOrder is a point-in-time order record. Rows are append-only
// and identified by a surrogate id only.
type ProviderAssetOrder struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Timestamp   time.Time `gorm:"not null" json:"timestamp"`
	ProviderID  uint      `gorm:"not null" json:"provider_id"`
	FromAssetID uint      `gorm:"not null" json:"from_asset_id"`
	ToAssetID   uint      `gorm:"not null" json:"to_asset_id"`
	Price       *float64  `json:"price,omitempty"`
	Volume      *float64  `json:"volume,omitempty"`
}

func (ProviderAssetOrder) TableName() string {
	return schema.TableProviderAssetOrder
}

// ProviderAssetMarket is an OHLCV + top-of-book snapshot for an asset pair
// (from = base, to = quote) at a provider.
type ProviderAssetMarket struct {
	Timestamp   time.Time `gorm:"primaryKey" json:"timestamp"`
	ProviderID  uint      `gorm:"primaryKey;autoIncrement:false" json:"provider_id"`
	FromAssetID uint      `gorm:"primaryKey;autoIncrement:false" json:"from_asset_id"`
	ToAssetID   uint      `gorm:"primaryKey;autoIncrement:false" json:"to_asset_id"`
	Close       *float64  `json:"close,omitempty"`
	Open        *float64  `json:"open,omitempty"`
	High        *float64  `json:"high,omitempty"`
	Low         *float64  `json:"low,omitempty"`
	Volume      *float64  `json:"volume,omitempty"`
	BestBid     *float64  `json:"best_bid,omitempty"`
	BestAsk     *float64  `json:"best_ask,omitempty"`
}

func (ProviderAssetMarket) TableName() string {
	return schema.TableProviderAssetMarket
}
