package repository

import (
	"context"
	"time"

	"mc-postgres-db/internal/entity"

	"gorm.io/gorm"
)

// ProviderAssetMarketRepository defines the read operations on market snapshots.
type ProviderAssetMarketRepository interface {
	FindByKey(ctx context.Context, key MarketKey) (*entity.ProviderAssetMarket, error)
	FindRange(ctx context.Context, pair MarketPair, from, to time.Time) ([]entity.ProviderAssetMarket, error)
}

// MarketPair identifies an asset pair quoted by a provider.
type MarketPair struct {
	ProviderID  uint
	FromAssetID uint
	ToAssetID   uint
}

// MarketKey is the primary key of a market snapshot.
type MarketKey struct {
	MarketPair
	Timestamp time.Time
}

// NewProviderAssetMarketRepository creates a new GORM-based market repository.
func NewProviderAssetMarketRepository(db *gorm.DB) ProviderAssetMarketRepository {
	return &providerAssetMarketRepository{db: db}
}

type providerAssetMarketRepository struct {
	db *gorm.DB
}

// FindByKey retrieves one snapshot. It returns gorm.ErrRecordNotFound when
// there is none.
func (r *providerAssetMarketRepository) FindByKey(ctx context.Context, key MarketKey) (*entity.ProviderAssetMarket, error) {
	var m entity.ProviderAssetMarket
	err := r.db.WithContext(ctx).
		Scopes(r.pairScope(key.MarketPair)).
		Where("provider_asset_market.timestamp = ?", key.Timestamp).
		Take(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindRange retrieves the snapshots of a pair with from <= timestamp < to,
// oldest first.
func (r *providerAssetMarketRepository) FindRange(ctx context.Context, pair MarketPair, from, to time.Time) ([]entity.ProviderAssetMarket, error) {
	var rows []entity.ProviderAssetMarket
	err := r.db.WithContext(ctx).
		Scopes(r.pairScope(pair)).
		Where("provider_asset_market.timestamp >= ? AND provider_asset_market.timestamp < ?", from, to).
		Order("provider_asset_market.timestamp").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *providerAssetMarketRepository) pairScope(pair MarketPair) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Model(&entity.ProviderAssetMarket{}).
			Where("provider_asset_market.provider_id = ? AND provider_asset_market.from_asset_id = ? AND provider_asset_market.to_asset_id = ?",
				pair.ProviderID, pair.FromAssetID, pair.ToAssetID)
	}
}
