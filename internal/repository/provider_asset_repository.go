package repository

import (
	"context"

	"mc-postgres-db/internal/entity"
	"mc-postgres-db/internal/schema"

	"gorm.io/gorm"
)

// ProviderAssetRepository defines the read operations on provider asset mappings.
type ProviderAssetRepository interface {
	FindLatestByProvider(ctx context.Context, providerID uint, assetIDs []uint) ([]entity.ProviderAsset, error)
}

// NewProviderAssetRepository creates a new GORM-based provider asset repository.
func NewProviderAssetRepository(db *gorm.DB) ProviderAssetRepository {
	return &providerAssetRepository{db: db}
}

type providerAssetRepository struct {
	db *gorm.DB
}

// FindLatestByProvider returns, for each asset of the provider, the active
// mapping with the most recent date. Inactive assets are skipped. When
// assetIDs is non-empty only those assets are returned.
func (r *providerAssetRepository) FindLatestByProvider(ctx context.Context, providerID uint, assetIDs []uint) ([]entity.ProviderAsset, error) {
	db := r.db.WithContext(ctx)

	latest := db.Table(schema.TableProviderAsset).
		Select("provider_asset.provider_id, provider_asset.asset_id, MAX(provider_asset.date) AS max_date").
		Where("provider_asset.provider_id = ? AND provider_asset.is_active = ?", providerID, true).
		Group("provider_asset.provider_id, provider_asset.asset_id")

	query := db.Model(&entity.ProviderAsset{}).
		Joins("JOIN asset ON asset.id = provider_asset.asset_id").
		Joins("JOIN (?) AS latest ON latest.provider_id = provider_asset.provider_id"+
			" AND latest.asset_id = provider_asset.asset_id"+
			" AND latest.max_date = provider_asset.date", latest).
		Where("provider_asset.provider_id = ? AND provider_asset.is_active = ? AND asset.is_active = ?", providerID, true, true)
	if len(assetIDs) > 0 {
		query = query.Where("provider_asset.asset_id IN ?", assetIDs)
	}

	var mappings []entity.ProviderAsset
	if err := query.Order("provider_asset.asset_id").Find(&mappings).Error; err != nil {
		return nil, err
	}
	return mappings, nil
}
