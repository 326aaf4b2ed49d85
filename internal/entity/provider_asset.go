package entity

import (
	"time"

	"mc-postgres-db/internal/schema"

	"gorm.io/datatypes"
)

// ProviderAsset maps a provider's own asset code to an internal asset, as of
// a given date.
type ProviderAsset struct {
	Date       datatypes.Date `gorm:"primaryKey;type:date" json:"date"`
	ProviderID uint           `gorm:"primaryKey;autoIncrement:false" json:"provider_id"`
	AssetID    uint           `gorm:"primaryKey;autoIncrement:false" json:"asset_id"`
	AssetCode  string         `gorm:"size:100;not null" json:"asset_code"`
	IsActive   bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP;autoCreateTime:false;<-:create" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP;autoUpdateTime:false" json:"updated_at"`
}

func (ProviderAsset) TableName() string {
	return schema.TableProviderAsset
}
