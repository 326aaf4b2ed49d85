package entity

import (
	"time"

	"mc-postgres-db/internal/schema"
)

// AssetType classifies assets, e.g. stock, bond, currency.
type AssetType struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description *string   `gorm:"size:1000" json:"description,omitempty"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;autoCreateTime:false;<-:create" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;autoUpdateTime:false" json:"updated_at"`
}

// TableName specifies the table name for the AssetType model.
func (AssetType) TableName() string {
	return schema.TableAssetType
}

// Asset is a tradable instrument. UnderlyingAssetID optionally points at the
// asset this one derives from.
type Asset struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	AssetTypeID       uint      `gorm:"not null" json:"asset_type_id"`
	Name              string    `gorm:"size:100;not null" json:"name"`
	Description       *string   `gorm:"size:1000" json:"description,omitempty"`
	Symbol            *string   `gorm:"size:100" json:"symbol,omitempty"`
	UnderlyingAssetID *uint     `json:"underlying_asset_id,omitempty"`
	IsActive          bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt         time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;autoCreateTime:false;<-:create" json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;autoUpdateTime:false" json:"updated_at"`
}

func (Asset) TableName() string {
	return schema.TableAsset
}
