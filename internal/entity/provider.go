package entity

import (
	"time"

	"mc-postgres-db/internal/schema"
)

// ProviderType classifies providers, e.g. exchange, news, social media.
type ProviderType struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description *string   `gorm:"size:1000" json:"description,omitempty"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;autoCreateTime:false;<-:create" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;autoUpdateTime:false" json:"updated_at"`
}

func (ProviderType) TableName() string {
	return schema.TableProviderType
}

// Provider is a source of market data or content.
type Provider struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	ProviderTypeID       uint      `gorm:"not null" json:"provider_type_id"`
	Name                 string    `gorm:"size:100;not null" json:"name"`
	Description          *string   `gorm:"size:1000" json:"description,omitempty"`
	ProviderExternalCode *string   `gorm:"size:100" json:"provider_external_code,omitempty"`
	UnderlyingProviderID *uint     `json:"underlying_provider_id,omitempty"`
	URL                  *string   `gorm:"column:url;size:1000" json:"url,omitempty"`
	ImageURL             *string   `gorm:"column:image_url;size:1000" json:"image_url,omitempty"`
	IsActive             bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt            time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;autoCreateTime:false;<-:create" json:"created_at"`
	UpdatedAt            time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;autoUpdateTime:false" json:"updated_at"`
}

func (Provider) TableName() string {
	return schema.TableProvider
}
