package entity

import (
	"time"

	"mc-postgres-db/internal/schema"
)

// ContentType classifies provider content, e.g. news article, social post.
type ContentType struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description *string   `gorm:"size:1000" json:"description,omitempty"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;autoCreateTime:false;<-:create" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;autoUpdateTime:false" json:"updated_at"`
}

func (ContentType) TableName() string {
	return schema.TableContentType
}

// ProviderContent is a piece of content published by a provider.
// ContentExternalCode is the provider's identifier, e.g. an article URL.
type ProviderContent struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Timestamp           time.Time `gorm:"not null" json:"timestamp"`
	ProviderID          uint      `gorm:"not null" json:"provider_id"`
	ContentExternalCode string    `gorm:"size:1000;not null" json:"content_external_code"`
	ContentTypeID       uint      `gorm:"not null" json:"content_type_id"`
	Authors             *string   `gorm:"size:1000" json:"authors,omitempty"`
	Title               *string   `gorm:"size:1000" json:"title,omitempty"`
	Description         *string   `gorm:"size:5000" json:"description,omitempty"`
	Content             string    `gorm:"not null" json:"content"`
	CreatedAt           time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;autoCreateTime:false;<-:create" json:"created_at"`
	UpdatedAt           time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;autoUpdateTime:false" json:"updated_at"`
}

func (ProviderContent) TableName() string {
	return schema.TableProviderContent
}

// SentimentType names a sentiment calculation method.
type SentimentType struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description *string   `gorm:"size:1000" json:"description,omitempty"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;autoCreateTime:false;<-:create" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;autoUpdateTime:false" json:"updated_at"`
}

func (SentimentType) TableName() string {
	return schema.TableSentimentType
}

// ProviderContentSentiment holds the scores one sentiment method produced
// for one content item. Scores are opaque here.
type ProviderContentSentiment struct {
	ProviderContentID      uint      `gorm:"primaryKey;autoIncrement:false" json:"provider_content_id"`
	SentimentTypeID        uint      `gorm:"primaryKey;autoIncrement:false" json:"sentiment_type_id"`
	SentimentText          *string   `gorm:"size:1000" json:"sentiment_text,omitempty"`
	PositiveSentimentScore *float64  `json:"positive_sentiment_score,omitempty"`
	NegativeSentimentScore *float64  `json:"negative_sentiment_score,omitempty"`
	NeutralSentimentScore  *float64  `json:"neutral_sentiment_score,omitempty"`
	SentimentScore         *float64  `json:"sentiment_score,omitempty"`
	CreatedAt              time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;autoCreateTime:false;<-:create" json:"created_at"`
	UpdatedAt              time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;autoUpdateTime:false" json:"updated_at"`
}

func (ProviderContentSentiment) TableName() string {
	return schema.TableProviderContentSentiment
}

// AssetContent links an asset to content that mentions it.
type AssetContent struct {
	ContentID uint      `gorm:"primaryKey;autoIncrement:false" json:"content_id"`
	AssetID   uint      `gorm:"primaryKey;autoIncrement:false" json:"asset_id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;autoCreateTime:false;<-:create" json:"created_at"`
}

func (AssetContent) TableName() string {
	return schema.TableAssetContent
}
