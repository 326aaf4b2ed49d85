package dto

// ProviderAssetResponse is the current mapping of a provider asset code.
type ProviderAssetResponse struct {
	Date       string `json:"date"`
	ProviderID uint   `json:"provider_id"`
	AssetID    uint   `json:"asset_id"`
	AssetCode  string `json:"asset_code"`
}

// ResolveResponse is the internal asset id behind a provider asset code.
type ResolveResponse struct {
	ProviderID uint   `json:"provider_id"`
	AssetCode  string `json:"asset_code"`
	AssetID    uint   `json:"asset_id"`
}
