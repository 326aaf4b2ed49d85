package entity

// All lists one zero value per market table, in schema order.
func All() []interface{} {
	return []interface{}{
		&AssetType{},
		&Asset{},
		&ProviderType{},
		&Provider{},
		&ProviderAsset{},
		&ProviderAssetOrder{},
		&ProviderAssetMarket{},
		&ContentType{},
		&ProviderContent{},
		&SentimentType{},
		&ProviderContentSentiment{},
		&AssetContent{},
	}
}
