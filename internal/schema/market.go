package schema

// Market schema table names.
const (
	TableAssetType                = "asset_type"
	TableAsset                    = "asset"
	TableProviderType             = "provider_type"
	TableProvider                 = "provider"
	TableProviderAsset            = "provider_asset"
	TableProviderAssetOrder       = "provider_asset_order"
	TableProviderAssetMarket      = "provider_asset_market"
	TableContentType              = "content_type"
	TableProviderContent          = "provider_content"
	TableSentimentType            = "sentiment_type"
	TableProviderContentSentiment = "provider_content_sentiment"
	TableAssetContent             = "asset_content"
)

var market = MustNewRegistry(
	lookupTable(TableAssetType, "The type of asset, e.g. stock, bond, currency, etc."),
	Table{
		Name:    TableAsset,
		Comment: "The asset, e.g. stock, bond, currency, etc.",
		Columns: []Column{
			surrogateID(),
			ref("asset_type_id", TableAssetType, false),
			{Name: "name", Type: String, Size: 100},
			{Name: "description", Type: String, Size: 1000, Nullable: true},
			{Name: "symbol", Type: String, Size: 100, Nullable: true},
			ref("underlying_asset_id", TableAsset, true),
			isActive(),
			createdAt(),
			updatedAt(),
		},
		PrimaryKey: []string{"id"},
	},
	lookupTable(TableProviderType, "The type of provider, e.g. news, social media, etc."),
	Table{
		Name:    TableProvider,
		Comment: "The provider, e.g. data vendor, news, social media, etc.",
		Columns: []Column{
			surrogateID(),
			ref("provider_type_id", TableProviderType, false),
			{Name: "name", Type: String, Size: 100},
			{Name: "description", Type: String, Size: 1000, Nullable: true},
			{Name: "provider_external_code", Type: String, Size: 100, Nullable: true},
			ref("underlying_provider_id", TableProvider, true),
			{Name: "url", Type: String, Size: 1000, Nullable: true},
			{Name: "image_url", Type: String, Size: 1000, Nullable: true},
			isActive(),
			createdAt(),
			updatedAt(),
		},
		PrimaryKey: []string{"id"},
	},
	Table{
		Name:    TableProviderAsset,
		Comment: "Maps the provider's asset codes to internal assets.",
		Columns: []Column{
			{Name: "date", Type: Date},
			ref("provider_id", TableProvider, false),
			ref("asset_id", TableAsset, false),
			{Name: "asset_code", Type: String, Size: 100},
			isActive(),
			createdAt(),
			updatedAt(),
		},
		PrimaryKey: []string{"date", "provider_id", "asset_id"},
	},
	Table{
		Name:    TableProviderAssetOrder,
		Comment: "Order data for an asset from a provider.",
		Columns: []Column{
			surrogateID(),
			{Name: "timestamp", Type: Timestamp},
			ref("provider_id", TableProvider, false),
			ref("from_asset_id", TableAsset, false),
			ref("to_asset_id", TableAsset, false),
			{Name: "price", Type: Float, Nullable: true},
			{Name: "volume", Type: Float, Nullable: true},
		},
		PrimaryKey: []string{"id"},
	},
	Table{
		Name:    TableProviderAssetMarket,
		Comment: "Market data for an asset pair from a provider.",
		Columns: []Column{
			{Name: "timestamp", Type: Timestamp},
			ref("provider_id", TableProvider, false),
			ref("from_asset_id", TableAsset, false),
			ref("to_asset_id", TableAsset, false),
			{Name: "close", Type: Float, Nullable: true},
			{Name: "open", Type: Float, Nullable: true},
			{Name: "high", Type: Float, Nullable: true},
			{Name: "low", Type: Float, Nullable: true},
			{Name: "volume", Type: Float, Nullable: true},
			{Name: "best_bid", Type: Float, Nullable: true},
			{Name: "best_ask", Type: Float, Nullable: true},
		},
		PrimaryKey: []string{"timestamp", "provider_id", "from_asset_id", "to_asset_id"},
	},
	lookupTable(TableContentType, "The type of content, e.g. news, social media, etc."),
	Table{
		Name:    TableProviderContent,
		Comment: "Content published by a provider.",
		Columns: []Column{
			surrogateID(),
			{Name: "timestamp", Type: Timestamp},
			ref("provider_id", TableProvider, false),
			{Name: "content_external_code", Type: String, Size: 1000},
			ref("content_type_id", TableContentType, false),
			{Name: "authors", Type: String, Size: 1000, Nullable: true},
			{Name: "title", Type: String, Size: 1000, Nullable: true},
			{Name: "description", Type: String, Size: 5000, Nullable: true},
			{Name: "content", Type: String},
			createdAt(),
			updatedAt(),
		},
		PrimaryKey: []string{"id"},
	},
	lookupTable(TableSentimentType, "The sentiment calculation method, e.g. PROVIDER, NLTK, VADER."),
	Table{
		Name:    TableProviderContentSentiment,
		Comment: "Sentiment of a provider content, per calculation method.",
		Columns: []Column{
			ref("provider_content_id", TableProviderContent, false),
			ref("sentiment_type_id", TableSentimentType, false),
			{Name: "sentiment_text", Type: String, Size: 1000, Nullable: true},
			{Name: "positive_sentiment_score", Type: Float, Nullable: true},
			{Name: "negative_sentiment_score", Type: Float, Nullable: true},
			{Name: "neutral_sentiment_score", Type: Float, Nullable: true},
			{Name: "sentiment_score", Type: Float, Nullable: true},
			createdAt(),
			updatedAt(),
		},
		PrimaryKey: []string{"provider_content_id", "sentiment_type_id"},
	},
	Table{
		Name:    TableAssetContent,
		Comment: "Links assets to the provider content that mentions them.",
		Columns: []Column{
			ref("content_id", TableProviderContent, false),
			ref("asset_id", TableAsset, false),
			createdAt(),
		},
		PrimaryKey: []string{"content_id", "asset_id"},
	},
)

// Default returns the market data schema.
func Default() *Registry {
	return market
}

func lookupTable(name, comment string) Table {
	return Table{
		Name:    name,
		Comment: comment,
		Columns: []Column{
			surrogateID(),
			{Name: "name", Type: String, Size: 100},
			{Name: "description", Type: String, Size: 1000, Nullable: true},
			isActive(),
			createdAt(),
			updatedAt(),
		},
		PrimaryKey: []string{"id"},
	}
}

func surrogateID() Column {
	return Column{Name: "id", Type: Integer, AutoIncrement: true}
}

func ref(name, table string, nullable bool) Column {
	return Column{
		Name:       name,
		Type:       Integer,
		Nullable:   nullable,
		References: &ForeignKey{Table: table, Column: "id"},
	}
}

func isActive() Column {
	return Column{Name: ColumnIsActive, Type: Boolean, Default: DefaultTrue}
}

func createdAt() Column {
	return Column{Name: ColumnCreatedAt, Type: Timestamp, Default: DefaultNow}
}

func updatedAt() Column {
	return Column{Name: ColumnUpdatedAt, Type: Timestamp, Default: DefaultNow}
}
