package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mc-postgres-db/internal/ingest/dto"
	"mc-postgres-db/internal/repository"
	"mc-postgres-db/pkg/logger"
	"mc-postgres-db/pkg/utils"

	"github.com/patrickmn/go-cache"
)

// ErrAssetNotFound is returned when a provider has no active mapping for a code.
var ErrAssetNotFound = errors.New("asset not found")

// AssetResolver maps provider asset codes to internal asset ids.
type AssetResolver interface {
	ListLatest(ctx context.Context, providerID uint) ([]dto.ProviderAssetResponse, error)
	Resolve(ctx context.Context, providerID uint, assetCode string) (*dto.ResolveResponse, error)
	Invalidate(providerID uint)
}

// NewAssetResolver creates a resolver that caches each provider's code map
// for ttl.
func NewAssetResolver(repo repository.ProviderAssetRepository, ttl time.Duration, logger *logger.Logger) AssetResolver {
	return &assetResolver{
		repo:   repo,
		cache:  cache.New(ttl, 2*ttl),
		logger: logger,
	}
}

type assetResolver struct {
	repo   repository.ProviderAssetRepository
	cache  *cache.Cache
	logger *logger.Logger
}

// ListLatest returns the provider's current mappings, bypassing the cache.
func (r *assetResolver) ListLatest(ctx context.Context, providerID uint) ([]dto.ProviderAssetResponse, error) {
	mappings, err := r.repo.FindLatestByProvider(ctx, providerID, nil)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProviderAssetResponse, 0, len(mappings))
	for _, m := range mappings {
		out = append(out, dto.ProviderAssetResponse{
			Date:       utils.FormatDate(m.Date),
			ProviderID: m.ProviderID,
			AssetID:    m.AssetID,
			AssetCode:  m.AssetCode,
		})
	}
	return out, nil
}

// Resolve looks the code up in the provider's cached code map.
func (r *assetResolver) Resolve(ctx context.Context, providerID uint, assetCode string) (*dto.ResolveResponse, error) {
	codes, err := r.codes(ctx, providerID)
	if err != nil {
		return nil, err
	}
	assetID, ok := codes[assetCode]
	if !ok {
		return nil, fmt.Errorf("%w: provider %d has no active asset with code %q", ErrAssetNotFound, providerID, assetCode)
	}
	return &dto.ResolveResponse{ProviderID: providerID, AssetCode: assetCode, AssetID: assetID}, nil
}

// Invalidate drops the provider's cached code map.
func (r *assetResolver) Invalidate(providerID uint) {
	r.cache.Delete(cacheKey(providerID))
}

func (r *assetResolver) codes(ctx context.Context, providerID uint) (map[string]uint, error) {
	key := cacheKey(providerID)
	if v, found := r.cache.Get(key); found {
		return v.(map[string]uint), nil
	}

	mappings, err := r.repo.FindLatestByProvider(ctx, providerID, nil)
	if err != nil {
		return nil, err
	}
	codes := make(map[string]uint, len(mappings))
	for _, m := range mappings {
		codes[m.AssetCode] = m.AssetID
	}
	r.cache.SetDefault(key, codes)
	r.logger.Debug("Cached provider asset codes",
		logger.Field("provider_id", providerID),
		logger.IntField("count", len(codes)))
	return codes, nil
}

func cacheKey(providerID uint) string {
	return fmt.Sprintf("provider:%d", providerID)
}
