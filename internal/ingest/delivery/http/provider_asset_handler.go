package http

import (
	"errors"
	"net/http"
	"strconv"

	"mc-postgres-db/internal/ingest/dto"
	"mc-postgres-db/internal/ingest/service"
	"mc-postgres-db/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ProviderAssetHandler handles HTTP requests for provider asset mappings.
type ProviderAssetHandler struct {
	resolver service.AssetResolver
	logger   *logger.Logger
}

// NewProviderAssetHandler creates a new ProviderAssetHandler.
func NewProviderAssetHandler(resolver service.AssetResolver, logger *logger.Logger) *ProviderAssetHandler {
	return &ProviderAssetHandler{resolver: resolver, logger: logger}
}

// RegisterRoutes registers the provider routes to the Echo group.
func (h *ProviderAssetHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/:id/assets", h.ListAssets)
	g.GET("/:id/assets/:code", h.ResolveAsset)
}

// ListAssets returns the provider's current asset mappings.
func (h *ProviderAssetHandler) ListAssets(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid provider ID"})
	}

	assets, err := h.resolver.ListLatest(c.Request().Context(), uint(id))
	if err != nil {
		h.logger.Error("Failed to list provider assets", logger.Field("provider_id", id), logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list provider assets"})
	}
	return c.JSON(http.StatusOK, assets)
}

// ResolveAsset maps a provider asset code to the internal asset id.
func (h *ProviderAssetHandler) ResolveAsset(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid provider ID"})
	}

	resp, err := h.resolver.Resolve(c.Request().Context(), uint(id), c.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrAssetNotFound) {
			return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		}
		h.logger.Error("Failed to resolve asset code", logger.Field("provider_id", id), logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to resolve asset code"})
	}
	return c.JSON(http.StatusOK, resp)
}
