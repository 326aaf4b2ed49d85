package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"mc-postgres-db/internal/ingest/dto"
	"mc-postgres-db/internal/ingest/service"
	"mc-postgres-db/internal/store"
	"mc-postgres-db/pkg/logger"

	"github.com/labstack/echo/v4"
)

// TableHandler handles HTTP requests for table writes.
type TableHandler struct {
	ingestService service.IngestService
	logger        *logger.Logger
}

// NewTableHandler creates a new TableHandler.
func NewTableHandler(ingestService service.IngestService, logger *logger.Logger) *TableHandler {
	return &TableHandler{ingestService: ingestService, logger: logger}
}

// RegisterRoutes registers the table routes to the Echo group.
func (h *TableHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListTables)
	g.POST("/:table/rows", h.WriteRows)
}

// ListTables returns the schema of every writable table.
func (h *TableHandler) ListTables(c echo.Context) error {
	return c.JSON(http.StatusOK, h.ingestService.ListTables())
}

// WriteRows writes a JSON array of rows to a table. The mode query
// parameter defaults to upsert.
func (h *TableHandler) WriteRows(c echo.Context) error {
	table := c.Param("table")
	mode := c.QueryParam("mode")
	if mode == "" {
		mode = string(store.ModeUpsert)
	}

	var raw []map[string]any
	dec := json.NewDecoder(c.Request().Body)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	resp, err := h.ingestService.Write(c.Request().Context(), table, mode, raw)
	if err != nil {
		status := writeStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Failed to write rows",
				logger.StringField("table", table),
				logger.StringField("mode", mode),
				logger.ErrorField(err))
			return c.JSON(status, dto.ErrorResponse{Error: "Failed to write rows"})
		}
		return c.JSON(status, dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, resp)
}

func writeStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrInvalidOperation):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrUnknownTable):
		return http.StatusNotFound
	case errors.Is(err, store.ErrSchemaMismatch), errors.Is(err, store.ErrTypeMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrBatchTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
