package service

import (
	"context"
	"errors"
	"fmt"

	"mc-postgres-db/internal/ingest/dto"
	"mc-postgres-db/internal/schema"
	"mc-postgres-db/internal/store"
	"mc-postgres-db/pkg/logger"
)

// ErrBatchTooLarge is returned when a batch exceeds the configured limit.
var ErrBatchTooLarge = errors.New("batch too large")

// IngestService defines the interface for writing decoded rows.
type IngestService interface {
	Write(ctx context.Context, table, mode string, raw []map[string]any) (*dto.WriteResponse, error)
	ListTables() []dto.TableResponse
}

// NewIngestService creates a new ingest service. maxBatch <= 0 disables the
// batch size limit.
func NewIngestService(writer store.Writer, registry *schema.Registry, maxBatch int, logger *logger.Logger) IngestService {
	return &ingestService{
		writer:   writer,
		registry: registry,
		maxBatch: maxBatch,
		logger:   logger,
	}
}

type ingestService struct {
	writer   store.Writer
	registry *schema.Registry
	maxBatch int
	logger   *logger.Logger
}

// Write coerces the raw rows to the table's column types and writes them.
func (s *ingestService) Write(ctx context.Context, table, mode string, raw []map[string]any) (*dto.WriteResponse, error) {
	m, err := store.ParseMode(mode)
	if err != nil {
		return nil, err
	}
	t, err := store.Resolve(s.registry, table, m)
	if err != nil {
		return nil, err
	}
	if s.maxBatch > 0 && len(raw) > s.maxBatch {
		return nil, fmt.Errorf("%w: %d rows, limit is %d", ErrBatchTooLarge, len(raw), s.maxBatch)
	}

	rows, err := store.CoerceRows(t, raw)
	if err != nil {
		return nil, err
	}
	if err := s.writer.SetData(ctx, t.Name, rows, m); err != nil {
		s.logger.Error("Failed to write rows",
			logger.StringField("table", t.Name),
			logger.StringField("mode", mode),
			logger.ErrorField(err))
		return nil, err
	}

	return &dto.WriteResponse{Table: t.Name, Mode: string(m), Rows: len(rows)}, nil
}

// ListTables describes every table in dependency order.
func (s *ingestService) ListTables() []dto.TableResponse {
	tables := s.registry.Tables()
	out := make([]dto.TableResponse, 0, len(tables))
	for _, t := range tables {
		out = append(out, mapToTableResponse(t))
	}
	return out
}

func mapToTableResponse(t schema.Table) dto.TableResponse {
	resp := dto.TableResponse{
		Name:           t.Name,
		Comment:        t.Comment,
		PrimaryKey:     append([]string(nil), t.PrimaryKey...),
		PrimaryKeyName: t.PrimaryKeyName(),
	}
	for _, c := range t.Columns {
		col := dto.ColumnResponse{
			Name:       c.Name,
			Type:       c.Type.String(),
			Nullable:   c.Nullable,
			PrimaryKey: t.IsKey(c.Name),
		}
		if c.Default != "" {
			def := c.Default
			col.Default = &def
		}
		if c.References != nil {
			ref := c.References.Table + "." + c.References.Column
			col.References = &ref
		}
		resp.Columns = append(resp.Columns, col)
	}
	return resp
}
