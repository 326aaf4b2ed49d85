package store

import (
	"fmt"
	"sort"
	"time"

	"mc-postgres-db/internal/schema"

	"gorm.io/datatypes"
)

// Resolve checks the mode and looks the table up. It runs before anything
// else, so an empty batch still fails on a bad mode or table.
func Resolve(reg *schema.Registry, table string, mode Mode) (schema.Table, error) {
	if !mode.Valid() {
		return schema.Table{}, fmt.Errorf("%w: %q", ErrInvalidOperation, mode)
	}
	t, ok := reg.Table(table)
	if !ok {
		return schema.Table{}, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	return t, nil
}

// CheckColumns rejects rows that reference columns outside the table.
func CheckColumns(t schema.Table, rows []Row) error {
	for i, row := range rows {
		var unknown []string
		for name := range row {
			if _, ok := t.Column(name); !ok {
				unknown = append(unknown, name)
			}
		}
		if len(unknown) > 0 {
			sort.Strings(unknown)
			return fmt.Errorf("%w: row %d has columns %v not in table %q", ErrSchemaMismatch, i, unknown, t.Name)
		}
	}
	return nil
}

// CheckTypes rejects values whose Go type does not match the declared
// column type. nil is accepted for nullable columns only.
func CheckTypes(t schema.Table, rows []Row) error {
	for i, row := range rows {
		for name, v := range row {
			col, ok := t.Column(name)
			if !ok {
				return fmt.Errorf("%w: row %d has column %q not in table %q", ErrSchemaMismatch, i, name, t.Name)
			}
			if !typeMatches(col, v) {
				return fmt.Errorf("%w: row %d column %s.%s expects %s, got %T",
					ErrTypeMismatch, i, t.Name, name, col.Type, v)
			}
		}
	}
	return nil
}

func typeMatches(col schema.Column, v any) bool {
	if v == nil {
		return col.Nullable
	}
	switch col.Type {
	case schema.Integer:
		switch v.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return true
		}
	case schema.Float:
		switch v.(type) {
		case float32, float64:
			return true
		}
	case schema.String:
		_, ok := v.(string)
		return ok
	case schema.Boolean:
		_, ok := v.(bool)
		return ok
	case schema.Timestamp:
		_, ok := v.(time.Time)
		return ok
	case schema.Date:
		switch v.(type) {
		case time.Time, datatypes.Date:
			return true
		}
	}
	return false
}
