package store

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"mc-postgres-db/internal/schema"
	"mc-postgres-db/pkg/utils"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	utils.DateLayout,
}

// CoerceRows converts decoded JSON rows into typed rows for t. Integers,
// floats and booleans may arrive as json.Number, float64 or strings;
// timestamps and dates as strings. Values that already have the column's
// Go type pass through.
func CoerceRows(t schema.Table, raw []map[string]any) ([]Row, error) {
	rows := make([]Row, 0, len(raw))
	for i, r := range raw {
		row := make(Row, len(r))
		for name, v := range r {
			col, ok := t.Column(name)
			if !ok {
				return nil, fmt.Errorf("%w: row %d has column %q not in table %q", ErrSchemaMismatch, i, name, t.Name)
			}
			cv, err := coerce(col, v)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %s.%s: %v", ErrTypeMismatch, i, t.Name, name, err)
			}
			row[name] = cv
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func coerce(col schema.Column, v any) (any, error) {
	if v == nil {
		if !col.Nullable {
			return nil, fmt.Errorf("null in non-nullable %s column", col.Type)
		}
		return nil, nil
	}
	if typeMatches(col, v) {
		return v, nil
	}

	switch col.Type {
	case schema.Integer:
		return toInt(v)
	case schema.Float:
		return toFloat(v)
	case schema.Boolean:
		if s, ok := v.(string); ok {
			return strconv.ParseBool(s)
		}
	case schema.Timestamp:
		if s, ok := v.(string); ok {
			return parseTime(s)
		}
	case schema.Date:
		if s, ok := v.(string); ok {
			tm, err := parseTime(s)
			if err != nil {
				return nil, err
			}
			return utils.ToDate(tm), nil
		}
	}
	return nil, fmt.Errorf("cannot use %T as %s", v, col.Type)
}

func toInt(v any) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Int64()
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("%v is not a whole number", n)
		}
		if n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, fmt.Errorf("%v is out of the integer range", n)
		}
		return int64(n), nil
	case string:
		return strconv.ParseInt(n, 10, 64)
	}
	return 0, fmt.Errorf("cannot use %T as integer", v)
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Float64()
	case string:
		return strconv.ParseFloat(n, 64)
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("cannot use %T as float", v)
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if tm, err := time.Parse(layout, s); err == nil {
			return tm, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q", s)
}
