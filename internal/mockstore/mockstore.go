// Package mockstore is an in-memory Writer for tests that must not touch a
// database engine.
package mockstore

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"mc-postgres-db/internal/schema"
	"mc-postgres-db/internal/store"
	"mc-postgres-db/pkg/logger"
	"mc-postgres-db/pkg/utils"

	"gorm.io/datatypes"
)

// Store keeps one row slice per table. Stored rows always carry every
// column of their table; columns a caller left out hold nil.
//
// insert and upsert both replace stored rows by primary key, whole-row,
// keeping the last occurrence. Partial-column upsert semantics need a real
// engine.
//
// A Store is not safe for concurrent use.
type Store struct {
	registry *schema.Registry
	logger   *logger.Logger
	tables   map[string][]store.Row
	nextID   map[string]int64
}

var _ store.Writer = (*Store)(nil)

// New returns an empty store for every table in reg.
func New(reg *schema.Registry, log *logger.Logger) *Store {
	s := &Store{registry: reg, logger: log}
	s.Reset()
	return s
}

// Reset empties every table and restarts surrogate ids.
func (s *Store) Reset() {
	s.tables = make(map[string][]store.Row)
	s.nextID = make(map[string]int64)
	for _, name := range s.registry.TableNames() {
		s.tables[name] = []store.Row{}
		s.nextID[name] = 1
	}
}

// TableNames lists the tables held by the store.
func (s *Store) TableNames() []string {
	return s.registry.TableNames()
}

// GetTable returns a copy of the stored rows.
func (s *Store) GetTable(table string) ([]store.Row, error) {
	if _, ok := s.registry.Table(table); !ok {
		return nil, fmt.Errorf("%w: %q", store.ErrUnknownTable, table)
	}
	rows := s.tables[table]
	out := make([]store.Row, len(rows))
	for i, r := range rows {
		out[i] = copyRow(r)
	}
	return out, nil
}

// SetTable replaces the content of a table.
func (s *Store) SetTable(table string, rows []store.Row) error {
	t, err := s.checked(table, rows)
	if err != nil {
		return err
	}
	s.nextID[table] = 1
	s.tables[table] = s.normalize(t, rows)
	return nil
}

// AppendTable adds rows to a table without key handling. Only columns are
// checked.
func (s *Store) AppendTable(table string, rows []store.Row) error {
	t, ok := s.registry.Table(table)
	if !ok {
		return fmt.Errorf("%w: %q", store.ErrUnknownTable, table)
	}
	if err := store.CheckColumns(t, rows); err != nil {
		return err
	}
	s.tables[table] = append(s.tables[table], s.normalize(t, rows)...)
	return nil
}

// SetData validates the batch like DBStore and additionally checks value
// types.
func (s *Store) SetData(_ context.Context, table string, rows []store.Row, mode store.Mode) error {
	t, err := store.Resolve(s.registry, table, mode)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		s.logger.Info("No rows to write, skipping",
			logger.StringField("table", t.Name),
			logger.StringField("mode", string(mode)))
		return nil
	}
	if err := store.CheckColumns(t, rows); err != nil {
		return err
	}
	if err := store.CheckTypes(t, rows); err != nil {
		return err
	}
	if err := checkKeys(t, rows); err != nil {
		return err
	}

	s.logger.Info("Writing rows to mock store",
		logger.IntField("count", len(rows)),
		logger.StringField("table", t.Name),
		logger.StringField("mode", string(mode)))

	incoming := s.normalize(t, rows)
	if mode == store.ModeAppend {
		s.tables[table] = append(s.tables[table], incoming...)
		return nil
	}
	s.tables[table] = keepLast(t, append(s.tables[table], incoming...))
	return nil
}

func (s *Store) checked(table string, rows []store.Row) (schema.Table, error) {
	t, ok := s.registry.Table(table)
	if !ok {
		return schema.Table{}, fmt.Errorf("%w: %q", store.ErrUnknownTable, table)
	}
	if err := store.CheckColumns(t, rows); err != nil {
		return schema.Table{}, err
	}
	if err := store.CheckTypes(t, rows); err != nil {
		return schema.Table{}, err
	}
	if err := checkKeys(t, rows); err != nil {
		return schema.Table{}, err
	}
	return t, nil
}

// checkKeys rejects rows missing a primary-key column the store cannot
// generate itself.
func checkKeys(t schema.Table, rows []store.Row) error {
	for i, row := range rows {
		for _, name := range t.PrimaryKey {
			col, _ := t.Column(name)
			if col.AutoIncrement || col.Nullable || col.Default != "" {
				continue
			}
			if _, ok := row[name]; !ok {
				return fmt.Errorf("%w: row %d is missing key column %q of table %q", store.ErrSchemaMismatch, i, name, t.Name)
			}
		}
	}
	return nil
}

// normalize copies rows onto the full column set and assigns surrogate ids
// where the caller left them out.
func (s *Store) normalize(t schema.Table, rows []store.Row) []store.Row {
	key, surrogate := t.SurrogateKey()
	out := make([]store.Row, 0, len(rows))
	for _, r := range rows {
		row := make(store.Row, len(t.Columns))
		for _, c := range t.Columns {
			row[c.Name] = r[c.Name]
		}
		if surrogate {
			if id, ok := toInt64(row[key.Name]); ok {
				if id >= s.nextID[t.Name] {
					s.nextID[t.Name] = id + 1
				}
			} else {
				row[key.Name] = s.nextID[t.Name]
				s.nextID[t.Name]++
			}
		}
		out = append(out, row)
	}
	return out
}

// keepLast collapses rows sharing a primary key into the last one, at the
// position of the first.
func keepLast(t schema.Table, rows []store.Row) []store.Row {
	pos := make(map[string]int, len(rows))
	out := make([]store.Row, 0, len(rows))
	for _, r := range rows {
		k := keyOf(t, r)
		if i, ok := pos[k]; ok {
			out[i] = r
			continue
		}
		pos[k] = len(out)
		out = append(out, r)
	}
	return out
}

func keyOf(t schema.Table, r store.Row) string {
	parts := make([]string, len(t.PrimaryKey))
	for i, name := range t.PrimaryKey {
		col, _ := t.Column(name)
		parts[i] = keyPart(col.Type, r[name])
	}
	return strings.Join(parts, "\x00")
}

func keyPart(typ schema.ColumnType, v any) string {
	if typ == schema.Date {
		switch x := v.(type) {
		case time.Time:
			return utils.FormatDate(utils.ToDate(x))
		case datatypes.Date:
			return utils.FormatDate(utils.ToDate(time.Time(x)))
		}
	}
	if n, ok := toInt64(v); ok {
		return fmt.Sprintf("%d", n)
	}
	switch x := v.(type) {
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano)
	case datatypes.Date:
		return utils.FormatDate(x)
	}
	return fmt.Sprintf("%T:%v", v, v)
}

func toInt64(v any) (int64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint()), true
	}
	return 0, false
}

func copyRow(r store.Row) store.Row {
	c := make(store.Row, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}
