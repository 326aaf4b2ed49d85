package store

import (
	"context"
	"strings"

	"mc-postgres-db/internal/schema"
	"mc-postgres-db/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var writeMessages = map[Mode]string{
	ModeInsert: "Inserting rows",
	ModeAppend: "Appending rows",
	ModeUpsert: "Upserting rows",
}

// DBStore writes batches through gorm to a relational engine.
type DBStore struct {
	db       *gorm.DB
	registry *schema.Registry
	logger   *logger.Logger
}

// NewDBStore creates a DBStore. The handle is used as-is for every call;
// timeouts come from the context passed to SetData.
func NewDBStore(db *gorm.DB, registry *schema.Registry, logger *logger.Logger) *DBStore {
	return &DBStore{db: db, registry: registry, logger: logger}
}

// SetData validates the batch and writes it with the given mode. Validation
// errors are returned before anything reaches the engine; engine errors are
// returned unchanged.
func (s *DBStore) SetData(ctx context.Context, table string, rows []Row, mode Mode) error {
	t, err := Resolve(s.registry, table, mode)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		s.logger.Info("No rows to write, skipping",
			logger.StringField("table", t.Name),
			logger.StringField("mode", string(mode)))
		return nil
	}
	if err := CheckColumns(t, rows); err != nil {
		return err
	}

	s.logger.Info(writeMessages[mode],
		logger.IntField("count", len(rows)),
		logger.StringField("table", t.Name),
		logger.StringField("mode", string(mode)))

	groups := groupByColumns(t, rows)
	db := s.db.WithContext(ctx)
	if len(groups) == 1 {
		return s.write(db, t, mode, groups[0])
	}

	// Rows with different column sets need separate statements, otherwise
	// the missing cells would be written as NULL.
	return db.Transaction(func(tx *gorm.DB) error {
		for _, g := range groups {
			if err := s.write(tx, t, mode, g); err != nil {
				return err
			}
		}
		return nil
	})
}

type rowGroup struct {
	columns []string
	values  []map[string]interface{}
}

func groupByColumns(t schema.Table, rows []Row) []rowGroup {
	var groups []rowGroup
	index := make(map[string]int)
	for _, row := range rows {
		cols := make([]string, 0, len(row))
		for _, c := range t.Columns {
			if _, ok := row[c.Name]; ok {
				cols = append(cols, c.Name)
			}
		}
		sig := strings.Join(cols, ",")
		i, ok := index[sig]
		if !ok {
			i = len(groups)
			index[sig] = i
			groups = append(groups, rowGroup{columns: cols})
		}
		values := make(map[string]interface{}, len(row))
		for k, v := range row {
			values[k] = v
		}
		groups[i].values = append(groups[i].values, values)
	}
	return groups
}

func (s *DBStore) write(tx *gorm.DB, t schema.Table, mode Mode, g rowGroup) error {
	tx = tx.Table(t.Name)
	switch mode {
	case ModeInsert:
		tx = tx.Clauses(s.onConflict(t, replaceAssignments(t, g.columns)))
	case ModeUpsert:
		tx = tx.Clauses(s.onConflict(t, mergeAssignments(t, g.columns)))
	}
	return tx.Create(g.values).Error
}

// onConflict targets the primary key: by constraint name on Postgres, by
// key columns elsewhere.
func (s *DBStore) onConflict(t schema.Table, set clause.Set) clause.OnConflict {
	oc := clause.OnConflict{DoUpdates: set, DoNothing: len(set) == 0}
	if schema.Dialect(s.db.Dialector.Name()) == schema.Postgres {
		oc.OnConstraint = t.PrimaryKeyName()
		return oc
	}
	for _, k := range t.PrimaryKey {
		oc.Columns = append(oc.Columns, clause.Column{Name: k})
	}
	return oc
}

func excluded(name string) clause.Assignment {
	return clause.Assignment{
		Column: clause.Column{Name: name},
		Value:  clause.Column{Table: "excluded", Name: name},
	}
}

func expr(name, sql string) clause.Assignment {
	return clause.Assignment{Column: clause.Column{Name: name}, Value: gorm.Expr(sql)}
}

func mutable(t schema.Table, c schema.Column) bool {
	return !t.IsKey(c.Name) && c.Name != schema.ColumnCreatedAt
}

// mergeAssignments updates only the supplied columns. updated_at is
// refreshed unless the caller set it.
func mergeAssignments(t schema.Table, columns []string) clause.Set {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	var set clause.Set
	for _, c := range t.Columns {
		if mutable(t, c) && present[c.Name] {
			set = append(set, excluded(c.Name))
		}
	}
	if _, ok := t.Column(schema.ColumnUpdatedAt); ok && len(set) > 0 && !present[schema.ColumnUpdatedAt] {
		set = append(set, expr(schema.ColumnUpdatedAt, schema.DefaultNow))
	}
	return set
}

// replaceAssignments overwrites every non-key column: supplied columns take
// the incoming value, the rest fall back to their default or NULL.
func replaceAssignments(t schema.Table, columns []string) clause.Set {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	var set clause.Set
	for _, c := range t.Columns {
		if !mutable(t, c) {
			continue
		}
		switch {
		case present[c.Name]:
			set = append(set, excluded(c.Name))
		case c.Default != "":
			set = append(set, expr(c.Name, c.Default))
		default:
			set = append(set, expr(c.Name, "NULL"))
		}
	}
	return set
}
