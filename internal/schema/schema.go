// Package schema describes the tables the write path may target: their
// ordered columns, semantic types, nullability and primary keys.
package schema

import (
	"fmt"
)

// ColumnType is the semantic type of a column, independent of dialect.
type ColumnType int

const (
	Integer ColumnType = iota + 1
	Float
	String
	Boolean
	Timestamp
	Date
)

func (t ColumnType) String() string {
	switch t {
	case Integer:
		return "integer"
	case Float:
		return "float"
	case String:
		return "string"
	case Boolean:
		return "boolean"
	case Timestamp:
		return "timestamp"
	case Date:
		return "date"
	default:
		return fmt.Sprintf("ColumnType(%d)", int(t))
	}
}

// Server-side default expressions understood by every supported dialect.
const (
	DefaultNow  = "CURRENT_TIMESTAMP"
	DefaultTrue = "TRUE"
)

// Well-known audit columns.
const (
	ColumnCreatedAt = "created_at"
	ColumnUpdatedAt = "updated_at"
	ColumnIsActive  = "is_active"
)

// ForeignKey points a column at a column of another (or the same) table.
type ForeignKey struct {
	Table  string
	Column string
}

// Column describes one column of a table.
type Column struct {
	Name          string
	Type          ColumnType
	Size          int // VARCHAR length; 0 means unbounded
	Nullable      bool
	AutoIncrement bool
	Default       string // SQL expression, empty for none
	References    *ForeignKey
	Comment       string
}

// Table is the static definition of a table.
type Table struct {
	Name       string
	Comment    string
	Columns    []Column
	PrimaryKey []string
}

// Column looks a column up by name.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnNames returns the column names in declaration order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// IsKey reports whether the column is part of the primary key.
func (t Table) IsKey(name string) bool {
	for _, k := range t.PrimaryKey {
		if k == name {
			return true
		}
	}
	return false
}

// PrimaryKeyName is the name of the primary-key constraint.
func (t Table) PrimaryKeyName() string {
	return t.Name + "_pkey"
}

// SurrogateKey returns the auto-increment key column, if the table is keyed
// by a single engine-generated id.
func (t Table) SurrogateKey() (Column, bool) {
	if len(t.PrimaryKey) != 1 {
		return Column{}, false
	}
	c, ok := t.Column(t.PrimaryKey[0])
	if !ok || !c.AutoIncrement {
		return Column{}, false
	}
	return c, true
}

// Registry is an ordered, immutable set of tables. Tables are kept in
// dependency order: a table only references tables defined before it (or
// itself).
type Registry struct {
	tables []Table
	byName map[string]int
}

// NewRegistry validates the definitions and builds a registry.
func NewRegistry(tables ...Table) (*Registry, error) {
	r := &Registry{byName: make(map[string]int, len(tables))}
	for _, t := range tables {
		if t.Name == "" {
			return nil, fmt.Errorf("table with empty name")
		}
		if _, dup := r.byName[t.Name]; dup {
			return nil, fmt.Errorf("duplicate table %q", t.Name)
		}
		if err := r.check(t); err != nil {
			return nil, err
		}
		r.byName[t.Name] = len(r.tables)
		r.tables = append(r.tables, t)
	}
	return r, nil
}

func (r *Registry) check(t Table) error {
	seen := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		if seen[c.Name] {
			return fmt.Errorf("table %q: duplicate column %q", t.Name, c.Name)
		}
		seen[c.Name] = true
	}
	if len(t.PrimaryKey) == 0 {
		return fmt.Errorf("table %q: no primary key", t.Name)
	}
	for _, k := range t.PrimaryKey {
		c, ok := t.Column(k)
		if !ok {
			return fmt.Errorf("table %q: primary key column %q is not defined", t.Name, k)
		}
		if c.Nullable {
			return fmt.Errorf("table %q: primary key column %q is nullable", t.Name, k)
		}
	}
	for _, c := range t.Columns {
		if c.AutoIncrement && (len(t.PrimaryKey) != 1 || t.PrimaryKey[0] != c.Name || c.Type != Integer) {
			return fmt.Errorf("table %q: auto-increment column %q must be the sole integer key", t.Name, c.Name)
		}
		if c.References == nil {
			continue
		}
		target := t
		if c.References.Table != t.Name {
			idx, ok := r.byName[c.References.Table]
			if !ok {
				return fmt.Errorf("table %q: column %q references unknown table %q", t.Name, c.Name, c.References.Table)
			}
			target = r.tables[idx]
		}
		if _, ok := target.Column(c.References.Column); !ok {
			return fmt.Errorf("table %q: column %q references unknown column %s.%s",
				t.Name, c.Name, c.References.Table, c.References.Column)
		}
	}
	return nil
}

// MustNewRegistry is like NewRegistry but panics on invalid definitions.
func MustNewRegistry(tables ...Table) *Registry {
	r, err := NewRegistry(tables...)
	if err != nil {
		panic(err)
	}
	return r
}

// TableNames returns the known table names in dependency order.
func (r *Registry) TableNames() []string {
	names := make([]string, len(r.tables))
	for i, t := range r.tables {
		names[i] = t.Name
	}
	return names
}

// Tables returns the table definitions in dependency order.
func (r *Registry) Tables() []Table {
	out := make([]Table, len(r.tables))
	copy(out, r.tables)
	return out
}

// Table looks a table up by name.
func (r *Registry) Table(name string) (Table, bool) {
	idx, ok := r.byName[name]
	if !ok {
		return Table{}, false
	}
	return r.tables[idx], true
}

// ColumnsOf returns the ordered columns of a table, or nil if unknown.
func (r *Registry) ColumnsOf(name string) []Column {
	t, ok := r.Table(name)
	if !ok {
		return nil
	}
	out := make([]Column, len(t.Columns))
	copy(out, t.Columns)
	return out
}

// PrimaryKeyOf returns the ordered key columns of a table, or nil if unknown.
func (r *Registry) PrimaryKeyOf(name string) []string {
	t, ok := r.Table(name)
	if !ok {
		return nil
	}
	out := make([]string, len(t.PrimaryKey))
	copy(out, t.PrimaryKey)
	return out
}
