package schema

import (
	"fmt"
	"strings"
)

// Dialect selects the SQL flavour DDL is rendered in.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func quoteAll(idents []string) string {
	quoted := make([]string, len(idents))
	for i, id := range idents {
		quoted[i] = quote(id)
	}
	return strings.Join(quoted, ", ")
}

func (c Column) sqlType(d Dialect) string {
	switch c.Type {
	case Integer:
		if c.AutoIncrement && d == Postgres {
			return "SERIAL"
		}
		return "INTEGER"
	case Float:
		if d == Postgres {
			return "DOUBLE PRECISION"
		}
		return "REAL"
	case String:
		if c.Size > 0 {
			return fmt.Sprintf("VARCHAR(%d)", c.Size)
		}
		if d == Postgres {
			return "VARCHAR"
		}
		return "TEXT"
	case Boolean:
		return "BOOLEAN"
	case Timestamp:
		if d == Postgres {
			return "TIMESTAMP WITHOUT TIME ZONE"
		}
		return "DATETIME"
	case Date:
		return "DATE"
	default:
		panic(fmt.Sprintf("schema: column %q has unknown type %v", c.Name, c.Type))
	}
}

// CreateSQL renders the CREATE TABLE statement. The primary key is always a
// named table constraint so that upserts can address it by name.
func (t Table) CreateSQL(d Dialect) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", quote(t.Name))
	for _, c := range t.Columns {
		fmt.Fprintf(&b, "\t%s %s", quote(c.Name), c.sqlType(d))
		if !c.Nullable && !c.AutoIncrement {
			b.WriteString(" NOT NULL")
		}
		if c.Default != "" {
			b.WriteString(" DEFAULT " + c.Default)
		}
		b.WriteString(",\n")
	}
	fmt.Fprintf(&b, "\tCONSTRAINT %s PRIMARY KEY (%s)", quote(t.PrimaryKeyName()), quoteAll(t.PrimaryKey))
	for _, c := range t.Columns {
		if c.References == nil {
			continue
		}
		fmt.Fprintf(&b, ",\n\tCONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
			quote(t.Name+"_"+c.Name+"_fkey"), quote(c.Name), quote(c.References.Table), quote(c.References.Column))
	}
	b.WriteString("\n)")
	return b.String()
}

// DropSQL renders the DROP TABLE statement.
func (t Table) DropSQL(d Dialect) string {
	stmt := "DROP TABLE IF EXISTS " + quote(t.Name)
	if d == Postgres {
		stmt += " CASCADE"
	}
	return stmt
}

// CreateAllSQL renders CREATE TABLE statements in dependency order.
func (r *Registry) CreateAllSQL(d Dialect) []string {
	out := make([]string, 0, len(r.tables))
	for _, t := range r.tables {
		out = append(out, t.CreateSQL(d))
	}
	return out
}

// DropAllSQL renders DROP TABLE statements in reverse dependency order.
func (r *Registry) DropAllSQL(d Dialect) []string {
	out := make([]string, 0, len(r.tables))
	for i := len(r.tables) - 1; i >= 0; i-- {
		out = append(out, r.tables[i].DropSQL(d))
	}
	return out
}
