// Package database manages table lifecycle for the market schema and
// provides throwaway SQLite databases for tests and local runs.
package database

import (
	"context"

	"mc-postgres-db/internal/schema"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Dialect reports the schema dialect of the connected engine.
func Dialect(db *gorm.DB) schema.Dialect {
	if db.Dialector.Name() == string(schema.Postgres) {
		return schema.Postgres
	}
	return schema.SQLite
}

// CreateAll creates every table in the registry, in dependency order.
func CreateAll(ctx context.Context, db *gorm.DB, reg *schema.Registry) error {
	return exec(ctx, db, reg.CreateAllSQL(Dialect(db)), "CreateAll")
}

// DropAll drops every table in the registry, in reverse dependency order.
func DropAll(ctx context.Context, db *gorm.DB, reg *schema.Registry) error {
	return exec(ctx, db, reg.DropAllSQL(Dialect(db)), "DropAll")
}

// Reset drops and recreates every table.
func Reset(ctx context.Context, db *gorm.DB, reg *schema.Registry) error {
	if err := DropAll(ctx, db, reg); err != nil {
		return err
	}
	return CreateAll(ctx, db, reg)
}

func exec(ctx context.Context, db *gorm.DB, stmts []string, op string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, stmt := range stmts {
			if err := tx.Exec(stmt).Error; err != nil {
				return errors.Wrapf(err, "%s: %s", op, firstLine(stmt))
			}
		}
		return nil
	})
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
