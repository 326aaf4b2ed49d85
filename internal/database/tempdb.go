package database

import (
	"context"
	"os"

	"mc-postgres-db/internal/schema"
	"mc-postgres-db/pkg/logger"

	"github.com/glebarez/sqlite"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const tempDBPragmas = "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// TempDB is a file-backed SQLite database holding the full schema. It lives
// until Close.
type TempDB struct {
	DB   *gorm.DB
	Path string

	registry *schema.Registry
	logger   *logger.Logger
}

// NewTempDB creates a fresh database file and all tables of reg. Every call
// returns an independent database.
func NewTempDB(ctx context.Context, reg *schema.Registry, log *logger.Logger) (*TempDB, error) {
	f, err := os.CreateTemp("", "mc-postgres-db-*.sqlite")
	if err != nil {
		return nil, errors.Wrap(err, "NewTempDB: CreateTemp")
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, errors.Wrap(err, "NewTempDB: Close")
	}

	db, err := gorm.Open(sqlite.Open(path+tempDBPragmas), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		_ = os.Remove(path)
		return nil, errors.Wrap(err, "NewTempDB: Open")
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	t := &TempDB{DB: db, Path: path, registry: reg, logger: log}
	if err := CreateAll(ctx, db, reg); err != nil {
		_ = t.release()
		return nil, err
	}

	log.Debug("Temporary database created", logger.StringField("path", path))
	return t, nil
}

// Close drops all tables, closes the handle and removes the file. The
// file is removed even if the drop fails.
func (t *TempDB) Close(ctx context.Context) error {
	var result error
	if err := DropAll(ctx, t.DB, t.registry); err != nil {
		result = multierror.Append(result, err)
	}
	if err := t.release(); err != nil {
		result = multierror.Append(result, err)
	}
	if result != nil {
		t.logger.Warn("Temporary database cleanup incomplete",
			logger.StringField("path", t.Path), logger.ErrorField(result))
		return result
	}
	t.logger.Debug("Temporary database removed", logger.StringField("path", t.Path))
	return nil
}

func (t *TempDB) release() error {
	var result error
	if sqlDB, err := t.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			result = multierror.Append(result, errors.Wrap(err, "TempDB: close"))
		}
	}
	if err := os.Remove(t.Path); err != nil && !os.IsNotExist(err) {
		result = multierror.Append(result, errors.Wrap(err, "TempDB: remove"))
	}
	return result
}

// WithTempDB runs fn against a fresh temporary database and cleans up
// afterwards, whether fn succeeds or not. fn's error takes precedence over
// a cleanup error.
func WithTempDB(ctx context.Context, reg *schema.Registry, log *logger.Logger, fn func(db *gorm.DB) error) (err error) {
	t, err := NewTempDB(ctx, reg, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := t.Close(ctx); err == nil {
			err = cerr
		}
	}()
	return fn(t.DB)
}
