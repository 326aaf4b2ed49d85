// Package store implements the validated write path (SetData) over the
// market schema.
package store

import (
	"context"
	"errors"
	"fmt"
)

// Mode selects how a batch is written.
type Mode string

const (
	// ModeInsert writes rows, fully replacing any stored row with the same key.
	ModeInsert Mode = "insert"
	// ModeAppend writes rows unconditionally.
	ModeAppend Mode = "append"
	// ModeUpsert writes rows, updating only the supplied columns on key conflict.
	ModeUpsert Mode = "upsert"
)

// Valid reports whether m is one of the recognised modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeInsert, ModeAppend, ModeUpsert:
		return true
	}
	return false
}

// ParseMode converts a string into a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidOperation, s)
	}
	return m, nil
}

var (
	ErrInvalidOperation = errors.New("invalid operation")
	ErrUnknownTable     = errors.New("unknown table")
	ErrSchemaMismatch   = errors.New("schema mismatch")
	ErrTypeMismatch     = errors.New("type mismatch")
)

// Row is one record, keyed by column name.
type Row map[string]any

// Writer applies a batch of rows to a table.
type Writer interface {
	SetData(ctx context.Context, table string, rows []Row, mode Mode) error
}
