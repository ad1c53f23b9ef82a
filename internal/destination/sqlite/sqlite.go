// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package sqlite implements the destination adapter writing the pipeline
// result to a table inside a SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // database/sql driver

	"github.com/mia-platform/tetl/internal/destination/sqlwriter"
	"github.com/mia-platform/tetl/internal/table"
)

const driverName = "sqlite3"

// Destination writes tables to a SQLite file. The database handle is opened
// inside WriteData and closed before it returns, success or failure.
type Destination struct {
	path      string
	tableName string

	// openDB can be overridden for testing purposes.
	openDB func(path string) (*sql.DB, error)
}

// NewDestination builds a sqlite destination. The credentials mapping must
// carry the database file path under the "path" key.
func NewDestination(credentialsMap map[string]any, tableName string) (*Destination, error) {
	path, _ := credentialsMap["path"].(string)
	if path == "" {
		return nil, errors.New("sqlite destination requires a path credential")
	}
	if tableName == "" {
		return nil, errors.New("sqlite destination requires a destination table name")
	}

	return &Destination{
		path:      path,
		tableName: tableName,
		openDB: func(path string) (*sql.DB, error) {
			return sql.Open(driverName, path)
		},
	}, nil
}

// WriteData implements the destination capability.
func (d *Destination) WriteData(ctx context.Context, data *table.Table) error {
	db, err := d.openDB(d.path)
	if err != nil {
		return fmt.Errorf("opening sqlite database: %w", err)
	}
	defer db.Close()

	return sqlwriter.Replace(ctx, db, d.tableName, data, sqlwriter.Dialect{
		Placeholder: func(int) string { return "?" },
		ColumnType:  columnType,
	})
}

// columnType maps column types to SQLite column types.
func columnType(t table.Type) string {
	switch t {
	case table.TypeNumber:
		return "REAL"
	case table.TypeInteger:
		return "INTEGER"
	case table.TypeBool:
		return "BOOLEAN"
	default:
		return "TEXT"
	}
}
