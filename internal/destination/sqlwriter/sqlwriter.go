// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package sqlwriter implements the replace-then-insert write shared by the
// SQL destination adapters: drop the target table if present, recreate it
// from the table schema and insert every row, all inside one transaction.
package sqlwriter

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mia-platform/tetl/internal/table"
)

// Dialect carries the SQL differences between destination stores.
type Dialect struct {
	// Placeholder returns the parameter marker for the 1-based position i.
	Placeholder func(i int) string
	// ColumnType maps a column type to the SQL type used in CREATE TABLE.
	ColumnType func(t table.Type) string
}

// Replace writes data into tableName, replacing any existing table with the
// same name. The whole write runs in a single transaction so a failure never
// leaves a partial table behind.
func Replace(ctx context.Context, db *sql.DB, tableName string, data *table.Table, dialect Dialect) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after a successful commit

	quoted := QuoteIdentifier(tableName)
	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoted); err != nil {
		return fmt.Errorf("dropping table %s: %w", quoted, err)
	}

	if _, err := tx.ExecContext(ctx, createStatement(quoted, data, dialect)); err != nil {
		return fmt.Errorf("creating table %s: %w", quoted, err)
	}

	insert := insertStatement(quoted, data, dialect)
	names := data.ColumnNames()
	for row := range data.NumRows() {
		values := make([]any, len(names))
		rowData := data.Row(row)
		for i, name := range names {
			values[i] = rowData[name]
		}

		if _, err := tx.ExecContext(ctx, insert, values...); err != nil {
			return fmt.Errorf("inserting row %d into %s: %w", row, quoted, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing write to %s: %w", quoted, err)
	}
	return nil
}

// QuoteIdentifier quotes a SQL identifier, escaping embedded quotes.
func QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func createStatement(quotedName string, data *table.Table, dialect Dialect) string {
	definitions := make([]string, 0, data.NumColumns())
	for _, name := range data.ColumnNames() {
		column, _ := data.Column(name)
		definitions = append(definitions, QuoteIdentifier(name)+" "+dialect.ColumnType(column.Type))
	}

	return "CREATE TABLE " + quotedName + " (" + strings.Join(definitions, ", ") + ")"
}

func insertStatement(quotedName string, data *table.Table, dialect Dialect) string {
	names := data.ColumnNames()
	quotedColumns := make([]string, len(names))
	placeholders := make([]string, len(names))
	for i, name := range names {
		quotedColumns[i] = QuoteIdentifier(name)
		placeholders[i] = dialect.Placeholder(i + 1)
	}

	return "INSERT INTO " + quotedName +
		" (" + strings.Join(quotedColumns, ", ") + ") VALUES (" + strings.Join(placeholders, ", ") + ")"
}
