// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package postgres implements the destination adapter writing the pipeline
// result to a PostgreSQL table, replacing its previous content.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/caarlos0/env/v11"
	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver

	"github.com/mia-platform/tetl/internal/destination/sqlwriter"
	"github.com/mia-platform/tetl/internal/table"
)

const driverName = "pgx"

// credentials holds the connection parameters. Values come from the
// configuration credentials mapping; environment variables override them so
// secrets can stay out of configuration files.
type credentials struct {
	User     string `env:"TETL_PG_USER"`
	Password string `env:"TETL_PG_PASSWORD"`
	Host     string `env:"TETL_PG_HOST"`
	Port     int    `env:"TETL_PG_PORT"`
	Database string `env:"TETL_PG_DATABASE"`
	SSLMode  string `env:"TETL_PG_SSLMODE"`
}

// Destination writes tables to PostgreSQL. The connection is opened inside
// WriteData and closed before it returns, success or failure.
type Destination struct {
	dsn       string
	tableName string

	// openDB can be overridden for testing purposes.
	openDB func(dsn string) (*sql.DB, error)
}

// NewDestination builds a postgres destination from the configured
// credentials mapping and the destination table name.
func NewDestination(credentialsMap map[string]any, tableName string) (*Destination, error) {
	parsed := credentialsFromMap(credentialsMap)
	if err := env.Parse(&parsed); err != nil {
		return nil, err
	}

	if parsed.Host == "" {
		parsed.Host = "localhost"
	}
	if parsed.Port == 0 {
		parsed.Port = 5432
	}
	if parsed.SSLMode == "" {
		parsed.SSLMode = "disable"
	}

	if parsed.User == "" || parsed.Database == "" {
		return nil, errors.New("postgres destination requires user and database credentials")
	}
	if tableName == "" {
		return nil, errors.New("postgres destination requires a destination table name")
	}

	return &Destination{
		dsn:       buildDSN(parsed),
		tableName: tableName,
		openDB: func(dsn string) (*sql.DB, error) {
			return sql.Open(driverName, dsn)
		},
	}, nil
}

// WriteData implements the destination capability.
func (d *Destination) WriteData(ctx context.Context, data *table.Table) error {
	db, err := d.openDB(d.dsn)
	if err != nil {
		return fmt.Errorf("opening postgres connection: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging postgres: %w", err)
	}

	return sqlwriter.Replace(ctx, db, d.tableName, data, sqlwriter.Dialect{
		Placeholder: func(i int) string { return "$" + strconv.Itoa(i) },
		ColumnType:  columnType,
	})
}

// credentialsFromMap reads the known credential keys from the configuration
// mapping, tolerating the numeric types a YAML or JSON decoder may produce.
func credentialsFromMap(credentialsMap map[string]any) credentials {
	parsed := credentials{
		User:     stringValue(credentialsMap, "user"),
		Password: stringValue(credentialsMap, "password"),
		Host:     stringValue(credentialsMap, "host"),
		Database: stringValue(credentialsMap, "database"),
		SSLMode:  stringValue(credentialsMap, "sslmode"),
	}

	switch port := credentialsMap["port"].(type) {
	case int:
		parsed.Port = port
	case float64:
		parsed.Port = int(port)
	case string:
		if number, err := strconv.Atoi(port); err == nil {
			parsed.Port = number
		}
	}

	return parsed
}

func stringValue(values map[string]any, key string) string {
	value, _ := values[key].(string)
	return value
}

// buildDSN constructs a key=value connection string.
func buildDSN(parsed credentials) string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s",
		parsed.Host, parsed.Port, parsed.User, parsed.Database, parsed.SSLMode)
	if parsed.Password != "" {
		dsn += " password=" + parsed.Password
	}
	return dsn
}

// columnType maps column types to PostgreSQL column types.
func columnType(t table.Type) string {
	switch t {
	case table.TypeNumber:
		return "DOUBLE PRECISION"
	case table.TypeInteger:
		return "BIGINT"
	case table.TypeBool:
		return "BOOLEAN"
	default:
		return "TEXT"
	}
}
