// Copyright 2026 Vendalabs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package store provides the read-only relational store abstraction the
// query tools run against. Implementations exist for SQLite (the
// default, pure-Go driver) and Postgres.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Dialect identifies the SQL dialect of a store. The period resolver
// and the trend analysis need dialect-specific truncation expressions;
// everything else is portable SQL.
type Dialect string

const (
	// SQLite is the modernc.org/sqlite-backed store.
	SQLite Dialect = "sqlite"

	// Postgres is the lib/pq-backed store.
	Postgres Dialect = "postgres"
)

// Placeholder returns the bind-parameter placeholder for the n-th
// (1-based) argument in this dialect.
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// MonthExpr returns an expression truncating a timestamp column to its
// calendar month, formatted "YYYY-MM".
func (d Dialect) MonthExpr(col string) string {
	if d == Postgres {
		return fmt.Sprintf("to_char(%s, 'YYYY-MM')", col)
	}
	return fmt.Sprintf("strftime('%%Y-%%m', %s)", col)
}

// DayExpr returns an expression truncating a timestamp column to its
// calendar day, formatted "YYYY-MM-DD".
func (d Dialect) DayExpr(col string) string {
	if d == Postgres {
		return fmt.Sprintf("to_char(%s, 'YYYY-MM-DD')", col)
	}
	return fmt.Sprintf("date(%s)", col)
}

// YearExpr returns an expression truncating a timestamp column to its
// calendar year, formatted "YYYY".
func (d Dialect) YearExpr(col string) string {
	if d == Postgres {
		return fmt.Sprintf("to_char(%s, 'YYYY')", col)
	}
	return fmt.Sprintf("strftime('%%Y', %s)", col)
}

// Column describes one column of a table.
type Column struct {
	Name       string
	Type       string
	PrimaryKey bool
	NotNull    bool
	Default    string
}

// TableSchema describes one table: its columns and current row count.
type TableSchema struct {
	Name     string
	Columns  []Column
	RowCount int64
}

// QueryResult is a fully materialized result set: an ordered sequence
// of row mappings (column name to value). No streaming.
type QueryResult struct {
	Columns  []string
	Rows     []map[string]interface{}
	RowCount int
}

// Store is the read-only query surface the tools are built on.
type Store interface {
	// Dialect returns the SQL dialect of the underlying database.
	Dialect() Dialect

	// Query executes a statement with bound parameters and returns the
	// fully materialized result.
	Query(ctx context.Context, query string, args ...interface{}) (*QueryResult, error)

	// DescribeTables enumerates user tables with columns and row counts.
	DescribeTables(ctx context.Context) ([]TableSchema, error)

	// Ping checks connectivity.
	Ping(ctx context.Context) error

	// Close releases the underlying connection pool.
	Close() error
}

// queryRows runs a query against db and scans every row into a
// column-name → value map, normalizing []byte values to string so the
// tools can format them directly.
func queryRows(ctx context.Context, db *sql.DB, query string, args ...interface{}) (*QueryResult, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	result := &QueryResult{Columns: cols}
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(map[string]interface{}, len(cols))
		for i, col := range cols {
			row[col] = normalize(values[i])
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result.RowCount = len(result.Rows)
	return result, nil
}

func normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case time.Time:
		return val.Format("2006-01-02 15:04:05")
	default:
		return v
	}
}
