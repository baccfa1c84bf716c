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
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/vendalabs/salescope/internal/sqlitedriver"
)

// SQLiteStore implements Store over a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the SQLite database at path.
// Use ":memory:" for an in-process throwaway database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	// modernc.org/sqlite serializes access per connection; a single
	// connection avoids table-lock errors under concurrent tool calls.
	db.SetMaxOpenConns(1)
	return &SQLiteStore{db: db}, nil
}

// Dialect returns SQLite.
func (s *SQLiteStore) Dialect() Dialect {
	return SQLite
}

// DB exposes the underlying handle for one-off administrative work
// such as seeding a demo dataset.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Query executes a statement with bound parameters.
func (s *SQLiteStore) Query(ctx context.Context, query string, args ...interface{}) (*QueryResult, error) {
	return queryRows(ctx, s.db, query, args...)
}

// DescribeTables enumerates user tables via sqlite_master and
// PRAGMA table_info. PRAGMA does not accept bound parameters; the
// table names it is fed come from sqlite_master, not from user input.
func (s *SQLiteStore) DescribeTables(ctx context.Context) ([]TableSchema, error) {
	names, err := s.Query(ctx,
		"SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	var tables []TableSchema
	for _, row := range names.Rows {
		name, _ := row["name"].(string)
		if name == "" {
			continue
		}

		table := TableSchema{Name: name}

		cols, err := s.Query(ctx, fmt.Sprintf("PRAGMA table_info(%s)", name))
		if err != nil {
			return nil, fmt.Errorf("failed to describe table %s: %w", name, err)
		}
		for _, c := range cols.Rows {
			col := Column{
				Name:       asString(c["name"]),
				Type:       asString(c["type"]),
				PrimaryKey: asInt64(c["pk"]) > 0,
				NotNull:    asInt64(c["notnull"]) > 0,
				Default:    asString(c["dflt_value"]),
			}
			table.Columns = append(table.Columns, col)
		}

		count, err := s.Query(ctx, fmt.Sprintf("SELECT COUNT(*) AS count FROM %s", name))
		if err != nil {
			return nil, fmt.Errorf("failed to count rows of %s: %w", name, err)
		}
		if count.RowCount > 0 {
			table.RowCount = asInt64(count.Rows[0]["count"])
		}

		tables = append(tables, table)
	}
	return tables, nil
}

// Ping checks connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the connection pool.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func asString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

var _ Store = (*SQLiteStore)(nil)
