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
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	st, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	stmts := []string{
		`CREATE TABLE products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sku VARCHAR(50) UNIQUE NOT NULL,
			name VARCHAR(255) NOT NULL,
			category VARCHAR(100),
			price NUMERIC(10, 2)
		)`,
		`CREATE TABLE sales (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			product_id INTEGER,
			quantity INTEGER NOT NULL,
			total_amount NUMERIC(10, 2) NOT NULL,
			sale_date TIMESTAMP NOT NULL
		)`,
		`INSERT INTO products (sku, name, category, price) VALUES ('SKU001', 'Product A', 'Category 1', 10.99)`,
		`INSERT INTO sales (product_id, quantity, total_amount, sale_date) VALUES (1, 2, 21.98, '2025-02-28 23:59:59')`,
		`INSERT INTO sales (product_id, quantity, total_amount, sale_date) VALUES (1, 1, 10.99, '2025-03-01 00:00:01')`,
	}
	for _, stmt := range stmts {
		if _, err := st.DB().Exec(stmt); err != nil {
			t.Fatalf("setup statement failed: %v", err)
		}
	}
	return st
}

func TestSQLiteQuery(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	result, err := st.Query(ctx, "SELECT name, price FROM products")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if result.RowCount != 1 {
		t.Fatalf("expected 1 row, got %d", result.RowCount)
	}
	if result.Rows[0]["name"] != "Product A" {
		t.Errorf("unexpected name: %v", result.Rows[0]["name"])
	}
}

func TestSQLiteQueryWithParams(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	result, err := st.Query(ctx,
		"SELECT COUNT(*) AS n FROM sales WHERE date(sale_date) = ?", "2025-02-28")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if got := result.Rows[0]["n"]; got != int64(1) {
		t.Errorf("expected 1 sale on 2025-02-28, got %v", got)
	}
}

func TestSQLiteMonthTruncationKeepsLateSales(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	// The 23:59:59 sale belongs to February; lexical BETWEEN against
	// '2025-02-28' would drop it.
	result, err := st.Query(ctx,
		"SELECT COUNT(*) AS n FROM sales WHERE strftime('%Y-%m', sale_date) = ?", "2025-02")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if got := result.Rows[0]["n"]; got != int64(1) {
		t.Errorf("expected 1 February sale, got %v", got)
	}
}

func TestSQLiteDescribeTables(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	tables, err := st.DescribeTables(ctx)
	if err != nil {
		t.Fatalf("DescribeTables failed: %v", err)
	}

	byName := make(map[string]TableSchema)
	for _, tbl := range tables {
		byName[tbl.Name] = tbl
	}

	products, ok := byName["products"]
	if !ok {
		t.Fatal("products table missing from schema")
	}
	if products.RowCount != 1 {
		t.Errorf("products row count = %d, want 1", products.RowCount)
	}

	var foundPK bool
	for _, col := range products.Columns {
		if col.Name == "id" && col.PrimaryKey {
			foundPK = true
		}
	}
	if !foundPK {
		t.Error("products.id not reported as primary key")
	}

	sales, ok := byName["sales"]
	if !ok {
		t.Fatal("sales table missing from schema")
	}
	if sales.RowCount != 2 {
		t.Errorf("sales row count = %d, want 2", sales.RowCount)
	}
}

func TestDialectExpressions(t *testing.T) {
	if got := SQLite.MonthExpr("sale_date"); got != "strftime('%Y-%m', sale_date)" {
		t.Errorf("sqlite month expr = %s", got)
	}
	if got := Postgres.MonthExpr("sale_date"); got != "to_char(sale_date, 'YYYY-MM')" {
		t.Errorf("postgres month expr = %s", got)
	}
	if got := SQLite.Placeholder(3); got != "?" {
		t.Errorf("sqlite placeholder = %s", got)
	}
	if got := Postgres.Placeholder(3); got != "$3" {
		t.Errorf("postgres placeholder = %s", got)
	}
}
