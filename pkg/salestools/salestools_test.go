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
package salestools

import (
	"context"
	"strings"
	"testing"

	"github.com/vendalabs/salescope/pkg/store"
)

type seedRow struct {
	quantity int
	total    float64
	date     string
}

func newTestStore(t *testing.T, sales []seedRow) *store.SQLiteStore {
	t.Helper()

	st, err := store.OpenSQLite(":memory:")
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
		`CREATE TABLE customers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL
		)`,
		`CREATE TABLE sales (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			product_id INTEGER,
			customer_id INTEGER,
			quantity INTEGER NOT NULL,
			total_amount NUMERIC(10, 2) NOT NULL,
			sale_date TIMESTAMP NOT NULL
		)`,
		`INSERT INTO products (sku, name, category, price) VALUES ('SKU001', 'Product A', 'Category 1', 10.00)`,
		`INSERT INTO customers (name, email) VALUES ('John Doe', 'john@example.com')`,
	}
	for _, stmt := range stmts {
		if _, err := st.DB().Exec(stmt); err != nil {
			t.Fatalf("setup statement failed: %v", err)
		}
	}

	for _, s := range sales {
		if _, err := st.DB().Exec(
			"INSERT INTO sales (product_id, customer_id, quantity, total_amount, sale_date) VALUES (1, 1, ?, ?, ?)",
			s.quantity, s.total, s.date); err != nil {
			t.Fatalf("failed to insert sale: %v", err)
		}
	}
	return st
}

func TestQueryToolRejectsDestructiveSQL(t *testing.T) {
	st := newTestStore(t, nil)
	tool := NewQueryTool(st)
	ctx := context.Background()

	result, err := tool.Execute(ctx, map[string]interface{}{
		"query": "DELETE FROM sales",
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if result.Success {
		t.Fatal("destructive statement was not rejected")
	}
	if result.Error.Code != "UNSAFE_QUERY" {
		t.Errorf("error code = %s, want UNSAFE_QUERY", result.Error.Code)
	}

	// The database must remain untouched even for a rejected statement.
	check, err := st.Query(ctx, "SELECT COUNT(*) AS n FROM products")
	if err != nil {
		t.Fatalf("verification query failed: %v", err)
	}
	if check.Rows[0]["n"] != int64(1) {
		t.Error("store was modified by a rejected statement")
	}
}

func TestQueryToolEmptyResult(t *testing.T) {
	st := newTestStore(t, nil)
	tool := NewQueryTool(st)

	result, err := tool.Execute(context.Background(), map[string]interface{}{
		"query": "SELECT * FROM sales",
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %v", result.Error)
	}
	if result.Data != "Query executed successfully but returned no results." {
		t.Errorf("unexpected empty-result text: %v", result.Data)
	}
}

func TestQueryToolReturnsRows(t *testing.T) {
	st := newTestStore(t, []seedRow{{2, 20.00, "2025-02-01 10:00:00"}})
	tool := NewQueryTool(st)

	result, err := tool.Execute(context.Background(), map[string]interface{}{
		"query": "SELECT quantity, total_amount FROM sales",
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %v", result.Error)
	}

	text := result.Text()
	if !strings.Contains(text, "Query results (1 rows):") {
		t.Errorf("missing row count header: %s", text)
	}
	if !strings.Contains(text, "quantity") {
		t.Errorf("missing column data: %s", text)
	}
}

func TestSchemaToolListsTablesAndGuidance(t *testing.T) {
	st := newTestStore(t, nil)
	tool := NewSchemaTool(st)

	result, err := tool.Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %v", result.Error)
	}

	text := result.Text()
	for _, want := range []string{
		"Table: products",
		"Table: customers",
		"Table: sales",
		"PRIMARY KEY",
		"strftime('%Y-%m', sale_date)",
		"EVITE usar BETWEEN",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("schema output missing %q", want)
		}
	}
}

func TestStatisticsToolEmptyDatabase(t *testing.T) {
	st := newTestStore(t, nil)
	tool := NewStatisticsTool(st)

	result, err := tool.Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %v", result.Error)
	}

	text := result.Text()
	if !strings.Contains(text, "📊 Total Orders: 0") {
		t.Errorf("expected zero orders: %s", text)
	}
	if !strings.Contains(text, "📈 Average Order Value: $0.00") {
		t.Errorf("empty database should report 0 average, got: %s", text)
	}
	if !strings.Contains(text, "📅 Date Range: No sales data") {
		t.Errorf("expected no-data range, got: %s", text)
	}
}

func TestStatisticsToolAggregates(t *testing.T) {
	st := newTestStore(t, []seedRow{
		{2, 100.00, "2025-01-10 10:00:00"},
		{3, 200.00, "2025-02-20 15:30:00"},
	})
	tool := NewStatisticsTool(st)

	result, err := tool.Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	text := result.Text()
	for _, want := range []string{
		"📊 Total Orders: 2",
		"💰 Total Revenue: $300.00",
		"📈 Average Order Value: $150.00",
		"📦 Total Products: 1",
		"👥 Total Customers: 1",
		"2025-01-10 10:00:00 to 2025-02-20 15:30:00",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("statistics output missing %q in:\n%s", want, text)
		}
	}
}

func TestTrendsToolEmpty(t *testing.T) {
	st := newTestStore(t, nil)
	tool := NewTrendsTool(st)

	result, err := tool.Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if result.Text() != "No sales data available for trend analysis." {
		t.Errorf("unexpected empty-data text: %s", result.Text())
	}
}

func TestTrendsToolGrowth(t *testing.T) {
	// January: 10 orders, $100 total. February: 15 orders, $200 total.
	// Growth: orders +50.0%, revenue +100.0%.
	var rows []seedRow
	for i := 0; i < 10; i++ {
		rows = append(rows, seedRow{1, 10.00, "2025-01-15 12:00:00"})
	}
	for i := 0; i < 14; i++ {
		rows = append(rows, seedRow{1, 13.00, "2025-02-10 12:00:00"})
	}
	rows = append(rows, seedRow{1, 18.00, "2025-02-20 12:00:00"})
	st := newTestStore(t, rows)
	tool := NewTrendsTool(st)

	result, err := tool.Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	text := result.Text()
	for _, want := range []string{
		"Monthly Performance:",
		"2025-01: 10 orders, $100.00 revenue, $10.00 avg",
		"2025-02: 15 orders, $200.00 revenue",
		"Month-over-Month Growth:",
		"Orders: +50.0%",
		"Revenue: +100.0%",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("trends output missing %q in:\n%s", want, text)
		}
	}
}

func TestTrendsToolSingleMonthOmitsGrowth(t *testing.T) {
	st := newTestStore(t, []seedRow{{1, 50.00, "2025-01-15 12:00:00"}})
	tool := NewTrendsTool(st)

	result, err := tool.Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if strings.Contains(result.Text(), "Month-over-Month Growth") {
		t.Error("growth section should be omitted with a single month")
	}
}

func TestPeriodToolDayIncludesLateSales(t *testing.T) {
	// A sale at one second before midnight must count for its day.
	st := newTestStore(t, []seedRow{
		{3, 90.00, "2025-02-28 23:59:59"},
		{1, 10.00, "2025-03-01 00:00:01"},
	})
	tool := NewPeriodTool(st)

	result, err := tool.Execute(context.Background(), map[string]interface{}{
		"period_type":  "day",
		"period_value": "2025-02-28",
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %v", result.Error)
	}

	text := result.Text()
	for _, want := range []string{
		"🛒 Total de Vendas: 1",
		"📦 Itens Vendidos: 3",
		"💰 Faturamento Total: R$ 90.00",
		"📅 Data: 2025-02-28",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("period output missing %q in:\n%s", want, text)
		}
	}
}

func TestPeriodToolMonth(t *testing.T) {
	st := newTestStore(t, []seedRow{
		{2, 50.00, "2025-02-01 09:00:00"},
		{4, 150.00, "2025-02-28 23:59:59"},
		{1, 10.00, "2025-03-01 00:00:01"},
	})
	tool := NewPeriodTool(st)

	result, err := tool.Execute(context.Background(), map[string]interface{}{
		"period_type":  "month",
		"period_value": "2025-02",
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	text := result.Text()
	for _, want := range []string{
		"📊 Resumo de Vendas - Mês 2025-02:",
		"🛒 Total de Vendas: 2",
		"📦 Itens Vendidos: 6",
		"💰 Faturamento Total: R$ 200.00",
		"📈 Ticket Médio: R$ 100.00",
		"📅 Período: 2025-02-01 a 2025-02-28",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("period output missing %q in:\n%s", want, text)
		}
	}
}

func TestPeriodToolWeek(t *testing.T) {
	// Week of Monday 2025-02-24 .. Sunday 2025-03-02.
	st := newTestStore(t, []seedRow{
		{1, 10.00, "2025-02-24 08:00:00"},
		{1, 20.00, "2025-03-02 22:00:00"},
		{1, 30.00, "2025-03-03 09:00:00"},
	})
	tool := NewPeriodTool(st)

	result, err := tool.Execute(context.Background(), map[string]interface{}{
		"period_type":  "week",
		"period_value": "2025-02-26",
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !strings.Contains(result.Text(), "🛒 Total de Vendas: 2") {
		t.Errorf("week should span Monday through Sunday:\n%s", result.Text())
	}
}

func TestPeriodToolNoSales(t *testing.T) {
	st := newTestStore(t, nil)
	tool := NewPeriodTool(st)

	result, err := tool.Execute(context.Background(), map[string]interface{}{
		"period_type":  "month",
		"period_value": "2025-06",
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !result.Success {
		t.Fatalf("no sales is not a failure, got %v", result.Error)
	}
	if result.Text() != "❌ Nenhuma venda encontrada para o mês 2025-06." {
		t.Errorf("unexpected no-sales text: %s", result.Text())
	}
}

func TestPeriodToolInvalidArguments(t *testing.T) {
	st := newTestStore(t, nil)
	tool := NewPeriodTool(st)
	ctx := context.Background()

	cases := []map[string]interface{}{
		{"period_type": "quarter", "period_value": "2025-Q1"},
		{"period_type": "month", "period_value": "fevereiro"},
		{"period_type": "month"},
		{},
	}

	for _, params := range cases {
		result, err := tool.Execute(ctx, params)
		if err != nil {
			t.Fatalf("Execute returned error: %v", err)
		}
		if result.Success {
			t.Errorf("params %v should fail validation", params)
		}
	}
}

func TestProviderRegistersFiveTools(t *testing.T) {
	st := newTestStore(t, nil)
	provider := NewProvider(st)

	tools := provider.Tools()
	if len(tools) != 5 {
		t.Fatalf("expected 5 tools, got %d", len(tools))
	}

	names := make(map[string]bool)
	for _, tool := range tools {
		names[tool.Name()] = true
	}
	for _, want := range []string{
		ToolExecuteQuery, ToolDescribeSchema, ToolComputeStatistics,
		ToolAnalyzeTrends, ToolSummarizePeriod,
	} {
		if !names[want] {
			t.Errorf("missing tool %s", want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{10.5, "10.50"},
		{1234.5, "1,234.50"},
		{1234567.891, "1,234,567.89"},
		{-1234.5, "-1,234.50"},
	}

	for _, tt := range tests {
		if got := formatAmount(tt.in); got != tt.want {
			t.Errorf("formatAmount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
