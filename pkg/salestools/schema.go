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
	"fmt"
	"strings"
	"time"

	"github.com/vendalabs/salescope/pkg/store"
	"github.com/vendalabs/salescope/pkg/toolbox"
)

// SchemaTool enumerates tables, columns and row counts, and appends
// operational guidance about timestamp-safe date filtering for the
// calling model.
type SchemaTool struct {
	store store.Store
}

// NewSchemaTool creates the schema introspection tool.
func NewSchemaTool(st store.Store) *SchemaTool {
	return &SchemaTool{store: st}
}

func (t *SchemaTool) Name() string {
	return ToolDescribeSchema
}

func (t *SchemaTool) Description() string {
	return `Get the database schema information (table structure).

Returns table names, columns with types and constraints, per-table row
counts, and guidance on writing timestamp-safe date filters.`
}

func (t *SchemaTool) InputSchema() *toolbox.JSONSchema {
	return toolbox.NewObjectSchema("No parameters", map[string]*toolbox.JSONSchema{}, nil)
}

func (t *SchemaTool) Execute(ctx context.Context, _ map[string]interface{}) (*toolbox.Result, error) {
	start := time.Now()

	tables, err := t.store.DescribeTables(ctx)
	if err != nil {
		return &toolbox.Result{
			Success: false,
			Error: &toolbox.Error{
				Code:    "SCHEMA_FAILED",
				Message: fmt.Sprintf("Error getting database schema: %v", err),
			},
			ExecutionTimeMs: time.Since(start).Milliseconds(),
		}, nil
	}

	var b strings.Builder
	b.WriteString("Database Schema:\n\n")

	for _, table := range tables {
		fmt.Fprintf(&b, "Table: %s\n", table.Name)
		for _, col := range table.Columns {
			fmt.Fprintf(&b, "  - %s: %s", col.Name, col.Type)
			if col.PrimaryKey {
				b.WriteString(" (PRIMARY KEY)")
			}
			if col.NotNull {
				b.WriteString(" NOT NULL")
			}
			if col.Default != "" {
				fmt.Fprintf(&b, " DEFAULT %s", col.Default)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Table row counts:\n")
	for _, table := range tables {
		fmt.Fprintf(&b, "  - %s: %d rows\n", table.Name, table.RowCount)
	}

	b.WriteString(t.dateGuidance())

	return &toolbox.Result{
		Success:         true,
		Data:            b.String(),
		Metadata:        map[string]interface{}{"table_count": len(tables)},
		ExecutionTimeMs: time.Since(start).Milliseconds(),
	}, nil
}

// dateGuidance is static operational knowledge embedded for the
// calling model: the sale_date column holds full timestamps, so
// lexical BETWEEN comparisons against date-only strings lose the last
// day's late sales.
func (t *SchemaTool) dateGuidance() string {
	d := t.store.Dialect()
	monthExpr := d.MonthExpr("sale_date")
	dayExpr := d.DayExpr("sale_date")

	return fmt.Sprintf(`
⚠️ IMPORTANTE - CONSULTAS DE DATA:
- A coluna 'sale_date' contém TIMESTAMPS completos (YYYY-MM-DD HH:MM:SS)
- Para consultas por período, use funções de truncamento de data:
  * %s para filtrar por mês
  * %s para filtrar por dia
  * EVITE usar BETWEEN com strings de data!

EXEMPLOS SEGUROS:
✅ SELECT * FROM sales WHERE %s = '2025-02'
✅ SELECT * FROM sales WHERE %s = '2025-02-28'
❌ SELECT * FROM sales WHERE sale_date BETWEEN '2025-02-01' AND '2025-02-28'
`, monthExpr, dayExpr, monthExpr, dayExpr)
}

var _ toolbox.Tool = (*SchemaTool)(nil)
