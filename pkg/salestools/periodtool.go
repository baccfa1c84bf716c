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

	"github.com/vendalabs/salescope/pkg/period"
	"github.com/vendalabs/salescope/pkg/store"
	"github.com/vendalabs/salescope/pkg/toolbox"
)

// PeriodTool summarizes sales for a semantic period (day, week, month,
// year) using timestamp-safe predicates from the period resolver.
type PeriodTool struct {
	store store.Store
}

// NewPeriodTool creates the period summary tool.
func NewPeriodTool(st store.Store) *PeriodTool {
	return &PeriodTool{store: st}
}

func (t *PeriodTool) Name() string {
	return ToolSummarizePeriod
}

func (t *PeriodTool) Description() string {
	return `Get sales data for specific periods with timestamp-safe queries.

This tool solves the common issue of BETWEEN queries with timestamps by
using proper date truncation internally.

Examples:
- summarize_period(period_type='month', period_value='2025-02') -> February 2025 sales
- summarize_period(period_type='day', period_value='2025-02-28') -> Feb 28th sales
- summarize_period(period_type='year', period_value='2025') -> All 2025 sales
- summarize_period(period_type='week', period_value='2025-02-24') -> the week containing Feb 24th`
}

func (t *PeriodTool) InputSchema() *toolbox.JSONSchema {
	return toolbox.NewObjectSchema(
		"Parameters selecting the period to summarize",
		map[string]*toolbox.JSONSchema{
			"period_type": toolbox.NewStringSchema("Type of period").
				WithEnum("day", "week", "month", "year"),
			"period_value": toolbox.NewStringSchema(
				"Period value: 'YYYY-MM' for month, 'YYYY-MM-DD' for day or week (any day in the week), 'YYYY' for year"),
		},
		[]string{"period_type", "period_value"},
	)
}

func (t *PeriodTool) Execute(ctx context.Context, params map[string]interface{}) (*toolbox.Result, error) {
	start := time.Now()

	periodType, _ := params["period_type"].(string)
	periodValue, _ := params["period_value"].(string)
	if periodType == "" || periodValue == "" {
		return &toolbox.Result{
			Success: false,
			Error: &toolbox.Error{
				Code:       "INVALID_PARAMS",
				Message:    "period_type and period_value are required",
				Suggestion: "Pass period_type ('day', 'week', 'month' or 'year') and a matching period_value",
			},
			ExecutionTimeMs: time.Since(start).Milliseconds(),
		}, nil
	}

	pred, err := period.Resolve(t.store.Dialect(), period.Kind(periodType), periodValue)
	if err != nil {
		// Resolution failures are reported as tool text so the model can
		// fix the arguments and retry.
		return &toolbox.Result{
			Success: false,
			Error: &toolbox.Error{
				Code:       "INVALID_PERIOD",
				Message:    fmt.Sprintf("Erro: %v", err),
				Suggestion: "Use 'month', 'day', 'year' or 'week' with a value in the documented format",
			},
			ExecutionTimeMs: time.Since(start).Milliseconds(),
		}, nil
	}

	query := fmt.Sprintf(`SELECT
    COUNT(*) AS total_sales,
    SUM(quantity) AS total_items,
    SUM(total_amount) AS total_revenue,
    AVG(total_amount) AS avg_order_value,
    MIN(sale_date) AS first_sale,
    MAX(sale_date) AS last_sale
FROM sales
WHERE %s`, pred.Expr)

	result, err := t.store.Query(ctx, query, pred.Args...)
	if err != nil {
		return &toolbox.Result{
			Success: false,
			Error: &toolbox.Error{
				Code:    "PERIOD_QUERY_FAILED",
				Message: fmt.Sprintf("Erro ao buscar vendas por período: %v", err),
			},
			ExecutionTimeMs: time.Since(start).Milliseconds(),
		}, nil
	}

	if result.RowCount == 0 || toInt(result.Rows[0]["total_sales"]) == 0 {
		return &toolbox.Result{
			Success:         true,
			Data:            fmt.Sprintf("❌ Nenhuma venda encontrada para o %s.", pred.Label),
			Metadata:        map[string]interface{}{"total_sales": 0, "period": pred.Label},
			ExecutionTimeMs: time.Since(start).Milliseconds(),
		}, nil
	}

	row := result.Rows[0]
	totalSales := toInt(row["total_sales"])

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Resumo de Vendas - %s:\n\n", titleCase(pred.Label))
	fmt.Fprintf(&b, "🛒 Total de Vendas: %d\n", totalSales)
	fmt.Fprintf(&b, "📦 Itens Vendidos: %d\n", toInt(row["total_items"]))
	fmt.Fprintf(&b, "💰 Faturamento Total: R$ %s\n", formatAmount(toFloat(row["total_revenue"])))
	fmt.Fprintf(&b, "📈 Ticket Médio: R$ %s", formatAmount(toFloat(row["avg_order_value"])))

	firstDate := datePart(row["first_sale"])
	lastDate := datePart(row["last_sale"])
	if firstDate != "" && lastDate != "" {
		if firstDate == lastDate {
			fmt.Fprintf(&b, "\n📅 Data: %s", firstDate)
		} else {
			fmt.Fprintf(&b, "\n📅 Período: %s a %s", firstDate, lastDate)
		}
	}

	return &toolbox.Result{
		Success: true,
		Data:    b.String(),
		Metadata: map[string]interface{}{
			"total_sales": totalSales,
			"period":      pred.Label,
		},
		ExecutionTimeMs: time.Since(start).Milliseconds(),
	}, nil
}

// titleCase upcases the first letter of each space-separated word,
// mirroring how the period label is displayed in the summary header.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 {
			r[0] = []rune(strings.ToUpper(string(r[0])))[0]
			words[i] = string(r)
		}
	}
	return strings.Join(words, " ")
}

var _ toolbox.Tool = (*PeriodTool)(nil)
