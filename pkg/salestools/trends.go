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

// TrendsTool groups sales by calendar month and reports per-month
// performance plus month-over-month growth of the two most recent
// months.
type TrendsTool struct {
	store store.Store
}

// NewTrendsTool creates the trends tool.
func NewTrendsTool(st store.Store) *TrendsTool {
	return &TrendsTool{store: st}
}

func (t *TrendsTool) Name() string {
	return ToolAnalyzeTrends
}

func (t *TrendsTool) Description() string {
	return `Analyze sales trends over time.

Returns monthly order counts, revenue and average order value, plus
month-over-month growth when at least two months of data exist.`
}

func (t *TrendsTool) InputSchema() *toolbox.JSONSchema {
	return toolbox.NewObjectSchema("No parameters", map[string]*toolbox.JSONSchema{}, nil)
}

func (t *TrendsTool) Execute(ctx context.Context, _ map[string]interface{}) (*toolbox.Result, error) {
	start := time.Now()

	monthExpr := t.store.Dialect().MonthExpr("sale_date")
	query := fmt.Sprintf(`SELECT
    %s AS month,
    COUNT(*) AS orders,
    SUM(total_amount) AS revenue,
    AVG(total_amount) AS avg_order_value
FROM sales
GROUP BY %s
ORDER BY month`, monthExpr, monthExpr)

	result, err := t.store.Query(ctx, query)
	if err != nil {
		return &toolbox.Result{
			Success: false,
			Error: &toolbox.Error{
				Code:    "TRENDS_FAILED",
				Message: fmt.Sprintf("Error analyzing sales trends: %v", err),
			},
			ExecutionTimeMs: time.Since(start).Milliseconds(),
		}, nil
	}

	if result.RowCount == 0 {
		return &toolbox.Result{
			Success:         true,
			Data:            "No sales data available for trend analysis.",
			Metadata:        map[string]interface{}{"month_count": 0},
			ExecutionTimeMs: time.Since(start).Milliseconds(),
		}, nil
	}

	var b strings.Builder
	b.WriteString("Sales Trends Analysis:\n\n")
	b.WriteString("Monthly Performance:\n")

	for _, row := range result.Rows {
		month, _ := row["month"].(string)
		orders := toInt(row["orders"])
		revenue := toFloat(row["revenue"])
		avgValue := toFloat(row["avg_order_value"])
		fmt.Fprintf(&b, "  %s: %d orders, $%s revenue, $%.2f avg\n",
			month, orders, formatAmount(revenue), avgValue)
	}

	// The growth section needs two months to compare.
	if result.RowCount >= 2 {
		latest := result.Rows[result.RowCount-1]
		previous := result.Rows[result.RowCount-2]

		prevOrders := toFloat(previous["orders"])
		prevRevenue := toFloat(previous["revenue"])

		var orderGrowth, revenueGrowth float64
		if prevOrders > 0 {
			orderGrowth = (toFloat(latest["orders"]) - prevOrders) / prevOrders * 100
		}
		if prevRevenue > 0 {
			revenueGrowth = (toFloat(latest["revenue"]) - prevRevenue) / prevRevenue * 100
		}

		b.WriteString("\nMonth-over-Month Growth:\n")
		fmt.Fprintf(&b, "  Orders: %+.1f%%\n", orderGrowth)
		fmt.Fprintf(&b, "  Revenue: %+.1f%%\n", revenueGrowth)
	}

	return &toolbox.Result{
		Success:         true,
		Data:            b.String(),
		Metadata:        map[string]interface{}{"month_count": result.RowCount},
		ExecutionTimeMs: time.Since(start).Milliseconds(),
	}, nil
}

var _ toolbox.Tool = (*TrendsTool)(nil)
