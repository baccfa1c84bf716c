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

// StatisticsTool computes whole-database aggregate metrics.
type StatisticsTool struct {
	store store.Store
}

// NewStatisticsTool creates the statistics tool.
func NewStatisticsTool(st store.Store) *StatisticsTool {
	return &StatisticsTool{store: st}
}

func (t *StatisticsTool) Name() string {
	return ToolComputeStatistics
}

func (t *StatisticsTool) Description() string {
	return `Get general sales statistics from the database.

Returns total orders, total revenue, average order value, product and
customer counts, and the overall date range of recorded sales.`
}

func (t *StatisticsTool) InputSchema() *toolbox.JSONSchema {
	return toolbox.NewObjectSchema("No parameters", map[string]*toolbox.JSONSchema{}, nil)
}

func (t *StatisticsTool) Execute(ctx context.Context, _ map[string]interface{}) (*toolbox.Result, error) {
	start := time.Now()

	fail := func(err error) (*toolbox.Result, error) {
		return &toolbox.Result{
			Success: false,
			Error: &toolbox.Error{
				Code:    "STATS_FAILED",
				Message: fmt.Sprintf("Error getting sales statistics: %v", err),
			},
			ExecutionTimeMs: time.Since(start).Milliseconds(),
		}, nil
	}

	orders, err := t.scalar(ctx, "SELECT COUNT(*) AS total FROM sales")
	if err != nil {
		return fail(err)
	}
	totalOrders := toInt(orders)

	revenue, err := t.scalar(ctx, "SELECT SUM(total_amount) AS revenue FROM sales")
	if err != nil {
		return fail(err)
	}
	totalRevenue := toFloat(revenue)

	// Guard the division so an empty database reports 0 instead of
	// failing or producing NaN.
	var avgOrder float64
	if totalOrders > 0 {
		avgOrder = totalRevenue / float64(totalOrders)
	}

	products, err := t.scalar(ctx, "SELECT COUNT(*) AS count FROM products")
	if err != nil {
		return fail(err)
	}

	customers, err := t.scalar(ctx, "SELECT COUNT(*) AS count FROM customers")
	if err != nil {
		return fail(err)
	}

	dateRange := "No sales data"
	rangeResult, err := t.store.Query(ctx, "SELECT MIN(sale_date) AS min_date, MAX(sale_date) AS max_date FROM sales")
	if err != nil {
		return fail(err)
	}
	if rangeResult.RowCount > 0 && rangeResult.Rows[0]["min_date"] != nil {
		dateRange = fmt.Sprintf("%v to %v", rangeResult.Rows[0]["min_date"], rangeResult.Rows[0]["max_date"])
	}

	var b strings.Builder
	b.WriteString("Sales Database Statistics:\n\n")
	fmt.Fprintf(&b, "📊 Total Orders: %d\n", totalOrders)
	fmt.Fprintf(&b, "💰 Total Revenue: $%s\n", formatAmount(totalRevenue))
	fmt.Fprintf(&b, "📈 Average Order Value: $%s\n", formatAmount(avgOrder))
	fmt.Fprintf(&b, "📦 Total Products: %d\n", toInt(products))
	fmt.Fprintf(&b, "👥 Total Customers: %d\n", toInt(customers))
	fmt.Fprintf(&b, "📅 Date Range: %s\n", dateRange)

	return &toolbox.Result{
		Success: true,
		Data:    b.String(),
		Metadata: map[string]interface{}{
			"total_orders":  totalOrders,
			"total_revenue": totalRevenue,
		},
		ExecutionTimeMs: time.Since(start).Milliseconds(),
	}, nil
}

// scalar runs a single-row single-column aggregate and returns the raw
// driver value.
func (t *StatisticsTool) scalar(ctx context.Context, query string) (interface{}, error) {
	result, err := t.store.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	if result.RowCount == 0 {
		return nil, nil
	}
	for _, v := range result.Rows[0] {
		return v, nil
	}
	return nil, nil
}

var _ toolbox.Tool = (*StatisticsTool)(nil)
