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
	"encoding/json"
	"fmt"
	"time"

	"github.com/vendalabs/salescope/pkg/guard"
	"github.com/vendalabs/salescope/pkg/store"
	"github.com/vendalabs/salescope/pkg/toolbox"
)

// QueryTool executes a caller-provided SELECT statement after it
// passes the SQL safety validator.
type QueryTool struct {
	store store.Store
}

// NewQueryTool creates the raw-query tool.
func NewQueryTool(st store.Store) *QueryTool {
	return &QueryTool{store: st}
}

func (t *QueryTool) Name() string {
	return ToolExecuteQuery
}

func (t *QueryTool) Description() string {
	return `Execute a SQL SELECT query on the sales database.

IMPORTANT: Only SELECT queries are allowed for security.

Example queries:
- "SELECT * FROM products LIMIT 5"
- "SELECT SUM(total_amount) AS total_revenue FROM sales"
- "SELECT p.name, SUM(s.quantity) AS units_sold FROM sales s JOIN products p ON s.product_id = p.id GROUP BY p.id ORDER BY units_sold DESC LIMIT 5"`
}

func (t *QueryTool) InputSchema() *toolbox.JSONSchema {
	return toolbox.NewObjectSchema(
		"Parameters for executing a SELECT query",
		map[string]*toolbox.JSONSchema{
			"query": toolbox.NewStringSchema("SQL SELECT query to execute (required)"),
		},
		[]string{"query"},
	)
}

func (t *QueryTool) Execute(ctx context.Context, params map[string]interface{}) (*toolbox.Result, error) {
	start := time.Now()

	sqlText, ok := params["query"].(string)
	if !ok || sqlText == "" {
		return &toolbox.Result{
			Success: false,
			Error: &toolbox.Error{
				Code:       "INVALID_PARAMS",
				Message:    "query is required",
				Suggestion: "Provide a SQL SELECT statement in the 'query' parameter",
			},
			ExecutionTimeMs: time.Since(start).Milliseconds(),
		}, nil
	}

	// The rejection text goes back to the model as tool output so it
	// can correct the statement and retry.
	if err := guard.ValidateSQL(sqlText); err != nil {
		return &toolbox.Result{
			Success: false,
			Error: &toolbox.Error{
				Code:       "UNSAFE_QUERY",
				Message:    fmt.Sprintf("Error: %v", err),
				Suggestion: "Rewrite the statement as a plain SELECT without data-modification keywords",
			},
			ExecutionTimeMs: time.Since(start).Milliseconds(),
		}, nil
	}

	result, err := t.store.Query(ctx, sqlText)
	if err != nil {
		return &toolbox.Result{
			Success: false,
			Error: &toolbox.Error{
				Code:       "QUERY_FAILED",
				Message:    fmt.Sprintf("Error executing query: %v", err),
				Suggestion: "Check table and column names with describe_schema",
			},
			ExecutionTimeMs: time.Since(start).Milliseconds(),
		}, nil
	}

	// An explicit message lets the model distinguish "ran successfully,
	// nothing found" from a failure.
	if result.RowCount == 0 {
		return &toolbox.Result{
			Success:         true,
			Data:            "Query executed successfully but returned no results.",
			Metadata:        map[string]interface{}{"row_count": 0},
			ExecutionTimeMs: time.Since(start).Milliseconds(),
		}, nil
	}

	formatted, err := json.MarshalIndent(result.Rows, "", "  ")
	if err != nil {
		return &toolbox.Result{
			Success: false,
			Error: &toolbox.Error{
				Code:    "FORMAT_FAILED",
				Message: fmt.Sprintf("failed to format query results: %v", err),
			},
			ExecutionTimeMs: time.Since(start).Milliseconds(),
		}, nil
	}

	return &toolbox.Result{
		Success: true,
		Data:    fmt.Sprintf("Query results (%d rows):\n%s", result.RowCount, formatted),
		Metadata: map[string]interface{}{
			"row_count": result.RowCount,
			"statement": sqlText,
		},
		ExecutionTimeMs: time.Since(start).Milliseconds(),
	}, nil
}

var _ toolbox.Tool = (*QueryTool)(nil)
