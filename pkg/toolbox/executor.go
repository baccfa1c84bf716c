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
package toolbox

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Executor dispatches tool calls by stable name through the registry.
// A failure inside a tool is converted to a failed Result rather than
// propagated, so a single bad tool call never aborts the agent turn.
type Executor struct {
	registry *Registry
	logger   *zap.Logger
}

// NewExecutor creates a new tool executor.
func NewExecutor(registry *Registry, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		registry: registry,
		logger:   logger,
	}
}

// Execute executes a tool by name with the given parameters.
func (e *Executor) Execute(ctx context.Context, toolName string, params map[string]interface{}) (result *Result, err error) {
	tool, ok := e.registry.Get(toolName)
	if !ok {
		return &Result{
			Success: false,
			Error: &Error{
				Code:       "TOOL_NOT_FOUND",
				Message:    fmt.Sprintf("tool not found: %s", toolName),
				Suggestion: fmt.Sprintf("available tools: %v", e.registry.List()),
			},
		}, nil
	}

	start := time.Now()

	// A panicking tool must not take the whole request down with it.
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("tool panicked",
				zap.String("tool", toolName),
				zap.Any("panic", r))
			result = &Result{
				Success: false,
				Error: &Error{
					Code:    "TOOL_PANIC",
					Message: fmt.Sprintf("tool %s panicked: %v", toolName, r),
				},
				ExecutionTimeMs: time.Since(start).Milliseconds(),
			}
			err = nil
		}
	}()

	e.logger.Debug("executing tool",
		zap.String("tool", toolName),
		zap.Any("params", params))

	result, err = tool.Execute(ctx, params)
	if err != nil {
		e.logger.Warn("tool execution failed",
			zap.String("tool", toolName),
			zap.Error(err))
		return &Result{
			Success: false,
			Error: &Error{
				Code:    "EXECUTION_FAILED",
				Message: fmt.Sprintf("tool %s failed: %v", toolName, err),
			},
			ExecutionTimeMs: time.Since(start).Milliseconds(),
		}, nil
	}

	if result.ExecutionTimeMs == 0 {
		result.ExecutionTimeMs = time.Since(start).Milliseconds()
	}
	return result, nil
}
