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
	"errors"
	"strings"
	"testing"
)

type fakeTool struct {
	name    string
	execute func(ctx context.Context, params map[string]interface{}) (*Result, error)
}

func (f *fakeTool) Name() string        { return f.name }
func (f *fakeTool) Description() string { return "fake tool" }
func (f *fakeTool) InputSchema() *JSONSchema {
	return NewObjectSchema("params", map[string]*JSONSchema{}, nil)
}
func (f *fakeTool) Execute(ctx context.Context, params map[string]interface{}) (*Result, error) {
	return f.execute(ctx, params)
}

func TestRegistryRegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	tool := &fakeTool{name: "alpha"}
	reg.Register(tool)

	got, ok := reg.Get("alpha")
	if !ok || got != Tool(tool) {
		t.Fatal("registered tool not retrievable")
	}
	if _, ok := reg.Get("missing"); ok {
		t.Fatal("unregistered name should not resolve")
	}
	if reg.Count() != 1 {
		t.Errorf("Count = %d, want 1", reg.Count())
	}
}

func TestRegistryListSorted(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&fakeTool{name: "zeta"})
	reg.Register(&fakeTool{name: "alpha"})
	reg.Register(&fakeTool{name: "mid"})

	names := reg.List()
	want := []string{"alpha", "mid", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("List = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("List = %v, want %v", names, want)
		}
	}
}

func TestExecutorUnknownTool(t *testing.T) {
	exec := NewExecutor(NewRegistry(), nil)

	result, err := exec.Execute(context.Background(), "ghost", nil)
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if result.Success {
		t.Fatal("unknown tool should fail")
	}
	if result.Error.Code != "TOOL_NOT_FOUND" {
		t.Errorf("error code = %s, want TOOL_NOT_FOUND", result.Error.Code)
	}
}

func TestExecutorConvertsErrorToFailedResult(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&fakeTool{
		name: "broken",
		execute: func(ctx context.Context, params map[string]interface{}) (*Result, error) {
			return nil, errors.New("boom")
		},
	})
	exec := NewExecutor(reg, nil)

	result, err := exec.Execute(context.Background(), "broken", nil)
	if err != nil {
		t.Fatalf("errors must be absorbed into the result, got %v", err)
	}
	if result.Success {
		t.Fatal("expected failed result")
	}
	if result.Error.Code != "EXECUTION_FAILED" {
		t.Errorf("error code = %s, want EXECUTION_FAILED", result.Error.Code)
	}
	if !strings.Contains(result.Error.Message, "boom") {
		t.Errorf("original error lost: %s", result.Error.Message)
	}
}

func TestExecutorRecoversPanic(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&fakeTool{
		name: "panicky",
		execute: func(ctx context.Context, params map[string]interface{}) (*Result, error) {
			panic("unexpected state")
		},
	})
	exec := NewExecutor(reg, nil)

	result, err := exec.Execute(context.Background(), "panicky", nil)
	if err != nil {
		t.Fatalf("panic must not escape as error: %v", err)
	}
	if result.Success {
		t.Fatal("expected failed result")
	}
	if result.Error.Code != "TOOL_PANIC" {
		t.Errorf("error code = %s, want TOOL_PANIC", result.Error.Code)
	}
}

func TestExecutorSetsExecutionTime(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&fakeTool{
		name: "ok",
		execute: func(ctx context.Context, params map[string]interface{}) (*Result, error) {
			return &Result{Success: true, Data: "done"}, nil
		},
	})
	exec := NewExecutor(reg, nil)

	result, err := exec.Execute(context.Background(), "ok", nil)
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !result.Success {
		t.Fatal("expected success")
	}
	if result.ExecutionTimeMs < 0 {
		t.Errorf("execution time not set: %d", result.ExecutionTimeMs)
	}
}

func TestResultText(t *testing.T) {
	ok := &Result{Success: true, Data: "hello"}
	if ok.Text() != "hello" {
		t.Errorf("Text() = %q", ok.Text())
	}

	failed := &Result{
		Success: false,
		Error:   &Error{Code: "X", Message: "broken", Suggestion: "fix it"},
	}
	if failed.Text() != "broken\nfix it" {
		t.Errorf("Text() = %q", failed.Text())
	}

	bare := &Result{Success: false}
	if bare.Text() != "tool execution failed" {
		t.Errorf("Text() = %q", bare.Text())
	}
}
