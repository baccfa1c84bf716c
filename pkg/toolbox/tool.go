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
	"encoding/json"
)

// Tool defines the interface for executable tools in the agent pipeline.
// Tools are the only mechanism the agent has to touch the sales store;
// each tool encapsulates a single read-only capability.
type Tool interface {
	// Name returns the tool's unique identifier
	Name() string

	// Description returns a human-readable contract for LLM context,
	// including example invocations
	Description() string

	// InputSchema returns the JSON Schema for tool parameters
	InputSchema() *JSONSchema

	// Execute runs the tool with given parameters. Domain failures are
	// reported through Result.Error, not through the returned error:
	// the agent loop must be able to show the failure text to the model.
	Execute(ctx context.Context, params map[string]interface{}) (*Result, error)
}

// Result represents the outcome of tool execution.
type Result struct {
	// Success indicates if the tool executed successfully
	Success bool

	// Data contains the result data. For these tools it is always a
	// human-readable string the model can consume directly.
	Data interface{}

	// Error contains error information if execution failed
	Error *Error

	// Metadata contains tool-specific metadata (row counts, executed
	// statement text, ...)
	Metadata map[string]interface{}

	// ExecutionTime in milliseconds
	ExecutionTimeMs int64
}

// Error represents a tool execution error with structured information.
type Error struct {
	// Code is a machine-readable error code
	Code string

	// Message is a human-readable error message
	Message string

	// Suggestion provides a suggestion for fixing the error
	Suggestion string
}

// Text returns the result's text payload: Data for successful results,
// the error message (plus suggestion, when present) otherwise. This is
// what gets appended to the conversation as the tool-result turn.
func (r *Result) Text() string {
	if r.Success {
		if s, ok := r.Data.(string); ok {
			return s
		}
		b, err := json.Marshal(r.Data)
		if err != nil {
			return ""
		}
		return string(b)
	}
	if r.Error == nil {
		return "tool execution failed"
	}
	text := r.Error.Message
	if r.Error.Suggestion != "" {
		text += "\n" + r.Error.Suggestion
	}
	return text
}

// JSONSchema represents a JSON Schema for tool parameters.
type JSONSchema struct {
	Type        string                 `json:"type"`
	Description string                 `json:"description,omitempty"`
	Properties  map[string]*JSONSchema `json:"properties,omitempty"`
	Required    []string               `json:"required,omitempty"`
	Items       *JSONSchema            `json:"items,omitempty"`
	Enum        []interface{}          `json:"enum,omitempty"`
	Default     interface{}            `json:"default,omitempty"`
}

// NewObjectSchema creates a new object schema with the given properties.
func NewObjectSchema(description string, properties map[string]*JSONSchema, required []string) *JSONSchema {
	return &JSONSchema{
		Type:        "object",
		Description: description,
		Properties:  properties,
		Required:    required,
	}
}

// NewStringSchema creates a new string schema.
func NewStringSchema(description string) *JSONSchema {
	return &JSONSchema{
		Type:        "string",
		Description: description,
	}
}

// NewNumberSchema creates a new number schema.
func NewNumberSchema(description string) *JSONSchema {
	return &JSONSchema{
		Type:        "number",
		Description: description,
	}
}

// WithEnum adds enum values to the schema.
func (s *JSONSchema) WithEnum(values ...interface{}) *JSONSchema {
	s.Enum = values
	return s
}

// WithDefault adds a default value to the schema.
func (s *JSONSchema) WithDefault(value interface{}) *JSONSchema {
	s.Default = value
	return s
}
