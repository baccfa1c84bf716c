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

// Package ollama implements the LLMProvider interface over a local
// Ollama server's /api/chat endpoint with native tool calling.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vendalabs/salescope/pkg/toolbox"
	"github.com/vendalabs/salescope/pkg/types"
)

// Client implements the LLMProvider interface for Ollama.
type Client struct {
	endpoint    string
	model       string
	httpClient  *http.Client
	maxTokens   int
	temperature float64
}

// Config holds configuration for the Ollama client.
type Config struct {
	Endpoint    string        // Default: http://localhost:11434
	Model       string        // Default: qwen2.5
	MaxTokens   int           // Default: 4096
	Temperature float64       // Default: 0.1
	Timeout     time.Duration // Default: 120s
}

// NewClient creates a new Ollama client.
func NewClient(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "http://localhost:11434"
	}
	if cfg.Model == "" {
		cfg.Model = "qwen2.5"
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 4096
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.1
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}

	return &Client{
		endpoint:    cfg.Endpoint,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return "ollama"
}

// Model returns the model identifier.
func (c *Client) Model() string {
	return c.model
}

// Chat sends a conversation to Ollama and returns the response.
func (c *Client) Chat(ctx context.Context, messages []types.Message, tools []toolbox.Tool) (*types.LLMResponse, error) {
	req := chatRequest{
		Model:    c.model,
		Messages: c.convertMessages(messages),
		Stream:   false,
		Options: map[string]interface{}{
			"temperature": c.temperature,
			"num_predict": c.maxTokens,
		},
	}

	if len(tools) > 0 {
		req.Tools = c.convertTools(tools)
	}

	resp, err := c.callAPI(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("ollama API call failed: %w", err)
	}

	return c.convertResponse(resp), nil
}

// convertTools converts toolbox.Tool to Ollama tool format.
func (c *Client) convertTools(tools []toolbox.Tool) []ollamaTool {
	ollamaTools := make([]ollamaTool, len(tools))
	for i, tool := range tools {
		ollamaTools[i] = ollamaTool{
			Type: "function",
			Function: ollamaFunction{
				Name:        tool.Name(),
				Description: tool.Description(),
				Parameters:  tool.InputSchema(),
			},
		}
	}
	return ollamaTools
}

// convertMessages converts agent messages to Ollama format.
func (c *Client) convertMessages(messages []types.Message) []ollamaMessage {
	var apiMessages []ollamaMessage

	for _, msg := range messages {
		switch msg.Role {
		case "system", "user", "assistant":
			apiMessages = append(apiMessages, ollamaMessage{
				Role:    msg.Role,
				Content: msg.Content,
			})

		case "tool":
			apiMessages = append(apiMessages, ollamaMessage{
				Role:    "tool",
				Content: msg.Content,
			})
		}
	}

	return apiMessages
}

// cleanJSONString removes common formatting issues from JSON strings.
func (c *Client) cleanJSONString(s string) string {
	s = strings.TrimSpace(s)

	// Strip surrounding backticks (common in Ollama responses)
	if len(s) >= 2 && s[0] == '`' && s[len(s)-1] == '`' {
		s = s[1 : len(s)-1]
	}

	// Strip "json" language marker after opening backticks
	if len(s) > 4 && strings.HasPrefix(s, "json") {
		if s[4] == '\n' || s[4] == '\r' || s[4] == ' ' || s[4] == '\t' {
			s = strings.TrimSpace(s[4:])
		}
	}

	return s
}

// convertResponse converts Ollama response to agent format.
func (c *Client) convertResponse(resp *chatResponse) *types.LLMResponse {
	var toolCalls []types.ToolCall
	if len(resp.Message.ToolCalls) > 0 {
		toolCalls = make([]types.ToolCall, len(resp.Message.ToolCalls))
		for i, tc := range resp.Message.ToolCalls {
			// Arguments may arrive as a JSON string or an already-decoded map.
			var params map[string]interface{}
			switch args := tc.Function.Arguments.(type) {
			case string:
				cleaned := c.cleanJSONString(args)
				if err := json.Unmarshal([]byte(cleaned), &params); err != nil {
					params = make(map[string]interface{})
				}
			case map[string]interface{}:
				params = args
			default:
				params = make(map[string]interface{})
			}

			// Ollama omits tool-call IDs for some models. The agent loop
			// needs one to pair the result turn with its call.
			id := tc.ID
			if id == "" {
				id = uuid.NewString()
			}

			toolCalls[i] = types.ToolCall{
				ID:    id,
				Name:  tc.Function.Name,
				Input: params,
			}
		}
	}

	return &types.LLMResponse{
		Content:    resp.Message.Content,
		ToolCalls:  toolCalls,
		StopReason: "stop",
		Usage: types.Usage{
			InputTokens:  resp.PromptEvalCount,
			OutputTokens: resp.EvalCount,
			TotalTokens:  resp.PromptEvalCount + resp.EvalCount,
		},
		Metadata: map[string]interface{}{
			"model":         resp.Model,
			"eval_duration": resp.EvalDuration,
		},
	}
}

// callAPI makes the HTTP request to Ollama.
func (c *Client) callAPI(ctx context.Context, req chatRequest) (*chatResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.endpoint+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error (status %d): %s", httpResp.StatusCode, string(respBody))
	}

	var resp chatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &resp, nil
}

// Ollama API types

type chatRequest struct {
	Model    string                 `json:"model"`
	Messages []ollamaMessage        `json:"messages"`
	Stream   bool                   `json:"stream"`
	Tools    []ollamaTool           `json:"tools,omitempty"`
	Options  map[string]interface{} `json:"options,omitempty"`
}

type ollamaTool struct {
	Type     string         `json:"type"`
	Function ollamaFunction `json:"function"`
}

type ollamaFunction struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Parameters  *toolbox.JSONSchema `json:"parameters"`
}

type ollamaMessage struct {
	Role      string           `json:"role"`
	Content   string           `json:"content"`
	ToolCalls []ollamaToolCall `json:"tool_calls,omitempty"`
}

type ollamaToolCall struct {
	ID       string             `json:"id"`
	Type     string             `json:"type"`
	Function ollamaFunctionCall `json:"function"`
}

type ollamaFunctionCall struct {
	Name      string      `json:"name"`
	Arguments interface{} `json:"arguments"` // Can be string or map
}

type chatResponse struct {
	Model           string        `json:"model"`
	CreatedAt       string        `json:"created_at"`
	Message         ollamaMessage `json:"message"`
	Done            bool          `json:"done"`
	TotalDuration   int64         `json:"total_duration"`
	LoadDuration    int64         `json:"load_duration"`
	PromptEvalCount int           `json:"prompt_eval_count"`
	EvalCount       int           `json:"eval_count"`
	EvalDuration    int64         `json:"eval_duration"`
}

// Ensure Client implements LLMProvider interface.
var _ types.LLMProvider = (*Client)(nil)
