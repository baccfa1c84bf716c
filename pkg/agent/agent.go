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

// Package agent runs the bounded tool-calling loop: model turn, tool
// execution, result turn, repeated until the model answers in plain
// text or the round cap is hit.
package agent

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vendalabs/salescope/internal/log"
	"github.com/vendalabs/salescope/pkg/period"
	"github.com/vendalabs/salescope/pkg/toolbox"
	"github.com/vendalabs/salescope/pkg/types"
)

const (
	// DefaultMaxTurns caps model round-trips per question.
	DefaultMaxTurns = 10

	// DefaultMaxToolCalls caps total tool executions per question.
	DefaultMaxToolCalls = 25
)

// Config holds agent loop settings.
type Config struct {
	MaxTurns     int
	MaxToolCalls int
}

// Agent drives one LLM provider over one tool registry.
type Agent struct {
	provider     types.LLMProvider
	registry     *toolbox.Registry
	executor     *toolbox.Executor
	maxTurns     int
	maxToolCalls int
	logger       *zap.Logger
}

// Answer is the outcome of a completed loop.
type Answer struct {
	// Text is the model's final plain-text response.
	Text string

	// ToolsUsed lists the distinct tool names invoked, in first-use order.
	ToolsUsed []string

	// Turns is the number of model round-trips consumed.
	Turns int
}

// New creates an agent over the provider and registry.
func New(provider types.LLMProvider, registry *toolbox.Registry, cfg Config) *Agent {
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = DefaultMaxTurns
	}
	if cfg.MaxToolCalls <= 0 {
		cfg.MaxToolCalls = DefaultMaxToolCalls
	}
	logger := log.Logger()
	return &Agent{
		provider:     provider,
		registry:     registry,
		executor:     toolbox.NewExecutor(registry, logger),
		maxTurns:     cfg.MaxTurns,
		maxToolCalls: cfg.MaxToolCalls,
		logger:       logger,
	}
}

// systemPrompt builds the per-question system turn with the current
// date context. It is rebuilt on every question so a long-lived
// service never pins yesterday's date.
func systemPrompt(now time.Time) string {
	return fmt.Sprintf(`Você é um especialista em análise de dados de vendas.

CONTEXTO TEMPORAL:
- Data atual: %s
- Data/hora atual: %s
- Quando o usuário mencionar "hoje", "esta semana", "este mês" ou "período recente", use a data atual como referência.

INSTRUÇÕES:
1. Responda sempre em português brasileiro
2. Use as ferramentas disponíveis para consultar o banco de dados
3. Seja preciso com datas e períodos ao fazer consultas SQL
4. Se os dados não cobrirem o período solicitado, explique claramente

Responda de forma clara e objetiva.`,
		period.FormatDatePT(now),
		now.Format("2006-01-02 15:04:05"))
}

// Run answers one question. The conversation starts fresh each call;
// no state is carried between questions.
func (a *Agent) Run(ctx context.Context, question string) (*Answer, error) {
	messages := []types.Message{
		{Role: "system", Content: systemPrompt(time.Now()), Timestamp: time.Now()},
		{Role: "user", Content: question, Timestamp: time.Now()},
	}

	tools := a.registry.ListTools()

	var toolsUsed []string
	seen := make(map[string]bool)
	toolCallCount := 0

	for turn := 1; turn <= a.maxTurns; turn++ {
		resp, err := a.provider.Chat(ctx, messages, tools)
		if err != nil {
			return nil, fmt.Errorf("model turn %d failed: %w", turn, err)
		}

		// A response without tool calls is the final answer.
		if len(resp.ToolCalls) == 0 {
			a.logger.Debug("agent loop finished",
				zap.Int("turns", turn),
				zap.Int("tool_calls", toolCallCount))
			return &Answer{
				Text:      resp.Content,
				ToolsUsed: toolsUsed,
				Turns:     turn,
			}, nil
		}

		messages = append(messages, types.Message{
			Role:      "assistant",
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
			Timestamp: time.Now(),
		})

		for _, tc := range resp.ToolCalls {
			toolCallCount++
			if toolCallCount > a.maxToolCalls {
				return nil, fmt.Errorf("tool call budget of %d exhausted before the model produced an answer", a.maxToolCalls)
			}

			a.logger.Debug("executing tool",
				zap.String("tool", tc.Name),
				zap.Int("turn", turn))

			// Executor failures come back as failed Results; the text is
			// fed to the model so it can adjust and retry within budget.
			result, _ := a.executor.Execute(ctx, tc.Name, tc.Input)

			if !seen[tc.Name] {
				seen[tc.Name] = true
				toolsUsed = append(toolsUsed, tc.Name)
			}

			messages = append(messages, types.Message{
				Role:      "tool",
				Content:   result.Text(),
				ToolUseID: tc.ID,
				Timestamp: time.Now(),
			})
		}
	}

	return nil, fmt.Errorf("could not resolve the question after %d tool rounds", a.maxTurns)
}
