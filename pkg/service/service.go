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

// Package service is the question-answering facade: topic gating,
// agent invocation and the uniform answer envelope.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vendalabs/salescope/internal/log"
	"github.com/vendalabs/salescope/pkg/agent"
	"github.com/vendalabs/salescope/pkg/guard"
	"github.com/vendalabs/salescope/pkg/period"
	"github.com/vendalabs/salescope/pkg/salestools"
	"github.com/vendalabs/salescope/pkg/store"
	"github.com/vendalabs/salescope/pkg/toolbox"
	"github.com/vendalabs/salescope/pkg/types"
)

// User-facing texts. The refusal and apology are Portuguese because
// that is the product's audience; the error code stays English for
// machine consumers.
const (
	msgNotSalesRelated = "Desculpe, só posso responder perguntas relacionadas aos dados de vendas. " +
		"Tente perguntar sobre produtos, clientes, vendas, faturamento, etc."
	msgProcessingError = "Desculpe, ocorreu um erro ao processar sua pergunta: %v"

	errQuestionNotRelated = "question not related to sales data"
	errQuestionEmpty      = "question cannot be empty"
)

// Envelope is the uniform response shape for every question, answered
// or refused.
type Envelope struct {
	Answer          string   `json:"answer"`
	Question        string   `json:"question"`
	ToolsUsed       []string `json:"tools_used"`
	Error           string   `json:"error,omitempty"`
	ModelUsed       string   `json:"model_used,omitempty"`
	ContextDate     string   `json:"context_date"`
	ContextDatetime string   `json:"context_datetime,omitempty"`
}

// Service answers natural-language questions about the sales store.
// Initialization is single-flight: concurrent first callers share one
// registry build, and a failed build is returned to every caller.
type Service struct {
	provider store.Store
	llm      types.LLMProvider
	agentCfg agent.Config
	logger   *zap.Logger

	initOnce sync.Once
	initErr  error
	registry *toolbox.Registry
	agent    *agent.Agent
}

// New creates an uninitialized service. Initialization is deferred to
// the first Ask (or an explicit Init call).
func New(st store.Store, llm types.LLMProvider, agentCfg agent.Config) *Service {
	return &Service{
		provider: st,
		llm:      llm,
		agentCfg: agentCfg,
		logger:   log.Logger(),
	}
}

// Init builds the tool registry and agent exactly once. Safe for
// concurrent use; every caller observes the same outcome.
func (s *Service) Init(ctx context.Context) error {
	s.initOnce.Do(func() {
		if err := s.provider.Ping(ctx); err != nil {
			s.initErr = fmt.Errorf("store unavailable: %w", err)
			return
		}

		s.registry = toolbox.NewRegistry()
		salestools.NewProvider(s.provider).RegisterAll(s.registry)
		s.agent = agent.New(s.llm, s.registry, s.agentCfg)

		s.logger.Info("sales insight service initialized",
			zap.String("provider", s.llm.Name()),
			zap.String("model", s.llm.Model()),
			zap.Int("tools", s.registry.Count()))
	})
	return s.initErr
}

// Ask answers one question. Every outcome, including refusals and
// internal failures, is reported through the envelope; the error
// return covers only initialization failures.
func (s *Service) Ask(ctx context.Context, question string) (*Envelope, error) {
	if err := s.Init(ctx); err != nil {
		return nil, err
	}

	now := time.Now()
	env := &Envelope{
		Question:        question,
		ToolsUsed:       []string{},
		ModelUsed:       fmt.Sprintf("%s:%s", s.llm.Name(), s.llm.Model()),
		ContextDate:     period.FormatDatePT(now),
		ContextDatetime: now.Format("2006-01-02 15:04:05"),
	}

	question = strings.TrimSpace(question)
	if question == "" {
		env.Answer = msgNotSalesRelated
		env.Error = errQuestionEmpty
		return env, nil
	}

	// The topic gate runs before any model call: off-topic questions
	// must not consume tokens or touch the store.
	if !guard.Admissible(question) {
		s.logger.Info("question rejected by topic gate",
			zap.String("question", question))
		env.Answer = msgNotSalesRelated
		env.Error = errQuestionNotRelated
		return env, nil
	}

	s.logger.Info("processing question",
		zap.String("question", question),
		zap.String("model", env.ModelUsed))

	answer, err := s.agent.Run(ctx, question)
	if err != nil {
		s.logger.Error("agent run failed",
			zap.String("question", question),
			zap.Error(err))
		env.Answer = fmt.Sprintf(msgProcessingError, err)
		env.Error = err.Error()
		return env, nil
	}

	env.Answer = answer.Text
	if answer.ToolsUsed != nil {
		env.ToolsUsed = answer.ToolsUsed
	}
	return env, nil
}

// Registry exposes the tool registry, mainly for introspection in the
// serving layer.
func (s *Service) Registry() *toolbox.Registry {
	return s.registry
}

// Global instance, for callers that want process-wide sharing.
var (
	globalMu      sync.Mutex
	globalService *Service
)

// Global returns the process-wide service, creating it on first call
// with the supplied constructor arguments. Later calls ignore the
// arguments and return the existing instance.
func Global(st store.Store, llm types.LLMProvider, agentCfg agent.Config) *Service {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalService == nil {
		globalService = New(st, llm, agentCfg)
	}
	return globalService
}
