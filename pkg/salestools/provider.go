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

// Package salestools implements the read-only query tools the agent
// may invoke against the sales store: raw SELECT execution, schema
// introspection, aggregate statistics, monthly trend analysis and
// timestamp-safe period summaries.
package salestools

import (
	"github.com/vendalabs/salescope/pkg/store"
	"github.com/vendalabs/salescope/pkg/toolbox"
)

// Stable tool names, as exposed to the calling agent.
const (
	ToolExecuteQuery      = "execute_query"
	ToolDescribeSchema    = "describe_schema"
	ToolComputeStatistics = "compute_statistics"
	ToolAnalyzeTrends     = "analyze_trends"
	ToolSummarizePeriod   = "summarize_period"
)

// Provider builds the full tool set over one store.
type Provider struct {
	store store.Store
}

// NewProvider creates a tool provider for the given store.
func NewProvider(st store.Store) *Provider {
	return &Provider{store: st}
}

// Tools returns the five query tools.
func (p *Provider) Tools() []toolbox.Tool {
	return []toolbox.Tool{
		NewQueryTool(p.store),
		NewSchemaTool(p.store),
		NewStatisticsTool(p.store),
		NewTrendsTool(p.store),
		NewPeriodTool(p.store),
	}
}

// RegisterAll registers every tool into the registry.
func (p *Provider) RegisterAll(reg *toolbox.Registry) {
	for _, t := range p.Tools() {
		reg.Register(t)
	}
}
