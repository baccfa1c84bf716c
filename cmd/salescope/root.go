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
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vendalabs/salescope/internal/log"
	"github.com/vendalabs/salescope/internal/version"
	"github.com/vendalabs/salescope/pkg/agent"
	"github.com/vendalabs/salescope/pkg/config"
	"github.com/vendalabs/salescope/pkg/llm/anthropic"
	"github.com/vendalabs/salescope/pkg/llm/ollama"
	"github.com/vendalabs/salescope/pkg/service"
	"github.com/vendalabs/salescope/pkg/store"
	"github.com/vendalabs/salescope/pkg/types"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:     "salescope",
	Short:   "Salescope - guarded LLM agent for sales data questions",
	Long:    `Salescope answers natural-language questions about a sales database through a guarded tool-calling LLM agent with read-only, SQL-validated database access.`,
	Version: version.Get(),
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./salescope.yaml)")
	rootCmd.PersistentFlags().String("db", "", "SQLite database path (overrides config)")
	rootCmd.PersistentFlags().String("llm-provider", "", "LLM provider (ollama, anthropic)")
	rootCmd.PersistentFlags().String("model", "", "model name (overrides config)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	applyFlagOverrides()

	logger, err := log.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
	log.SetLogger(logger)
}

func applyFlagOverrides() {
	if v, _ := rootCmd.PersistentFlags().GetString("db"); v != "" {
		cfg.Database.Driver = "sqlite"
		cfg.Database.Path = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("llm-provider"); v != "" {
		cfg.LLM.Provider = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("model"); v != "" {
		switch cfg.LLM.Provider {
		case "anthropic":
			cfg.LLM.AnthropicModel = v
		default:
			cfg.LLM.OllamaModel = v
		}
	}
}

// openStore opens the configured sales store.
func openStore() (store.Store, error) {
	switch cfg.Database.Driver {
	case "sqlite", "":
		return store.OpenSQLite(cfg.Database.Path)
	case "postgres":
		return store.OpenPostgres(cfg.Database.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q: use sqlite or postgres", cfg.Database.Driver)
	}
}

// buildProvider constructs the configured LLM provider.
func buildProvider() (types.LLMProvider, error) {
	switch cfg.LLM.Provider {
	case "ollama", "":
		return ollama.NewClient(ollama.Config{
			Endpoint:    cfg.LLM.OllamaEndpoint,
			Model:       cfg.LLM.OllamaModel,
			MaxTokens:   cfg.LLM.MaxTokens,
			Temperature: cfg.LLM.Temperature,
			Timeout:     120 * time.Second,
		}), nil
	case "anthropic":
		return anthropic.NewClient(anthropic.Config{
			APIKey:      cfg.LLM.AnthropicAPIKey,
			Model:       cfg.LLM.AnthropicModel,
			MaxTokens:   cfg.LLM.MaxTokens,
			Temperature: cfg.LLM.Temperature,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q: use ollama or anthropic", cfg.LLM.Provider)
	}
}

// buildService wires the store, provider and agent into the service.
func buildService() (*service.Service, store.Store, error) {
	st, err := openStore()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}

	provider, err := buildProvider()
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	log.Info("service wiring complete",
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("llm_provider", provider.Name()),
		zap.String("model", provider.Model()))

	svc := service.New(st, provider, agent.Config{
		MaxTurns:     cfg.Agent.MaxTurns,
		MaxToolCalls: cfg.Agent.MaxToolCalls,
	})
	return svc, st, nil
}
