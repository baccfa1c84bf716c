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
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single question about the sales data",
	Long: `Runs one question through the agent pipeline and prints the answer.

Examples:
  salescope ask "Qual foi o produto mais vendido em fevereiro?"
  salescope ask --json "Quantas vendas tivemos em 2025-02-28?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().Bool("json", false, "print the full answer envelope as JSON")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	svc, st, err := buildService()
	if err != nil {
		return err
	}
	defer st.Close()

	env, err := svc.Ask(cmd.Context(), question)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		out, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode envelope: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Println(env.Answer)
	if len(env.ToolsUsed) > 0 {
		fmt.Printf("\n[ferramentas: %s]\n", strings.Join(env.ToolsUsed, ", "))
	}
	return nil
}
