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

// Package guard holds the two admission checks that run before any
// model or database cost is incurred: the topic gate for incoming
// questions and the SQL safety validator for statements the model
// wants to execute.
package guard

import "strings"

// salesKeywords is the fixed bilingual (pt/en) keyword set. A question
// is admitted when at least one keyword appears as a substring of the
// lower-cased text. A model with unrestricted tool access could be
// coerced into unrelated queries; this gate is the cheap first line of
// defense.
var salesKeywords = []string{
	"vendas", "produto", "cliente", "faturamento", "receita",
	"quantidade", "data", "período", "categoria", "preço",
	"sales", "product", "customer", "revenue", "quantity",
	"date", "period", "category", "price", "estatística",
	"statistics", "trend", "análise", "analysis",
}

// Admissible reports whether the question is about the sales domain.
// No side effects.
func Admissible(question string) bool {
	q := strings.ToLower(question)
	for _, keyword := range salesKeywords {
		if strings.Contains(q, keyword) {
			return true
		}
	}
	return false
}
