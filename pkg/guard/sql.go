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
package guard

import (
	"fmt"
	"strings"
)

// destructiveKeywords are rejected as case-insensitive substrings
// anywhere in the statement, including subqueries, comments and string
// literals. This is a blunt total-coverage defense, not a parser: a
// legitimate SELECT containing the substring "UPDATE" in an alias is
// rejected too, and that over-approximation is intentional.
var destructiveKeywords = []string{
	"DROP", "DELETE", "UPDATE", "INSERT", "ALTER", "CREATE", "TRUNCATE",
}

// ValidateSQL enforces the read-only statement contract: the trimmed,
// case-normalized statement must begin with SELECT and must not
// contain any destructive verb. The returned error text is meant to be
// shown to the calling model verbatim so it can correct the statement.
func ValidateSQL(query string) error {
	normalized := strings.ToUpper(strings.TrimSpace(query))

	if !strings.HasPrefix(normalized, "SELECT") {
		return fmt.Errorf("only SELECT queries are allowed; the statement must start with SELECT")
	}

	for _, keyword := range destructiveKeywords {
		if strings.Contains(normalized, keyword) {
			return fmt.Errorf("query contains forbidden keyword %s; forbidden keywords: %s",
				keyword, strings.Join(destructiveKeywords, ", "))
		}
	}
	return nil
}
