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
package period

import (
	"strings"
	"testing"
	"time"

	"github.com/vendalabs/salescope/pkg/store"
)

func TestResolveMonth(t *testing.T) {
	pred, err := Resolve(store.SQLite, Month, "2025-02")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if pred.Expr != "strftime('%Y-%m', sale_date) = ?" {
		t.Errorf("unexpected expr: %s", pred.Expr)
	}
	if len(pred.Args) != 1 || pred.Args[0] != "2025-02" {
		t.Errorf("unexpected args: %v", pred.Args)
	}
	if pred.Label != "mês 2025-02" {
		t.Errorf("unexpected label: %s", pred.Label)
	}
}

func TestResolveDay(t *testing.T) {
	pred, err := Resolve(store.SQLite, Day, "2025-02-28")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if pred.Expr != "date(sale_date) = ?" {
		t.Errorf("unexpected expr: %s", pred.Expr)
	}
	if len(pred.Args) != 1 || pred.Args[0] != "2025-02-28" {
		t.Errorf("unexpected args: %v", pred.Args)
	}
}

func TestResolveYear(t *testing.T) {
	pred, err := Resolve(store.SQLite, Year, "2025")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if pred.Expr != "strftime('%Y', sale_date) = ?" {
		t.Errorf("unexpected expr: %s", pred.Expr)
	}
	if pred.Label != "ano 2025" {
		t.Errorf("unexpected label: %s", pred.Label)
	}
}

func TestResolveWeek(t *testing.T) {
	// 2025-02-26 is a Wednesday; its week runs Monday 2025-02-24
	// through Sunday 2025-03-02.
	pred, err := Resolve(store.SQLite, Week, "2025-02-26")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if len(pred.Args) != 2 {
		t.Fatalf("expected 2 args, got %v", pred.Args)
	}
	if pred.Args[0] != "2025-02-24" || pred.Args[1] != "2025-03-02" {
		t.Errorf("unexpected week bounds: %v", pred.Args)
	}
	if !strings.Contains(pred.Label, "2025-02-24") || !strings.Contains(pred.Label, "2025-03-02") {
		t.Errorf("unexpected label: %s", pred.Label)
	}
}

func TestResolveWeekAnchorIsMonday(t *testing.T) {
	pred, err := Resolve(store.SQLite, Week, "2025-02-24")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if pred.Args[0] != "2025-02-24" {
		t.Errorf("Monday anchor should start its own week, got %v", pred.Args[0])
	}
}

func TestResolveWeekAnchorIsSunday(t *testing.T) {
	pred, err := Resolve(store.SQLite, Week, "2025-03-02")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if pred.Args[0] != "2025-02-24" || pred.Args[1] != "2025-03-02" {
		t.Errorf("Sunday anchor should close the preceding Monday's week, got %v", pred.Args)
	}
}

func TestResolvePostgresDialect(t *testing.T) {
	pred, err := Resolve(store.Postgres, Month, "2025-02")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if pred.Expr != "to_char(sale_date, 'YYYY-MM') = $1" {
		t.Errorf("unexpected expr: %s", pred.Expr)
	}

	week, err := Resolve(store.Postgres, Week, "2025-02-26")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !strings.Contains(week.Expr, "$1") || !strings.Contains(week.Expr, "$2") {
		t.Errorf("postgres week predicate should use numbered placeholders: %s", week.Expr)
	}
}

func TestResolveNeverInlinesValues(t *testing.T) {
	cases := []struct {
		kind  Kind
		value string
	}{
		{Month, "2025-02"},
		{Day, "2025-02-28"},
		{Year, "2025"},
		{Week, "2025-02-26"},
	}

	for _, tc := range cases {
		pred, err := Resolve(store.SQLite, tc.kind, tc.value)
		if err != nil {
			t.Fatalf("Resolve(%s, %s) failed: %v", tc.kind, tc.value, err)
		}
		if strings.Contains(pred.Expr, tc.value) {
			t.Errorf("predicate for %s inlines the value: %s", tc.kind, pred.Expr)
		}
	}
}

func TestResolveRejectsMalformedValues(t *testing.T) {
	cases := []struct {
		kind  Kind
		value string
	}{
		{Month, "02-2025"},
		{Month, "2025-13"},
		{Month, "2025-02-28"},
		{Day, "2025-2-8"},
		{Day, "yesterday"},
		{Year, "25"},
		{Week, "2025-02"},
		{Kind("quarter"), "2025-Q1"},
		{Kind(""), "2025"},
	}

	for _, tc := range cases {
		if _, err := Resolve(store.SQLite, tc.kind, tc.value); err == nil {
			t.Errorf("Resolve(%s, %q) = nil error, want failure", tc.kind, tc.value)
		}
	}
}

func TestFormatDatePT(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC), "28 de agosto de 2026"},
		{time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), "1 de janeiro de 2025"},
		{time.Date(2025, time.March, 15, 23, 59, 0, 0, time.UTC), "15 de março de 2025"},
	}

	for _, tt := range tests {
		if got := FormatDatePT(tt.date); got != tt.want {
			t.Errorf("FormatDatePT(%v) = %q, want %q", tt.date, got, tt.want)
		}
	}
}
