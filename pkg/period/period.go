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

// Package period maps semantic period descriptors (day, week, month,
// year) to parameterized, timestamp-safe SQL predicates.
//
// The sale timestamp column stores full date-time values, so a naive
// lexical range like BETWEEN '2025-02-01' AND '2025-02-28' silently
// drops sales recorded after midnight on the final day. Predicates are
// therefore always derived from calendar-aware truncation expressions,
// with every value bound as a parameter — never interpolated into the
// statement text.
package period

import (
	"fmt"
	"time"

	"github.com/vendalabs/salescope/pkg/store"
)

// Kind identifies the granularity of a period descriptor.
type Kind string

const (
	Day   Kind = "day"
	Week  Kind = "week"
	Month Kind = "month"
	Year  Kind = "year"
)

// Predicate is a WHERE-clause fragment over the sale_date column with
// its bound parameters and a human-readable label for the period.
type Predicate struct {
	// Expr contains only column expressions and parameter placeholders.
	Expr string

	// Args are the values bound to the placeholders, in order.
	Args []interface{}

	// Label describes the period for display ("mês 2025-02", ...).
	Label string
}

// Resolve builds the predicate for the given period kind and value.
// Value formats: day "YYYY-MM-DD", week "YYYY-MM-DD" (any day within
// the target week), month "YYYY-MM", year "YYYY". An unsupported kind
// or malformed value is a local validation error for the caller to
// report as tool text.
func Resolve(dialect store.Dialect, kind Kind, value string) (*Predicate, error) {
	const col = "sale_date"

	switch kind {
	case Month:
		if _, err := time.Parse("2006-01", value); err != nil {
			return nil, fmt.Errorf("invalid month value %q: expected format YYYY-MM", value)
		}
		return &Predicate{
			Expr:  fmt.Sprintf("%s = %s", dialect.MonthExpr(col), dialect.Placeholder(1)),
			Args:  []interface{}{value},
			Label: fmt.Sprintf("mês %s", value),
		}, nil

	case Day:
		if _, err := time.Parse("2006-01-02", value); err != nil {
			return nil, fmt.Errorf("invalid day value %q: expected format YYYY-MM-DD", value)
		}
		return &Predicate{
			Expr:  fmt.Sprintf("%s = %s", dialect.DayExpr(col), dialect.Placeholder(1)),
			Args:  []interface{}{value},
			Label: fmt.Sprintf("dia %s", value),
		}, nil

	case Year:
		if _, err := time.Parse("2006", value); err != nil {
			return nil, fmt.Errorf("invalid year value %q: expected format YYYY", value)
		}
		return &Predicate{
			Expr:  fmt.Sprintf("%s = %s", dialect.YearExpr(col), dialect.Placeholder(1)),
			Args:  []interface{}{value},
			Label: fmt.Sprintf("ano %s", value),
		}, nil

	case Week:
		anchor, err := time.Parse("2006-01-02", value)
		if err != nil {
			return nil, fmt.Errorf("invalid week anchor %q: expected format YYYY-MM-DD", value)
		}
		start, end := weekBounds(anchor)
		return &Predicate{
			Expr: fmt.Sprintf("%s >= %s AND %s <= %s",
				dialect.DayExpr(col), dialect.Placeholder(1),
				dialect.DayExpr(col), dialect.Placeholder(2)),
			Args: []interface{}{
				start.Format("2006-01-02"),
				end.Format("2006-01-02"),
			},
			Label: fmt.Sprintf("semana de %s a %s",
				start.Format("2006-01-02"), end.Format("2006-01-02")),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported period kind %q: use day, week, month or year", kind)
	}
}

// weekBounds returns the Monday and Sunday of the week containing the
// anchor date, computed on the calendar rather than by string
// arithmetic.
func weekBounds(anchor time.Time) (start, end time.Time) {
	offset := (int(anchor.Weekday()) + 6) % 7 // Monday = 0
	start = anchor.AddDate(0, 0, -offset)
	end = start.AddDate(0, 0, 6)
	return start, end
}

// monthNamesPT is a hand-maintained month-name table keyed by month
// number. It is used unconditionally, removing any dependence on the
// host's locale configuration.
var monthNamesPT = map[time.Month]string{
	time.January:   "janeiro",
	time.February:  "fevereiro",
	time.March:     "março",
	time.April:     "abril",
	time.May:       "maio",
	time.June:      "junho",
	time.July:      "julho",
	time.August:    "agosto",
	time.September: "setembro",
	time.October:   "outubro",
	time.November:  "novembro",
	time.December:  "dezembro",
}

// FormatDatePT renders a date as Brazilian Portuguese long form,
// e.g. "28 de agosto de 2026".
func FormatDatePT(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), monthNamesPT[t.Month()], t.Year())
}
