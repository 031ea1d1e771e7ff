// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package normalize

import (
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

var (
	// accountingNegative matches numbers written between parenthesis, like (123.5).
	accountingNegative = regexp.MustCompile(`\((\d+(?:\.\d+)?)\)`)

	// dayFirstLayouts are tried in order; the first one that parses wins.
	dayFirstLayouts = expandLayouts(
		[]string{"2/1/2006", "2-1-2006", "2.1.2006"},
		[]string{"", " 15:04", " 15:04:05", " 3:04 PM", " 3:04:05 PM"},
	)
	isoLayouts = []string{
		"2006-01-02",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		time.RFC3339,
	}
)

func expandLayouts(dates, times []string) []string {
	layouts := make([]string, 0, len(dates)*len(times))
	for _, date := range dates {
		for _, clock := range times {
			layouts = append(layouts, date+clock)
		}
	}
	return layouts
}

// ParseNumber converts s with the numeric rule: a lone dash is zero, numbers between
// parenthesis are negative, anything else must be a decimal number. The returned value is
// not valid when s is blank or cannot be parsed.
func ParseNumber(s string) pgtype.Float8 {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return pgtype.Float8{}
	case "-":
		return pgtype.Float8{Float64: 0, Valid: true}
	}

	s = accountingNegative.ReplaceAllString(s, "-$1")
	number, err := decimal.NewFromString(s)
	if err != nil {
		return pgtype.Float8{}
	}

	value, _ := number.Float64()
	return pgtype.Float8{Float64: value, Valid: true}
}

// ParseTimestamp converts s reading dates day first, like 05/03/2024 for the 5th of March.
// ISO dates are accepted too. The returned value is not valid when s is blank or cannot be
// parsed.
func ParseTimestamp(s string) pgtype.Timestamp {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return pgtype.Timestamp{}
	}

	for _, layouts := range [][]string{dayFirstLayouts, isoLayouts} {
		for _, layout := range layouts {
			parsed, err := time.Parse(layout, s)
			if err != nil {
				continue
			}
			return pgtype.Timestamp{Time: wallClock(parsed), Valid: true}
		}
	}

	return pgtype.Timestamp{}
}

// wallClock drops the location of t keeping its date and clock reading.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
