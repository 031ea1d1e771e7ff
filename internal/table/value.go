// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package table

import (
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

//go:generate ${TOOLS_BIN}/stringer -type=Kind -trimprefix Kind
type Kind int

const (
	// KindText is the kind of raw and descriptive cells.
	KindText Kind = iota
	// KindNumber is the kind of cells coerced by the numeric rule.
	KindNumber
	// KindTimestamp is the kind of cells coerced by the temporal rule.
	KindTimestamp
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// Value is a single typed cell. The pgtype value matching Kind carries the data;
// Valid set to false is the missing marker.
type Value struct {
	Kind      Kind
	Text      pgtype.Text
	Number    pgtype.Float8
	Timestamp pgtype.Timestamp
}

// Missing returns the missing marker of the given kind.
func Missing(kind Kind) Value {
	return Value{Kind: kind}
}

// TextValue wraps s in a text cell. The empty string is a missing cell.
func TextValue(s string) Value {
	return Value{Kind: KindText, Text: pgtype.Text{String: s, Valid: s != ""}}
}

// NumberValue wraps f in a numeric cell.
func NumberValue(f float64) Value {
	return Value{Kind: KindNumber, Number: pgtype.Float8{Float64: f, Valid: true}}
}

// TimestampValue wraps t in a temporal cell.
func TimestampValue(t time.Time) Value {
	return Value{Kind: KindTimestamp, Timestamp: pgtype.Timestamp{Time: t, Valid: true}}
}

// FromFloat8 converts a pgtype.Float8 into a numeric cell, keeping its validity.
func FromFloat8(n pgtype.Float8) Value {
	return Value{Kind: KindNumber, Number: n}
}

// FromTimestamp converts a pgtype.Timestamp into a temporal cell, keeping its validity.
func FromTimestamp(ts pgtype.Timestamp) Value {
	return Value{Kind: KindTimestamp, Timestamp: ts}
}

// IsMissing reports whether v holds no value.
func (v Value) IsMissing() bool {
	switch v.Kind {
	case KindNumber:
		return !v.Number.Valid
	case KindTimestamp:
		return !v.Timestamp.Valid
	default:
		return !v.Text.Valid
	}
}

// Str returns the text of a text cell and false for any other kind or a missing cell.
func (v Value) Str() (string, bool) {
	if v.Kind != KindText || !v.Text.Valid {
		return "", false
	}
	return v.Text.String, true
}

// Float returns the number held by a numeric cell.
func (v Value) Float() (float64, bool) {
	if v.Kind != KindNumber || !v.Number.Valid {
		return 0, false
	}
	return v.Number.Float64, true
}

// Time returns the time held by a temporal cell.
func (v Value) Time() (time.Time, bool) {
	if v.Kind != KindTimestamp || !v.Timestamp.Valid {
		return time.Time{}, false
	}
	return v.Timestamp.Time, true
}

// String renders the cell the way it is written in exported files; missing cells are empty.
func (v Value) String() string {
	if v.IsMissing() {
		return ""
	}

	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Number.Float64, 'f', -1, 64)
	case KindTimestamp:
		t := v.Timestamp.Time
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format(dateLayout)
		}
		return t.Format(dateTimeLayout)
	default:
		return v.Text.String
	}
}
