// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package dataset

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mia-platform/solar/internal/table"
)

// Anchor tells where a pattern has to be found inside a value.
type Anchor int

const (
	// Anywhere matches the pattern as a substring.
	Anywhere Anchor = iota
	// AtStart matches the pattern only as a prefix.
	AtStart
)

// Pattern is a literal string with its anchor.
type Pattern struct {
	Literal string
	Anchor  Anchor
}

// Contains returns a pattern matching literal anywhere in a value.
func Contains(literal string) Pattern {
	return Pattern{Literal: literal, Anchor: Anywhere}
}

// Prefix returns a pattern matching values that start with literal.
func Prefix(literal string) Pattern {
	return Pattern{Literal: literal, Anchor: AtStart}
}

// MatchString reports whether s matches the pattern. Matching is case sensitive.
func (p Pattern) MatchString(s string) bool {
	if p.Anchor == AtStart {
		return strings.HasPrefix(s, p.Literal)
	}
	return strings.Contains(s, p.Literal)
}

// DenyList is a list of patterns; a value matching any of them is denied.
type DenyList []Pattern

// MatchString reports whether s matches at least one pattern.
func (d DenyList) MatchString(s string) bool {
	for _, pattern := range d {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// Match reports whether the text cell v matches at least one pattern. Missing cells and
// cells that are not text never match.
func (d DenyList) Match(v table.Value) bool {
	s, ok := v.Str()
	return ok && d.MatchString(s)
}

var (
	// WarehouseDenyList excludes warehouses used for stock counts, online sales, gifts and
	// other movements that are not outbound shipments.
	WarehouseDenyList = DenyList{
		Contains("GTEX01"),
		Contains("HP01"),
		Contains("HPKGHCM"),
		Contains("HPKGHNI"),
		Prefix("KK"),
		Contains("KIEMKE"),
		Contains("ONL"),
		Contains("KHOSG"),
	}

	// TypeDenyList excludes combo assembly and disassembly movements.
	TypeDenyList = DenyList{
		Contains("Xuất tạo Combo"),
		Contains("Xuất hủy Combo"),
	}

	// DescriptionDenyList is matched against the lower cased description of OtherOutboundType
	// rows to recognize internal movements.
	DescriptionDenyList = DenyList{
		Contains("điều chuyển"),
		Contains("chênh lệch"),
		Contains("ddhh"),
		Contains("sticker"),
		Contains("thiếu cont"),
		Contains("ycdg"),
		Contains("ycđg"),
		Contains("yêu cầu đóng gói"),
		Contains("yêu cầu rã"),
		Contains("yêu cầu xả"),
		Contains("combo"),
		Contains("xử lý số liệu chênh lệch"),
	}
)

const (
	// OtherOutboundType is the transaction type whose description is checked against
	// DescriptionDenyList.
	OtherOutboundType = "Xuất khác"
	// VoidedSuffix marks voided transaction types.
	VoidedSuffix = "Hủy"
)

// lower returns s lower cased with the Vietnamese rules.
func lower(s string) string {
	return cases.Lower(language.Vietnamese).String(s)
}

// IsVoided reports whether the transaction type v ends with VoidedSuffix regardless of case.
func IsVoided(v table.Value) bool {
	s, ok := v.Str()
	return ok && strings.HasSuffix(lower(strings.TrimSpace(s)), lower(VoidedSuffix))
}

// IsInternalMovement reports whether a row is an OtherOutboundType transaction whose
// description matches DescriptionDenyList regardless of case.
func IsInternalMovement(transactionType, description table.Value) bool {
	kind, ok := transactionType.Str()
	if !ok || kind != OtherOutboundType {
		return false
	}

	text, ok := description.Str()
	return ok && DescriptionDenyList.MatchString(lower(text))
}
