// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package table

import (
	"errors"
	"fmt"
	"slices"
)

// ErrMissingColumn is wrapped by MissingColumnError.
var ErrMissingColumn = errors.New("missing column")

// Ensure MissingColumnError implements the error interface.
var _ error = &MissingColumnError{}

// MissingColumnError reports a join key that is not part of one of the joined tables.
type MissingColumnError struct {
	Column string
	Side   string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: %q not found in %s table", ErrMissingColumn, e.Column, e.Side)
}

func (e *MissingColumnError) Unwrap() error {
	return ErrMissingColumn
}

// JoinResult describes how a left join went, for logging purposes.
type JoinResult struct {
	Matched       int
	Unmatched     int
	DuplicateKeys int
	Skipped       []string
}

// LeftJoin brings the given columns of right into t, matching rows where the key column
// holds the same value. Every row of t is kept exactly once: when right has more rows for
// the same key the first one is used, rows without a match get missing cells, and missing
// keys never match. Columns already present in t are not overwritten and are listed in
// JoinResult.Skipped.
func (t Table) LeftJoin(right Table, key string, columns []string) (Table, JoinResult, error) {
	var result JoinResult
	if !t.HasColumn(key) {
		return t, result, &MissingColumnError{Column: key, Side: "left"}
	}
	if !right.HasColumn(key) {
		return t, result, &MissingColumnError{Column: key, Side: "right"}
	}

	joined := make([]string, 0, len(columns))
	for _, column := range columns {
		switch {
		case column == key, !right.HasColumn(column), slices.Contains(joined, column):
			continue
		case t.HasColumn(column):
			result.Skipped = append(result.Skipped, column)
			continue
		}
		joined = append(joined, column)
	}

	index := make(map[string]Row, right.Len())
	for _, row := range right.rows {
		value := row.Get(key)
		if value.IsMissing() {
			continue
		}
		if _, ok := index[value.String()]; ok {
			result.DuplicateKeys++
			continue
		}
		index[value.String()] = row
	}

	kinds := make(map[string]Kind, len(joined))
	for _, column := range joined {
		kinds[column] = right.columnKind(column)
	}

	rows := make([]Row, len(t.rows))
	for i, row := range t.rows {
		out := row.clone()
		value := row.Get(key)

		match, ok := index[value.String()]
		if value.IsMissing() || !ok {
			result.Unmatched++
			for _, column := range joined {
				out[column] = Missing(kinds[column])
			}
			rows[i] = out
			continue
		}

		result.Matched++
		for _, column := range joined {
			cell, ok := match[column]
			if !ok {
				cell = Missing(kinds[column])
			}
			out[column] = cell
		}
		rows[i] = out
	}

	return Table{columns: append(slices.Clone(t.columns), joined...), rows: rows}, result, nil
}

// columnKind returns the kind of the first cell stored for column, defaulting to text.
func (t Table) columnKind(column string) Kind {
	for _, row := range t.rows {
		if value, ok := row[column]; ok {
			return value.Kind
		}
	}
	return KindText
}
