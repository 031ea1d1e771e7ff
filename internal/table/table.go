// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package table

import (
	"slices"
)

// Row maps a column name to its cell. A column absent from the map reads as missing.
type Row map[string]Value

// Get returns the cell stored under column, or a missing text cell when there is none.
func (r Row) Get(column string) Value {
	if v, ok := r[column]; ok {
		return v
	}
	return Missing(KindText)
}

// clone returns a shallow copy of the row; Values are plain structs so this is a full copy.
func (r Row) clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an immutable ordered table.
type Table struct {
	columns []string
	rows    []Row
}

// New builds a table from columns and rows. Both slices are copied.
func New(columns []string, rows []Row) Table {
	copied := make([]Row, len(rows))
	for i, row := range rows {
		copied[i] = row.clone()
	}

	return Table{
		columns: slices.Clone(columns),
		rows:    copied,
	}
}

// Empty returns a table without columns and rows.
func Empty() Table {
	return Table{}
}

// Columns returns a copy of the column names in order.
func (t Table) Columns() []string {
	return slices.Clone(t.columns)
}

// HasColumn reports whether column is part of the table.
func (t Table) HasColumn(column string) bool {
	return slices.Contains(t.columns, column)
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.rows)
}

// IsEmpty reports whether the table has no rows or no columns.
func (t Table) IsEmpty() bool {
	return len(t.rows) == 0 || len(t.columns) == 0
}

// Row returns a copy of the i-th row.
func (t Table) Row(i int) Row {
	return t.rows[i].clone()
}

// Rows returns a copy of every row.
func (t Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	for i, row := range t.rows {
		out[i] = row.clone()
	}
	return out
}

// Column returns the cells of column in row order.
func (t Table) Column(column string) []Value {
	out := make([]Value, len(t.rows))
	for i, row := range t.rows {
		out[i] = row.Get(column)
	}
	return out
}

// Rename renames every column found as a key of mapping. Columns without an entry keep
// their name. When more columns end up with the same name the first one in column order
// keeps its position and, row by row, the first non missing cell wins.
func (t Table) Rename(mapping map[string]string) Table {
	columns := make([]string, 0, len(t.columns))
	targets := make([]string, len(t.columns))
	for i, column := range t.columns {
		target := column
		if renamed, ok := mapping[column]; ok {
			target = renamed
		}
		targets[i] = target
		if !slices.Contains(columns, target) {
			columns = append(columns, target)
		}
	}

	rows := make([]Row, len(t.rows))
	for i, row := range t.rows {
		renamed := make(Row, len(row))
		for j, column := range t.columns {
			value, ok := row[column]
			if !ok {
				continue
			}
			if current, exists := renamed[targets[j]]; exists && !current.IsMissing() {
				continue
			}
			renamed[targets[j]] = value
		}
		rows[i] = renamed
	}

	return Table{columns: columns, rows: rows}
}

// Select keeps only the given columns that exist in the table, in the given order.
// If none of them exists the result has no columns and no rows.
func (t Table) Select(columns []string) Table {
	kept := make([]string, 0, len(columns))
	for _, column := range columns {
		if t.HasColumn(column) && !slices.Contains(kept, column) {
			kept = append(kept, column)
		}
	}

	if len(kept) == 0 {
		return Empty()
	}

	rows := make([]Row, len(t.rows))
	for i, row := range t.rows {
		selected := make(Row, len(kept))
		for _, column := range kept {
			if value, ok := row[column]; ok {
				selected[column] = value
			}
		}
		rows[i] = selected
	}

	return Table{columns: kept, rows: rows}
}

// Filter returns the rows for which keep returns true, in their original order.
func (t Table) Filter(keep func(Row) bool) Table {
	rows := make([]Row, 0, len(t.rows))
	for _, row := range t.rows {
		if keep(row) {
			rows = append(rows, row.clone())
		}
	}

	return Table{columns: slices.Clone(t.columns), rows: rows}
}

// MapColumn replaces every cell of column with the result of fn. A column that is not
// part of the table is left alone.
func (t Table) MapColumn(column string, fn func(Value) Value) Table {
	if !t.HasColumn(column) {
		return t
	}

	rows := make([]Row, len(t.rows))
	for i, row := range t.rows {
		mapped := row.clone()
		mapped[column] = fn(row.Get(column))
		rows[i] = mapped
	}

	return Table{columns: slices.Clone(t.columns), rows: rows}
}

// WithColumn sets column to the value computed by fn for every row, appending the column
// when it does not exist yet.
func (t Table) WithColumn(column string, fn func(Row) Value) Table {
	columns := slices.Clone(t.columns)
	if !slices.Contains(columns, column) {
		columns = append(columns, column)
	}

	rows := make([]Row, len(t.rows))
	for i, row := range t.rows {
		computed := row.clone()
		computed[column] = fn(row)
		rows[i] = computed
	}

	return Table{columns: columns, rows: rows}
}

// DedupBy keeps the first row for each distinct value of column. Missing keys are all
// considered equal to each other.
func (t Table) DedupBy(column string) Table {
	seen := make(map[string]struct{}, len(t.rows))
	missingSeen := false

	rows := make([]Row, 0, len(t.rows))
	for _, row := range t.rows {
		key := row.Get(column)
		if key.IsMissing() {
			if missingSeen {
				continue
			}
			missingSeen = true
			rows = append(rows, row.clone())
			continue
		}

		if _, ok := seen[key.String()]; ok {
			continue
		}
		seen[key.String()] = struct{}{}
		rows = append(rows, row.clone())
	}

	return Table{columns: slices.Clone(t.columns), rows: rows}
}

// Concat appends the rows of every table in order. The resulting columns are the union of
// all columns, in order of first appearance; rows lacking a column read it as missing.
func Concat(tables ...Table) Table {
	columns := make([]string, 0)
	total := 0
	for _, t := range tables {
		total += len(t.rows)
		for _, column := range t.columns {
			if !slices.Contains(columns, column) {
				columns = append(columns, column)
			}
		}
	}

	rows := make([]Row, 0, total)
	for _, t := range tables {
		for _, row := range t.rows {
			rows = append(rows, row.clone())
		}
	}

	return Table{columns: columns, rows: rows}
}
