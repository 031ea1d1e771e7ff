// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package destination

import (
	"context"

	"github.com/mia-platform/solar/internal/table"
)

// Sink receives the output table of a dataset.
type Sink interface {
	WriteTable(ctx context.Context, name string, t table.Table) error
}

// Records returns the header followed by one record per row, each cell rendered with its
// exported form; missing cells are empty strings.
func Records(t table.Table) [][]string {
	columns := t.Columns()
	records := make([][]string, 0, t.Len()+1)
	records = append(records, columns)

	for _, row := range t.Rows() {
		record := make([]string, len(columns))
		for i, column := range columns {
			record[i] = row.Get(column).String()
		}
		records = append(records, record)
	}
	return records
}
