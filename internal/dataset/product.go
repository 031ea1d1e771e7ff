// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package dataset

import (
	"github.com/mia-platform/solar/internal/pipeline"
	"github.com/mia-platform/solar/internal/table"
)

// ProductHooks returns the hooks of the product master: rows without a product code are
// dropped and, for every code, only the first row in load order is kept.
func ProductHooks() pipeline.Hooks {
	return pipeline.Hooks{
		Filter: filterProducts,
	}
}

func filterProducts(t table.Table) table.Table {
	return t.Filter(hasValue(ColumnProduct)).DedupBy(ColumnProduct)
}

// hasValue returns a row predicate that is true when column holds a value.
func hasValue(column string) func(table.Row) bool {
	return func(row table.Row) bool {
		return !row.Get(column).IsMissing()
	}
}
