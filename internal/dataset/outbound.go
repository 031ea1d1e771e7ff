// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package dataset

import (
	"context"
	"errors"
	"fmt"

	"github.com/mia-platform/solar/internal/logger"
	"github.com/mia-platform/solar/internal/pipeline"
	"github.com/mia-platform/solar/internal/table"
)

const (
	loggerName = "solar:dataset"

	monthLayout = "2006-01"
)

// OutboundHooks returns the hooks of the outbound transactions, enriched with the product
// and warehouse reference tables.
func OutboundHooks(products, warehouses table.Table) pipeline.Hooks {
	return pipeline.Hooks{
		Filter: filterOutbound,
		Merge: func(ctx context.Context, t table.Table) (table.Table, error) {
			return mergeReferences(ctx, t, products, warehouses)
		},
		Derive: deriveOutbound,
	}
}

func filterOutbound(t table.Table) table.Table {
	return t.Filter(KeepOutbound)
}

// KeepOutbound reports whether an outbound row is a real shipment: it needs a proposal
// reference, a warehouse and a transaction type outside the deny lists, and it must be
// neither voided nor an internal movement. Missing cells never match a deny list.
func KeepOutbound(row table.Row) bool {
	transactionType := row.Get(ColumnType)

	switch {
	case row.Get(ColumnProposal).IsMissing():
		return false
	case WarehouseDenyList.Match(row.Get(ColumnWarehouse)):
		return false
	case TypeDenyList.Match(transactionType):
		return false
	case IsVoided(transactionType):
		return false
	case IsInternalMovement(transactionType, row.Get(ColumnDescription)):
		return false
	default:
		return true
	}
}

// mergeReferences left joins t with the product and then the warehouse reference. A join
// that cannot run is skipped and its error returned together with the other joins result.
func mergeReferences(ctx context.Context, t table.Table, products, warehouses table.Table) (table.Table, error) {
	log := logger.FromContext(ctx).WithName(loggerName)

	references := []struct {
		name    string
		table   table.Table
		key     string
		columns []string
	}{
		{name: "product", table: products, key: ColumnProduct, columns: ProductMergeColumns},
		{name: "warehouse", table: warehouses, key: ColumnWarehouse, columns: WarehouseMergeColumns},
	}

	var errs []error
	for _, reference := range references {
		merged, result, err := t.LeftJoin(reference.table, reference.key, reference.columns)
		if err != nil {
			log.Warn("reference merge skipped", "reference", reference.name, "error", err)
			errs = append(errs, fmt.Errorf("%s reference: %w", reference.name, err))
			continue
		}

		log.Debug("reference merged",
			"reference", reference.name,
			"matched", result.Matched,
			"unmatched", result.Unmatched,
			"duplicateKeys", result.DuplicateKeys,
			"skippedColumns", result.Skipped,
		)
		t = merged
	}

	return t, errors.Join(errs...)
}

func deriveOutbound(t table.Table) table.Table {
	return t.
		WithColumn(ColumnTotalVolume, totalVolume).
		WithColumn(ColumnMonth, month)
}

// totalVolume multiplies quantity and unit volume; a missing operand gives a missing total.
func totalVolume(row table.Row) table.Value {
	quantity, ok := row.Get(ColumnQuantity).Float()
	if !ok {
		return table.Missing(table.KindNumber)
	}
	unitVolume, ok := row.Get(ColumnUnitVolume).Float()
	if !ok {
		return table.Missing(table.KindNumber)
	}
	return table.NumberValue(quantity * unitVolume)
}

// month formats the transaction date as YYYY-MM; a missing date gives a missing month.
func month(row table.Row) table.Value {
	date, ok := row.Get(ColumnDate).Time()
	if !ok {
		return table.Missing(table.KindText)
	}
	return table.TextValue(date.Format(monthLayout))
}
