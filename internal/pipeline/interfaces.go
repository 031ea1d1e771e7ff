// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package pipeline

import (
	"context"

	"github.com/mia-platform/solar/internal/config"
	"github.com/mia-platform/solar/internal/diagnostic"
	"github.com/mia-platform/solar/internal/table"
)

// TableSource defines the interface for a component that reads the raw table of a dataset.
// Problems must be sent to the reporter; an unreadable dataset yields an empty table.
type TableSource interface {
	Load(ctx context.Context, dataset config.DatasetConfig, reporter *diagnostic.Reporter) table.Table
}

// ColumnNormalizer defines the interface for a component that renames, restricts and coerces
// the columns of a raw table without ever dropping a row.
type ColumnNormalizer interface {
	Normalize(ctx context.Context, raw table.Table, keep []string, reporter *diagnostic.Reporter) table.Table
}

// Hooks are the dataset specific steps run on a non empty normalized table, in field order.
// A nil hook leaves the table unchanged.
type Hooks struct {
	// Filter drops the rows that must not reach the output. It must never add rows.
	Filter func(t table.Table) table.Table
	// Merge enriches the table with reference data. On error the failure is reported as
	// ReferenceKeyMissing and the returned table, possibly partially merged, is used unless
	// it has no columns.
	Merge func(ctx context.Context, t table.Table) (table.Table, error)
	// Derive adds computed columns. It must not remove or rename existing columns.
	Derive func(t table.Table) table.Table
}
