// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package normalize turns raw tables into tables with canonical column names and typed cells.
package normalize

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/mia-platform/solar/internal/config"
	"github.com/mia-platform/solar/internal/diagnostic"
	"github.com/mia-platform/solar/internal/logger"
	"github.com/mia-platform/solar/internal/table"
)

const (
	loggerName = "solar:normalize"
)

// Normalizer applies the rename, keep and coercion steps in this order.
type Normalizer struct {
	rename   map[string]string
	numeric  []string
	temporal []string
}

// New builds a Normalizer from the shared column configuration. Rename keys are compared
// with raw headers after NFC normalization.
func New(columns config.ColumnsConfig) *Normalizer {
	rename := make(map[string]string, len(columns.Rename))
	for raw, canonical := range columns.Rename {
		rename[norm.NFC.String(raw)] = canonical
	}

	return &Normalizer{
		rename:   rename,
		numeric:  slices.Clone(columns.Numeric),
		temporal: slices.Clone(columns.Temporal),
	}
}

// Normalize renames the columns of raw, keeps the ones listed in keep in that order and
// coerces the numeric and temporal columns. An empty keep list keeps every column. When no
// listed column survives the result is an empty table and a SchemaMismatch is reported.
// The row count never changes.
func (n *Normalizer) Normalize(ctx context.Context, raw table.Table, keep []string, reporter *diagnostic.Reporter) table.Table {
	log := logger.FromContext(ctx).WithName(loggerName)
	if raw.IsEmpty() {
		log.Debug("table is empty, skipping normalization")
		return raw
	}

	renamed := n.renameColumns(ctx, raw)

	kept, ok := n.keepColumns(ctx, renamed, keep, reporter)
	if !ok {
		return kept
	}

	return n.coerceColumns(ctx, kept, reporter)
}

func (n *Normalizer) renameColumns(ctx context.Context, raw table.Table) table.Table {
	log := logger.FromContext(ctx).WithName(loggerName)

	applicable := make(map[string]string)
	for _, column := range raw.Columns() {
		if canonical, ok := n.rename[column]; ok {
			applicable[column] = canonical
		}
	}

	if len(applicable) == 0 {
		log.Debug("no column to rename")
		return raw
	}

	log.Trace("renaming columns", "count", len(applicable))
	return raw.Rename(applicable)
}

func (n *Normalizer) keepColumns(ctx context.Context, renamed table.Table, keep []string, reporter *diagnostic.Reporter) (table.Table, bool) {
	log := logger.FromContext(ctx).WithName(loggerName)
	if len(keep) == 0 {
		log.Debug("no columns to keep declared, keeping every column")
		return renamed, true
	}

	kept := renamed.Select(keep)
	if len(kept.Columns()) == 0 {
		reporter.Report(ctx, diagnostic.Diagnostic{
			Kind:    diagnostic.SchemaMismatch,
			Message: fmt.Sprintf("none of the columns %s is present", strings.Join(keep, ", ")),
		})
		return table.Empty(), false
	}

	if missing := len(keep) - len(kept.Columns()); missing > 0 {
		log.Debug("some declared columns are not present", "missing", missing)
	}
	return kept, true
}

func (n *Normalizer) coerceColumns(ctx context.Context, t table.Table, reporter *diagnostic.Reporter) table.Table {
	for _, column := range n.numeric {
		t = coerceColumn(ctx, t, column, table.KindNumber, numberCell, reporter)
	}
	for _, column := range n.temporal {
		t = coerceColumn(ctx, t, column, table.KindTimestamp, timestampCell, reporter)
	}
	return t
}

// coerceColumn converts every text cell of column with parse. Cells already of kind are
// left untouched; cells that hold text but cannot be parsed become missing and are counted
// in a single CoercionFailure diagnostic.
func coerceColumn(ctx context.Context, t table.Table, column string, kind table.Kind, parse func(string) table.Value, reporter *diagnostic.Reporter) table.Table {
	if !t.HasColumn(column) {
		return t
	}

	log := logger.FromContext(ctx).WithName(loggerName)
	log.Trace("converting column", "column", column, "kind", kind.String())

	failures := 0
	sample := ""
	coerced := t.MapColumn(column, func(v table.Value) table.Value {
		if v.Kind == kind {
			return v
		}

		text := v.String()
		parsed := parse(text)
		if parsed.IsMissing() && strings.TrimSpace(text) != "" {
			if failures == 0 {
				sample = text
			}
			failures++
		}
		return parsed
	})

	if failures > 0 {
		reporter.Report(ctx, diagnostic.Diagnostic{
			Kind:    diagnostic.CoercionFailure,
			Column:  column,
			Message: fmt.Sprintf("%d cells cannot be read as %s and became missing, first one is %q", failures, kind, sample),
		})
	}

	return coerced
}

func numberCell(s string) table.Value {
	return table.FromFloat8(ParseNumber(s))
}

func timestampCell(s string) table.Value {
	return table.FromTimestamp(ParseTimestamp(s))
}
