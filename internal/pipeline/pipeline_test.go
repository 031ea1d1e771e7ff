// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/solar/internal/config"
	"github.com/mia-platform/solar/internal/diagnostic"
	"github.com/mia-platform/solar/internal/normalize"
	"github.com/mia-platform/solar/internal/table"
)

// staticSource returns the same table on every load and counts the calls.
type staticSource struct {
	table       table.Table
	diagnostics []diagnostic.Diagnostic
	calls       int
}

func (s *staticSource) Load(ctx context.Context, _ config.DatasetConfig, reporter *diagnostic.Reporter) table.Table {
	s.calls++
	for _, d := range s.diagnostics {
		reporter.Report(ctx, d)
	}
	return s.table
}

func rawProducts() table.Table {
	return table.New([]string{"PRODUCT CODE", "CBM/Unit"}, []table.Row{
		{"PRODUCT CODE": table.TextValue("P1"), "CBM/Unit": table.TextValue("2")},
		{"PRODUCT CODE": table.TextValue("P2"), "CBM/Unit": table.TextValue("(1.5)")},
		{"PRODUCT CODE": table.TextValue(""), "CBM/Unit": table.TextValue("3")},
	})
}

func testNormalizer() ColumnNormalizer {
	return normalize.New(config.ColumnsConfig{
		Rename:  map[string]string{"PRODUCT CODE": "MaSanPham", "CBM/Unit": "CBM_Unit"},
		Numeric: []string{"CBM_Unit"},
	})
}

func TestProcess(t *testing.T) {
	t.Parallel()

	dataset := config.DatasetConfig{Kind: config.SourceFile, Path: "dmsp.csv", KeepColumns: []string{"MaSanPham", "CBM_Unit"}}
	calls := make([]string, 0)
	hooks := Hooks{
		Filter: func(t table.Table) table.Table {
			calls = append(calls, "filter")
			return t.Filter(func(row table.Row) bool { return !row.Get("MaSanPham").IsMissing() })
		},
		Merge: func(_ context.Context, t table.Table) (table.Table, error) {
			calls = append(calls, "merge")
			return t.WithColumn("TenKho", func(table.Row) table.Value { return table.TextValue("Warehouse One") }), nil
		},
		Derive: func(t table.Table) table.Table {
			calls = append(calls, "derive")
			return t.WithColumn("Double", func(row table.Row) table.Value {
				value, ok := row.Get("CBM_Unit").Float()
				if !ok {
					return table.Missing(table.KindNumber)
				}
				return table.NumberValue(value * 2)
			})
		},
	}

	source := &staticSource{table: rawProducts()}
	pipeline := New(config.DatasetProduct, dataset, source, testNormalizer(), hooks)
	assert.Equal(t, Unloaded, pipeline.State())
	assert.Equal(t, config.DatasetProduct, pipeline.Name())

	result := pipeline.Process(t.Context())
	assert.Equal(t, config.DatasetProduct, result.Dataset)
	assert.Equal(t, Finalized, result.State)
	assert.Equal(t, Finalized, pipeline.State())
	assert.Empty(t, result.Diagnostics)
	assert.Equal(t, []string{"filter", "merge", "derive"}, calls)
	assert.Equal(t, []string{"MaSanPham", "CBM_Unit", "TenKho", "Double"}, result.Table.Columns())
	require.Equal(t, 2, result.Table.Len())
	assert.Equal(t, []table.Value{table.NumberValue(4), table.NumberValue(-3)}, result.Table.Column("Double"))

	// a second run starts again from the source
	again := pipeline.Process(t.Context())
	assert.Equal(t, 2, source.calls)
	assert.Equal(t, result.Table, again.Table)
	assert.Equal(t, []string{"filter", "merge", "derive", "filter", "merge", "derive"}, calls)
}

func TestProcessSkipsHooksOnEmptyTables(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		source        *staticSource
		keep          []string
		expectedState State
		expectedKinds []diagnostic.Kind
	}{
		"nothing loaded": {
			source: &staticSource{
				table:       table.Empty(),
				diagnostics: []diagnostic.Diagnostic{{Kind: diagnostic.MissingSource, Path: "missing.csv"}},
			},
			keep:          []string{"MaSanPham"},
			expectedState: Loaded,
			expectedKinds: []diagnostic.Kind{diagnostic.MissingSource},
		},
		"header without rows": {
			source:        &staticSource{table: table.New([]string{"PRODUCT CODE"}, nil)},
			keep:          []string{"MaSanPham"},
			expectedState: Loaded,
		},
		"no declared column survives": {
			source:        &staticSource{table: rawProducts()},
			keep:          []string{"TenKho"},
			expectedState: Normalized,
			expectedKinds: []diagnostic.Kind{diagnostic.SchemaMismatch},
		},
	}

	for testName, test := range testCases {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			hooks := Hooks{
				Filter: func(table.Table) table.Table {
					t.Fatal("filter must not be called")
					return table.Empty()
				},
				Merge: func(context.Context, table.Table) (table.Table, error) {
					t.Fatal("merge must not be called")
					return table.Empty(), nil
				},
				Derive: func(table.Table) table.Table {
					t.Fatal("derive must not be called")
					return table.Empty()
				},
			}

			dataset := config.DatasetConfig{Kind: config.SourceFile, Path: "dmsp.csv", KeepColumns: test.keep}
			result := New("dmsp", dataset, test.source, testNormalizer(), hooks).Process(t.Context())

			assert.Equal(t, test.expectedState, result.State)
			assert.True(t, result.Table.IsEmpty())
			kinds := make([]diagnostic.Kind, 0)
			for _, d := range result.Diagnostics {
				kinds = append(kinds, d.Kind)
				assert.Equal(t, "dmsp", d.Dataset)
			}
			assert.ElementsMatch(t, test.expectedKinds, kinds)
		})
	}
}

func TestProcessMergeFailure(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		merged          table.Table
		expectedColumns []string
	}{
		"partially merged table is kept": {
			merged: table.New([]string{"MaSanPham", "CBM_Unit", "TenKho"}, []table.Row{
				{"MaSanPham": table.TextValue("P1")},
			}),
			expectedColumns: []string{"MaSanPham", "CBM_Unit", "TenKho", "Derived"},
		},
		"empty result falls back to the input": {
			merged:          table.Empty(),
			expectedColumns: []string{"MaSanPham", "CBM_Unit", "Derived"},
		},
	}

	for testName, test := range testCases {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			derived := false
			hooks := Hooks{
				Merge: func(context.Context, table.Table) (table.Table, error) {
					return test.merged, &table.MissingColumnError{Column: "MaSanPham", Side: "right"}
				},
				Derive: func(t table.Table) table.Table {
					derived = true
					return t.WithColumn("Derived", func(table.Row) table.Value { return table.TextValue("x") })
				},
			}

			dataset := config.DatasetConfig{Kind: config.SourceFile, Path: "outbound.csv"}
			result := New("outbound", dataset, &staticSource{table: rawProducts()}, testNormalizer(), hooks).Process(t.Context())

			assert.True(t, derived)
			assert.Equal(t, Finalized, result.State)
			assert.Equal(t, test.expectedColumns, result.Table.Columns())
			require.Len(t, result.Diagnostics, 1)
			assert.Equal(t, diagnostic.ReferenceKeyMissing, result.Diagnostics[0].Kind)
			assert.ErrorIs(t, &result.Diagnostics[0], table.ErrMissingColumn)
			assert.ErrorIs(t, &result.Diagnostics[0], diagnostic.ErrReferenceKeyMissing)
		})
	}
}

func TestProcessIgnoresBrokenHooks(t *testing.T) {
	t.Parallel()

	hooks := Hooks{
		Filter: func(t table.Table) table.Table {
			return table.Concat(t, t)
		},
		Derive: func(t table.Table) table.Table {
			return t.Select([]string{"CBM_Unit"})
		},
	}

	dataset := config.DatasetConfig{Kind: config.SourceFile, Path: "dmsp.csv"}
	result := New("dmsp", dataset, &staticSource{table: rawProducts()}, testNormalizer(), hooks).Process(t.Context())

	assert.Equal(t, Finalized, result.State)
	assert.Equal(t, 3, result.Table.Len())
	assert.Equal(t, []string{"MaSanPham", "CBM_Unit"}, result.Table.Columns())
}

func TestStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Unloaded", Unloaded.String())
	assert.Equal(t, "Finalized", Finalized.String())
	assert.Equal(t, "State(7)", State(7).String())
}
