// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package table

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		value           Value
		expectedMissing bool
		expectedString  string
	}{
		"text value": {
			value:          TextValue("P1"),
			expectedString: "P1",
		},
		"empty text is missing": {
			value:           TextValue(""),
			expectedMissing: true,
		},
		"number value": {
			value:          NumberValue(-123.5),
			expectedString: "-123.5",
		},
		"integral number has no decimals": {
			value:          NumberValue(20),
			expectedString: "20",
		},
		"missing number": {
			value:           Missing(KindNumber),
			expectedMissing: true,
		},
		"date only timestamp": {
			value:          TimestampValue(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)),
			expectedString: "2024-03-05",
		},
		"timestamp with time": {
			value:          TimestampValue(time.Date(2024, 3, 5, 8, 30, 0, 0, time.UTC)),
			expectedString: "2024-03-05 08:30:00",
		},
		"missing timestamp": {
			value:           Missing(KindTimestamp),
			expectedMissing: true,
		},
	}

	for testName, test := range testCases {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, test.expectedMissing, test.value.IsMissing())
			assert.Equal(t, test.expectedString, test.value.String())
		})
	}
}

func TestValueAccessors(t *testing.T) {
	t.Parallel()

	f, ok := NumberValue(2).Float()
	assert.True(t, ok)
	assert.InDelta(t, 2.0, f, 0)

	_, ok = TextValue("2").Float()
	assert.False(t, ok)

	s, ok := TextValue("W1").Str()
	assert.True(t, ok)
	assert.Equal(t, "W1", s)

	_, ok = Missing(KindText).Str()
	assert.False(t, ok)

	ts, ok := TimestampValue(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)).Time()
	assert.True(t, ok)
	assert.Equal(t, 2024, ts.Year())

	assert.Equal(t, "Number", KindNumber.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func testTable() Table {
	return New([]string{"a", "b"}, []Row{
		{"a": TextValue("1"), "b": TextValue("x")},
		{"a": TextValue("2"), "b": TextValue("y")},
		{"a": TextValue("1"), "b": TextValue("z")},
	})
}

func TestNewCopiesInput(t *testing.T) {
	t.Parallel()

	rows := []Row{{"a": TextValue("1")}}
	tbl := New([]string{"a"}, rows)
	rows[0]["a"] = TextValue("changed")

	assert.Equal(t, "1", tbl.Row(0).Get("a").String())

	row := tbl.Row(0)
	row["a"] = TextValue("changed")
	assert.Equal(t, "1", tbl.Row(0).Get("a").String())
}

func TestIsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, Empty().IsEmpty())
	assert.True(t, New([]string{"a"}, nil).IsEmpty())
	assert.True(t, New(nil, []Row{{}}).IsEmpty())
	assert.False(t, testTable().IsEmpty())
}

func TestRename(t *testing.T) {
	t.Parallel()

	t.Run("rename mapped columns and keep the others", func(t *testing.T) {
		t.Parallel()

		renamed := testTable().Rename(map[string]string{"a": "A", "unknown": "U"})
		assert.Equal(t, []string{"A", "b"}, renamed.Columns())
		assert.Equal(t, "1", renamed.Row(0).Get("A").String())
		assert.True(t, renamed.Row(0).Get("a").IsMissing())
	})

	t.Run("two columns renamed to the same name merge", func(t *testing.T) {
		t.Parallel()

		tbl := New([]string{"code1", "code2"}, []Row{
			{"code1": TextValue("P1"), "code2": TextValue("")},
			{"code1": TextValue(""), "code2": TextValue("P2")},
			{"code2": TextValue("P3")},
		})
		renamed := tbl.Rename(map[string]string{"code1": "code", "code2": "code"})
		assert.Equal(t, []string{"code"}, renamed.Columns())
		assert.Equal(t, []Value{TextValue("P1"), TextValue("P2"), TextValue("P3")}, renamed.Column("code"))
	})
}

func TestSelect(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		columns         []string
		expectedColumns []string
		expectedLen     int
	}{
		"keeps declared order": {
			columns:         []string{"b", "a"},
			expectedColumns: []string{"b", "a"},
			expectedLen:     3,
		},
		"skips unknown columns": {
			columns:         []string{"c", "a"},
			expectedColumns: []string{"a"},
			expectedLen:     3,
		},
		"no surviving column gives an empty table": {
			columns:         []string{"c"},
			expectedColumns: nil,
			expectedLen:     0,
		},
	}

	for testName, test := range testCases {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			selected := testTable().Select(test.columns)
			assert.Equal(t, test.expectedColumns, selected.Columns())
			assert.Equal(t, test.expectedLen, selected.Len())
		})
	}
}

func TestFilterAndDedup(t *testing.T) {
	t.Parallel()

	filtered := testTable().Filter(func(r Row) bool {
		return r.Get("b").String() != "y"
	})
	require.Equal(t, 2, filtered.Len())
	assert.Equal(t, "x", filtered.Row(0).Get("b").String())
	assert.Equal(t, "z", filtered.Row(1).Get("b").String())

	deduped := testTable().DedupBy("a")
	require.Equal(t, 2, deduped.Len())
	assert.Equal(t, "x", deduped.Row(0).Get("b").String())
	assert.Equal(t, "y", deduped.Row(1).Get("b").String())

	withMissing := New([]string{"a"}, []Row{{}, {"a": TextValue("")}, {"a": TextValue("1")}})
	assert.Equal(t, 2, withMissing.DedupBy("a").Len())
}

func TestMapAndWithColumn(t *testing.T) {
	t.Parallel()

	original := testTable()
	mapped := original.MapColumn("a", func(v Value) Value {
		return TextValue("n" + v.String())
	})
	assert.Equal(t, "n1", mapped.Row(0).Get("a").String())
	assert.Equal(t, "1", original.Row(0).Get("a").String())

	assert.Equal(t, original, original.MapColumn("missing", func(v Value) Value { return v }))

	computed := original.WithColumn("c", func(r Row) Value {
		return TextValue(r.Get("a").String() + r.Get("b").String())
	})
	assert.Equal(t, []string{"a", "b", "c"}, computed.Columns())
	assert.Equal(t, "1x", computed.Row(0).Get("c").String())
	assert.False(t, original.HasColumn("c"))
}

func TestConcat(t *testing.T) {
	t.Parallel()

	first := New([]string{"a", "b"}, []Row{{"a": TextValue("1"), "b": TextValue("x")}})
	second := New([]string{"a", "c"}, []Row{
		{"a": TextValue("2"), "c": TextValue("k")},
		{"a": TextValue("3"), "c": TextValue("j")},
	})

	concatenated := Concat(first, second, Empty())
	assert.Equal(t, []string{"a", "b", "c"}, concatenated.Columns())
	assert.Equal(t, 3, concatenated.Len())
	assert.True(t, concatenated.Row(0).Get("c").IsMissing())
	assert.True(t, concatenated.Row(1).Get("b").IsMissing())
}

func TestLeftJoin(t *testing.T) {
	t.Parallel()

	left := New([]string{"code", "qty"}, []Row{
		{"code": TextValue("P1"), "qty": NumberValue(1)},
		{"code": TextValue("P9"), "qty": NumberValue(2)},
		{"qty": NumberValue(3)},
	})
	right := New([]string{"code", "cbm", "qty"}, []Row{
		{"code": TextValue("P1"), "cbm": NumberValue(2), "qty": NumberValue(100)},
		{"code": TextValue("P1"), "cbm": NumberValue(5)},
	})

	joined, result, err := left.LeftJoin(right, "code", []string{"code", "cbm", "qty", "unknown"})
	require.NoError(t, err)

	assert.Equal(t, []string{"code", "qty", "cbm"}, joined.Columns())
	require.Equal(t, 3, joined.Len())
	assert.Equal(t, NumberValue(2), joined.Row(0).Get("cbm"))
	assert.Equal(t, NumberValue(1), joined.Row(0).Get("qty"))
	assert.Equal(t, Missing(KindNumber), joined.Row(1).Get("cbm"))
	assert.Equal(t, Missing(KindNumber), joined.Row(2).Get("cbm"))
	assert.Equal(t, JoinResult{Matched: 1, Unmatched: 2, DuplicateKeys: 1, Skipped: []string{"qty"}}, result)

	_, _, err = left.LeftJoin(New([]string{"cbm"}, nil), "code", []string{"cbm"})
	var columnErr *MissingColumnError
	require.ErrorAs(t, err, &columnErr)
	assert.Equal(t, "right", columnErr.Side)
	assert.ErrorIs(t, err, ErrMissingColumn)

	_, _, err = New([]string{"qty"}, nil).LeftJoin(right, "code", []string{"cbm"})
	require.ErrorAs(t, err, &columnErr)
	assert.Equal(t, "left", columnErr.Side)
}
