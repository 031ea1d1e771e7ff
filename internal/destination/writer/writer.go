// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package writer

import (
	"context"
	"fmt"
	"io"
	"sync"

	prettytable "github.com/jedib0t/go-pretty/v6/table"

	"github.com/mia-platform/solar/internal/destination"
	"github.com/mia-platform/solar/internal/table"
)

// Format selects how tables are rendered.
type Format string

const (
	FormatTable    Format = "table"
	FormatMarkdown Format = "markdown"
)

var _ destination.Sink = &writerDestination{}

type writerDestination struct {
	writer  io.Writer
	format  Format
	maxRows int

	lock sync.Mutex
}

// NewDestination returns a destination rendering at most maxRows rows of every table on w.
// A maxRows lower than one renders every row.
func NewDestination(w io.Writer, format Format, maxRows int) destination.Sink {
	return &writerDestination{
		writer:  w,
		format:  format,
		maxRows: maxRows,
	}
}

func (d *writerDestination) WriteTable(_ context.Context, name string, t table.Table) error {
	records := destination.Records(t)
	header, rows := records[0], records[1:]
	if len(header) == 0 {
		d.lock.Lock()
		defer d.lock.Unlock()
		_, err := fmt.Fprintf(d.writer, "%s\n(0 rows)\n\n", name)
		return err
	}

	truncated := 0
	if d.maxRows > 0 && len(rows) > d.maxRows {
		truncated = len(rows) - d.maxRows
		rows = rows[:d.maxRows]
	}

	writer := prettytable.NewWriter()
	writer.SetTitle(name)
	writer.SetStyle(prettytable.StyleLight)
	writer.AppendHeader(toRow(header))
	for _, record := range rows {
		writer.AppendRow(toRow(record))
	}

	var rendered string
	switch d.format {
	case FormatMarkdown:
		rendered = writer.RenderMarkdown()
	default:
		rendered = writer.Render()
	}

	d.lock.Lock()
	defer d.lock.Unlock()
	if _, err := fmt.Fprintln(d.writer, rendered); err != nil {
		return err
	}
	if truncated > 0 {
		_, err := fmt.Fprintf(d.writer, "(%d rows, %d not shown)\n\n", t.Len(), truncated)
		return err
	}
	_, err := fmt.Fprintf(d.writer, "(%d rows)\n\n", t.Len())
	return err
}

func toRow(record []string) prettytable.Row {
	row := make(prettytable.Row, len(record))
	for i, cell := range record {
		row[i] = cell
	}
	return row
}
