// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mia-platform/solar/internal/table"
)

// newDecoder strips a leading byte order mark, converting UTF-16 input when one is found,
// and fails on byte sequences that are not valid UTF-8.
func newDecoder(r io.Reader) io.Reader {
	return transform.NewReader(r, transform.Chain(
		unicode.BOMOverride(transform.Nop),
		encoding.UTF8Validator,
	))
}

// parseFile reads the file at path skipping headerRow records before the header.
func parseFile(path string, headerRow int) (table.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return table.Empty(), &FileError{Path: path, Err: err}
	}
	defer file.Close()

	reader := csv.NewReader(newDecoder(file))
	reader.FieldsPerRecord = -1

	t, err := readTable(reader, headerRow)
	if err != nil {
		fileErr := &FileError{Path: path, Err: err}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			fileErr.Line = parseErr.Line
			fileErr.Err = parseErr.Err
		}
		var lineErr *recordError
		if errors.As(err, &lineErr) {
			fileErr.Line = lineErr.line
			fileErr.Err = lineErr.err
		}
		return table.Empty(), fileErr
	}

	return t, nil
}

// recordError ties a structural problem to the line where the record starts.
type recordError struct {
	line int
	err  error
}

func (e *recordError) Error() string {
	return fmt.Sprintf("line %d: %s", e.line, e.err)
}

func (e *recordError) Unwrap() error {
	return e.err
}

func readTable(reader *csv.Reader, headerRow int) (table.Table, error) {
	for range headerRow {
		if _, err := reader.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return table.Empty(), errMissingHeader
			}
			return table.Empty(), err
		}
	}

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return table.Empty(), errMissingHeader
		}
		return table.Empty(), err
	}
	columns := headerColumns(header)

	rows := make([]table.Row, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return table.Empty(), err
		}
		if isBlank(record) {
			continue
		}
		if len(record) > len(columns) {
			line, _ := reader.FieldPos(0)
			return table.Empty(), &recordError{line: line, err: errTooManyFields}
		}

		row := make(table.Row, len(columns))
		for i, cell := range record {
			row[columns[i]] = table.TextValue(norm.NFC.String(cell))
		}
		rows = append(rows, row)
	}

	return table.New(columns, rows), nil
}

// headerColumns normalizes header cells to NFC and makes them unique: empty cells are named
// after their position and repeated names get a numeric suffix.
func headerColumns(header []string) []string {
	columns := make([]string, 0, len(header))
	for i, cell := range header {
		base := norm.NFC.String(cell)
		if strings.TrimSpace(base) == "" {
			base = "Unnamed: " + strconv.Itoa(i)
		}

		name := base
		for suffix := 1; slices.Contains(columns, name); suffix++ {
			name = base + "." + strconv.Itoa(suffix)
		}
		columns = append(columns, name)
	}
	return columns
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
