// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package csvfile implements a destination that exports every table as a comma separated
// file named after its dataset, with the canonical column names as header.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mia-platform/solar/internal/destination"
	"github.com/mia-platform/solar/internal/logger"
	"github.com/mia-platform/solar/internal/table"
)

const (
	loggerName = "solar:destination:csv"

	fileExtension = ".csv"
)

var _ destination.Sink = &csvDestination{}

type csvDestination struct {
	dir string
}

// NewDestination returns a destination writing files inside dir, created when missing.
func NewDestination(dir string) destination.Sink {
	return &csvDestination{dir: dir}
}

// Path returns the file written for the dataset name inside dir.
func Path(dir, name string) string {
	return filepath.Join(dir, name+fileExtension)
}

// WriteTable replaces the file of name with the content of t. The file is written next to
// its final path and renamed once complete, so a failed export never leaves a partial file.
func (d *csvDestination) WriteTable(ctx context.Context, name string, t table.Table) error {
	log := logger.FromContext(ctx).WithName(loggerName)

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	file, err := os.CreateTemp(d.dir, "."+name+"-*"+fileExtension)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer os.Remove(file.Name())

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(destination.Records(t)); err != nil {
		file.Close()
		return fmt.Errorf("writing %q: %w", name, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("writing %q: %w", name, err)
	}

	path := Path(d.dir, name)
	if err := os.Rename(file.Name(), path); err != nil {
		return fmt.Errorf("writing %q: %w", name, err)
	}

	log.Info("table exported", "dataset", name, "path", path, "rows", t.Len())
	return nil
}
