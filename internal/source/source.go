// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mia-platform/solar/internal/config"
	"github.com/mia-platform/solar/internal/diagnostic"
	"github.com/mia-platform/solar/internal/logger"
	"github.com/mia-platform/solar/internal/table"
)

const (
	loggerName = "solar:source"

	// DefaultWorkers is the number of files of a directory parsed at the same time.
	DefaultWorkers = 4

	fileExtension = ".csv"
)

// Source loads datasets from the local filesystem.
type Source struct {
	workers int
}

// New returns a Source parsing at most workers files concurrently. A value lower than one
// selects DefaultWorkers.
func New(workers int) *Source {
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Source{workers: workers}
}

// Load reads the dataset described by dataset. Problems are sent to reporter and never
// returned: the result is an empty table when nothing could be read.
func (s *Source) Load(ctx context.Context, dataset config.DatasetConfig, reporter *diagnostic.Reporter) table.Table {
	log := logger.FromContext(ctx).WithName(loggerName)
	log.Debug("loading dataset", "type", dataset.Kind, "path", dataset.Path, "headerRow", dataset.HeaderRow)

	info, err := os.Stat(dataset.Path)
	if err != nil {
		reporter.Report(ctx, diagnostic.Diagnostic{
			Kind:    diagnostic.MissingSource,
			Path:    dataset.Path,
			Message: "path cannot be read",
			Err:     err,
		})
		return table.Empty()
	}

	var loaded table.Table
	switch dataset.Kind {
	case config.SourceDirectory:
		if !info.IsDir() {
			reporter.Report(ctx, diagnostic.Diagnostic{
				Kind:    diagnostic.MissingSource,
				Path:    dataset.Path,
				Message: "path is not a directory",
			})
			return table.Empty()
		}
		loaded = s.loadDirectory(ctx, dataset, reporter)
	default:
		if info.IsDir() {
			reporter.Report(ctx, diagnostic.Diagnostic{
				Kind:    diagnostic.MissingSource,
				Path:    dataset.Path,
				Message: "path is a directory",
			})
			return table.Empty()
		}
		loaded = loadFile(ctx, dataset.Path, dataset.HeaderRow, reporter)
	}

	log.Info("dataset loaded", "path", dataset.Path, "rows", loaded.Len(), "columns", len(loaded.Columns()))
	return loaded
}

func loadFile(ctx context.Context, path string, headerRow int, reporter *diagnostic.Reporter) table.Table {
	t, err := parseFile(path, headerRow)
	if err != nil {
		reporter.Report(ctx, diagnostic.Diagnostic{
			Kind:    diagnostic.UnparsableFile,
			Path:    path,
			Message: "file skipped",
			Err:     err,
		})
		return table.Empty()
	}
	return t
}

func (s *Source) loadDirectory(ctx context.Context, dataset config.DatasetConfig, reporter *diagnostic.Reporter) table.Table {
	log := logger.FromContext(ctx).WithName(loggerName)

	files, err := listFiles(dataset.Path)
	if err != nil {
		reporter.Report(ctx, diagnostic.Diagnostic{
			Kind:    diagnostic.MissingSource,
			Path:    dataset.Path,
			Message: "directory cannot be listed",
			Err:     err,
		})
		return table.Empty()
	}
	if len(files) == 0 {
		reporter.Report(ctx, diagnostic.Diagnostic{
			Kind:    diagnostic.MissingSource,
			Path:    dataset.Path,
			Message: "no " + fileExtension + " files found",
		})
		return table.Empty()
	}

	log.Debug("parsing directory", "path", dataset.Path, "files", len(files), "workers", s.workers)
	tables := make([]table.Table, len(files))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.workers)
	for i, path := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			tables[i] = loadFile(groupCtx, path, dataset.HeaderRow, reporter)
			log.Trace("file parsed", "path", path, "rows", tables[i].Len())
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		reporter.Report(ctx, diagnostic.Diagnostic{
			Kind:    diagnostic.UnparsableFile,
			Path:    dataset.Path,
			Message: "load interrupted",
			Err:     err,
		})
		return table.Empty()
	}

	return table.Concat(tables...)
}

// listFiles returns the regular files with the csv extension found directly in dir, sorted
// by name.
func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), fileExtension) {
			continue
		}
		if !entry.Type().IsRegular() && !isRegularTarget(filepath.Join(dir, entry.Name())) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

// isRegularTarget follows symbolic links so that linked files are loaded too.
func isRegularTarget(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
