// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mia-platform/solar/internal/config"
	"github.com/mia-platform/solar/internal/diagnostic"
	"github.com/mia-platform/solar/internal/logger"
	"github.com/mia-platform/solar/internal/table"
)

const (
	loggerName = "solar:pipeline"
)

var (
	errRowsAdded      = errors.New("rows added by a filter")
	errColumnsRemoved = errors.New("existing columns removed")
)

// Result is the outcome of a Process call.
type Result struct {
	Dataset     string
	State       State
	Table       table.Table
	Diagnostics []diagnostic.Diagnostic
}

// Pipeline runs source, normalizer and hooks for one dataset.
type Pipeline struct {
	name       string
	dataset    config.DatasetConfig
	source     TableSource
	normalizer ColumnNormalizer
	hooks      Hooks

	lock  sync.Mutex
	state State
}

// New returns a Pipeline for the dataset called name.
func New(name string, dataset config.DatasetConfig, source TableSource, normalizer ColumnNormalizer, hooks Hooks) *Pipeline {
	return &Pipeline{
		name:       name,
		dataset:    dataset,
		source:     source,
		normalizer: normalizer,
		hooks:      hooks,
	}
}

// Name returns the dataset name of the pipeline.
func (p *Pipeline) Name() string {
	return p.name
}

// State returns the state reached by the last Process call.
func (p *Pipeline) State() State {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.state
}

func (p *Pipeline) setState(state State) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.state = state
}

// Process runs every step from scratch. When the loaded or the normalized table is empty
// the remaining steps are skipped and the empty table is returned with the state reached.
func (p *Pipeline) Process(ctx context.Context) Result {
	ctx = logger.WithFields(ctx, "dataset", p.name)
	log := logger.FromContext(ctx).WithName(loggerName)
	reporter := diagnostic.NewReporter(p.name)

	result := func(t table.Table) Result {
		return Result{
			Dataset:     p.name,
			State:       p.State(),
			Table:       t,
			Diagnostics: reporter.Diagnostics(),
		}
	}

	p.setState(Unloaded)
	log.Debug("starting pipeline")

	loaded := p.source.Load(ctx, p.dataset, reporter)
	p.setState(Loaded)
	if loaded.IsEmpty() {
		log.Warn("no data loaded, skipping remaining steps")
		return result(loaded)
	}

	normalized := p.normalizer.Normalize(ctx, loaded, p.dataset.KeepColumns, reporter)
	p.setState(Normalized)
	if normalized.IsEmpty() {
		log.Warn("normalized table is empty, skipping hooks")
		return result(normalized)
	}

	final := p.runHooks(ctx, normalized, reporter)
	p.setState(Finalized)
	log.Info("pipeline finalized", "rows", final.Len(), "columns", len(final.Columns()))
	return result(final)
}

func (p *Pipeline) runHooks(ctx context.Context, t table.Table, reporter *diagnostic.Reporter) table.Table {
	log := logger.FromContext(ctx).WithName(loggerName)

	if p.hooks.Filter != nil {
		before := t.Len()
		filtered := p.hooks.Filter(t)
		if filtered.Len() > before {
			log.Error("filter ignored", "error", &hookError{Hook: "filter", Err: errRowsAdded})
		} else {
			log.Debug("filter applied", "before", before, "after", filtered.Len())
			t = filtered
		}
	}

	if p.hooks.Merge != nil {
		merged, err := p.hooks.Merge(ctx, t)
		if err != nil {
			reporter.Report(ctx, diagnostic.Diagnostic{
				Kind:    diagnostic.ReferenceKeyMissing,
				Message: "merge aborted",
				Err:     &hookError{Hook: "merge", Err: err},
			})
		}
		if err == nil || len(merged.Columns()) > 0 {
			t = merged
		}
	}

	if p.hooks.Derive != nil {
		derived := p.hooks.Derive(t)
		if missing := missingColumns(t, derived); len(missing) > 0 {
			log.Error("derived columns ignored", "error", &hookError{
				Hook: "derive",
				Err:  fmt.Errorf("%w: %v", errColumnsRemoved, missing),
			})
		} else {
			t = derived
		}
	}

	return t
}

// missingColumns returns the columns of before that are not part of after.
func missingColumns(before, after table.Table) []string {
	missing := make([]string, 0)
	for _, column := range before.Columns() {
		if !after.HasColumn(column) {
			missing = append(missing, column)
		}
	}
	return missing
}
