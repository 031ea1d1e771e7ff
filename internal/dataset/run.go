// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package dataset

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/mia-platform/solar/internal/config"
	"github.com/mia-platform/solar/internal/logger"
	"github.com/mia-platform/solar/internal/normalize"
	"github.com/mia-platform/solar/internal/pipeline"
)

// ErrUnknownDataset is returned when a required dataset is not configured.
var ErrUnknownDataset = errors.New("unknown dataset")

// Runner processes every configured dataset.
type Runner struct {
	config     *config.Config
	source     pipeline.TableSource
	normalizer pipeline.ColumnNormalizer
}

// NewRunner returns a Runner reading data through source.
func NewRunner(cfg *config.Config, source pipeline.TableSource) *Runner {
	return &Runner{
		config:     cfg,
		source:     source,
		normalizer: normalize.New(cfg.Columns),
	}
}

// Run processes the product and warehouse references, then the outbound transactions
// enriched with them, then any other configured dataset with no hooks. Results are returned
// in this order. Data problems are part of the results; an error is returned only when a
// required dataset is not configured or ctx is done, together with the results produced
// so far.
func (r *Runner) Run(ctx context.Context) ([]pipeline.Result, error) {
	log := logger.FromContext(ctx).WithName(loggerName)
	results := make([]pipeline.Result, 0, len(r.config.Datasets))

	process := func(name string, hooks pipeline.Hooks) (pipeline.Result, error) {
		if err := ctx.Err(); err != nil {
			return pipeline.Result{}, err
		}

		dataset, ok := r.config.Dataset(name)
		if !ok {
			return pipeline.Result{}, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
		}

		result := pipeline.New(name, dataset, r.source, r.normalizer, hooks).Process(ctx)
		log.Debug("dataset processed", "dataset", name, "state", result.State.String(), "diagnostics", len(result.Diagnostics))
		results = append(results, result)
		return result, nil
	}

	products, err := process(config.DatasetProduct, ProductHooks())
	if err != nil {
		return results, err
	}

	warehouses, err := process(config.DatasetWarehouse, WarehouseHooks())
	if err != nil {
		return results, err
	}

	if _, err := process(config.DatasetOutbound, OutboundHooks(products.Table, warehouses.Table)); err != nil {
		return results, err
	}

	for _, name := range r.config.DatasetNames() {
		if slices.Contains(config.RequiredDatasets, name) {
			continue
		}
		if _, err := process(name, pipeline.Hooks{}); err != nil {
			return results, err
		}
	}

	return results, nil
}
