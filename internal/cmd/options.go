// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/mia-platform/solar/internal/config"
	"github.com/mia-platform/solar/internal/dataset"
	"github.com/mia-platform/solar/internal/destination"
	"github.com/mia-platform/solar/internal/logger"
	"github.com/mia-platform/solar/internal/pipeline"
)

const loggerName = "solar:cmd"

// options configures a run over the datasets of a configuration.
type options struct {
	// datasets limits the exported tables, every dataset is exported when empty.
	datasets    []string
	config      *config.Config
	source      pipeline.TableSource
	destination destination.Sink

	lock sync.Mutex
}

// validate checks the configured values and reports invalid setups.
func (o *options) validate() error {
	if err := o.config.Validate(); err != nil {
		return err
	}

	available := o.config.DatasetNames()
	for _, name := range o.datasets {
		if !slices.Contains(available, name) {
			return fmt.Errorf("%w: %s", errInvalidDataset, name)
		}
	}

	return nil
}

// execute processes every dataset and hands the selected tables to the destination.
// Every dataset is processed even when only some are exported, the outbound transactions
// need both reference tables.
func (o *options) execute(ctx context.Context) error {
	if !o.lock.TryLock() {
		return nil
	}
	defer o.lock.Unlock()

	ctx = logger.WithFields(ctx, "run_id", uuid.NewString())
	log := logger.FromContext(ctx).WithName(loggerName)

	results, err := dataset.NewRunner(o.config, o.source).Run(ctx)
	if err != nil {
		return err
	}

	for _, result := range results {
		if len(o.datasets) > 0 && !slices.Contains(o.datasets, result.Dataset) {
			continue
		}

		if err := o.destination.WriteTable(ctx, result.Dataset, result.Table); err != nil {
			return fmt.Errorf("exporting %q: %w", result.Dataset, err)
		}

		log.Info("dataset completed",
			"dataset", result.Dataset,
			"state", result.State.String(),
			"rows", result.Table.Len(),
			"diagnostics", len(result.Diagnostics),
		)
	}

	return nil
}
