// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mia-platform/solar/internal/config"
)

var (
	errInvalidDataset   = errors.New("invalid dataset name provided")
	errInvalidFlagValue = errors.New("invalid flag value")

	// datasetDescriptions holds the description of the built-in datasets for command
	// completion and help messages.
	datasetDescriptions = map[string]string{
		config.DatasetProduct:   "product master reference",
		config.DatasetWarehouse: "warehouse master reference",
		config.DatasetOutbound:  "outbound transactions",
	}
)

const extraDatasetDescription = "configured dataset"

// handleError will do custom print error handling based on the type of error received.
// It always returns the original error so that the command exits with a non zero code.
func handleError(cmd *cobra.Command, err error) error {
	switch {
	case errors.Is(err, errInvalidDataset), errors.Is(err, errInvalidFlagValue):
		cmd.PrintErrln(err)
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return err
	default:
		cmd.PrintErrln(err)
		return err
	}
}

// unwrappedError returns the unwrapped error if available, otherwise it returns the original error.
func unwrappedError(err error) error {
	if unwrapped := errors.Unwrap(err); unwrapped != nil {
		return unwrapped
	}

	return err
}

// loadConfig returns the built-in configuration or the one decoded from path, with its
// relative dataset paths resolved against dataDir.
func loadConfig(path, dataDir string) (*config.Config, error) {
	if path == "" {
		return config.Default().WithBaseDir(dataDir), nil
	}

	cfg, err := config.NewConfigFromPath(path)
	if err != nil {
		if errors.Is(err, config.ErrParsing) || errors.Is(err, config.ErrInvalidConfig) {
			return nil, err
		}
		return nil, fmt.Errorf("configuration file %q: %w", path, unwrappedError(err))
	}

	return cfg.WithBaseDir(dataDir), nil
}

// validArgsFunc completes the dataset names of the configuration selected by the flags,
// skipping the ones already on the command line.
func validArgsFunc(f *flags) cobra.CompletionFunc {
	return func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg, err := loadConfig(f.configPath, "")
		if err != nil {
			cfg = config.Default()
		}

		var comps []string
		for _, name := range cfg.DatasetNames() {
			if slices.Contains(args, name) || !strings.HasPrefix(name, toComplete) {
				continue
			}

			description, ok := datasetDescriptions[name]
			if !ok {
				description = extraDatasetDescription
			}
			comps = append(comps, cobra.CompletionWithDesc(name, description))
		}

		return comps, cobra.ShellCompDirectiveNoFileComp
	}
}
