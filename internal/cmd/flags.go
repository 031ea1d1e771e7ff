// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mia-platform/solar/internal/destination"
	"github.com/mia-platform/solar/internal/destination/csvfile"
	"github.com/mia-platform/solar/internal/destination/writer"
	"github.com/mia-platform/solar/internal/source"
)

const (
	configFlagName  = "config"
	configFlagShort = "c"
	configFlagUsage = "Path to a YAML configuration file, the built-in configuration is used when empty"

	dataDirFlagName  = "data-dir"
	dataDirFlagShort = "d"
	dataDirFlagUsage = "Directory used to resolve the relative dataset paths of the configuration"
	defaultDataDir   = "."

	outputDirFlagName  = "output-dir"
	outputDirFlagShort = "o"
	outputDirFlagUsage = "Directory receiving one CSV file per dataset when the format is csv"
	defaultOutputDir   = "output"

	workersFlagName  = "workers"
	workersFlagUsage = "Maximum number of files of a directory dataset parsed at the same time"

	formatFlagName  = "format"
	formatFlagUsage = "Output format, one of: csv, table, markdown"
	formatCSV       = "csv"

	maxRowsFlagName  = "max-rows"
	maxRowsFlagUsage = "Number of rows rendered per dataset by the table and markdown formats, 0 renders every row"
	defaultMaxRows   = 20
)

// flags collects the CLI options of the run and config commands.
type flags struct {
	configPath string
	dataDir    string
	outputDir  string
	workers    int
	format     string
	maxRows    int
}

// addConfigFlags registers the flags selecting the configuration on cmd.
func (f *flags) addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, configFlagName, configFlagShort, "", configFlagUsage)
	cmd.Flags().StringVarP(&f.dataDir, dataDirFlagName, dataDirFlagShort, defaultDataDir, dataDirFlagUsage)
}

// addFlags registers every run flag on cmd.
func (f *flags) addFlags(cmd *cobra.Command) {
	f.addConfigFlags(cmd)

	cmd.Flags().StringVarP(&f.outputDir, outputDirFlagName, outputDirFlagShort, defaultOutputDir, outputDirFlagUsage)
	cmd.Flags().IntVar(&f.workers, workersFlagName, source.DefaultWorkers, workersFlagUsage)
	cmd.Flags().StringVar(&f.format, formatFlagName, formatCSV, formatFlagUsage)
	cmd.Flags().IntVar(&f.maxRows, maxRowsFlagName, defaultMaxRows, maxRowsFlagUsage)
}

// toOptions builds an options instance from the parsed flags and CLI arguments.
func (f *flags) toOptions(cmd *cobra.Command, args []string) (*options, error) {
	if f.workers < 1 {
		return nil, fmt.Errorf("%w: --%s must be at least 1, got %d", errInvalidFlagValue, workersFlagName, f.workers)
	}

	destination, err := f.destination(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig(f.configPath, f.dataDir)
	if err != nil {
		return nil, err
	}

	return &options{
		datasets:    args,
		config:      cfg,
		source:      source.New(f.workers),
		destination: destination,
	}, nil
}

// destination returns the sink selected by the format flag.
func (f *flags) destination(cmd *cobra.Command) (destination.Sink, error) {
	switch format := strings.ToLower(f.format); format {
	case formatCSV:
		return csvfile.NewDestination(f.outputDir), nil
	case string(writer.FormatTable), string(writer.FormatMarkdown):
		return writer.NewDestination(cmd.OutOrStdout(), writer.Format(format), f.maxRows), nil
	default:
		return nil, fmt.Errorf("%w: unknown --%s %q", errInvalidFlagValue, formatFlagName, f.format)
	}
}
