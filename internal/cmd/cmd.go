// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	runCmdUsage = "run [dataset...]"
	runCmdShort = "process the outbound datasets and export the result tables"
	runCmdLong  = `Process the outbound datasets and export the result tables.
	The product and warehouse references are loaded first, then the outbound
	transactions are filtered, enriched with the references and completed with
	the total volume and the month of every transaction.

	Every dataset is always processed; the names passed as arguments limit the
	tables that are exported. Data problems are logged as warnings and never stop
	the run.

	The built-in datasets are:
	- dmsp: product master reference
	- whs: warehouse master reference
	- outbound: outbound transactions`

	runCmdExample = `# Export every table as CSV files inside the output directory
	solar run --data-dir /srv/data --output-dir output

	# Render the first rows of the outbound table in the terminal
	solar run outbound --format table --max-rows 10`

	configCmdUsage = "config"
	configCmdShort = "print the effective configuration"
	configCmdLong  = `Print the effective configuration as YAML.
	The output can be saved, edited and passed back with the --config flag.
	Dataset paths are shown resolved against the data directory.`

	configCmdExample = `# Save the built-in configuration
	solar config > solar.yaml`
)

// RunCmd returns the Cobra command that processes and exports the datasets.
func RunCmd() *cobra.Command {
	flags := &flags{}
	cmd := &cobra.Command{
		Use:     runCmdUsage,
		Short:   heredoc.Doc(runCmdShort),
		Long:    heredoc.Doc(runCmdLong),
		Example: heredoc.Doc(runCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: validArgsFunc(flags),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.toOptions(cmd, args)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := opts.validate(); err != nil {
				return handleError(cmd, err)
			}

			if err := opts.execute(cmd.Context()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}

// ConfigCmd returns the Cobra command that prints the effective configuration.
func ConfigCmd() *cobra.Command {
	flags := &flags{}
	cmd := &cobra.Command{
		Use:     configCmdUsage,
		Short:   heredoc.Doc(configCmdShort),
		Long:    heredoc.Doc(configCmdLong),
		Example: heredoc.Doc(configCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags.configPath, flags.dataDir)
			if err != nil {
				return handleError(cmd, err)
			}

			encoder := yaml.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent(2)
			if err := encoder.Encode(cfg); err != nil {
				return handleError(cmd, err)
			}
			return encoder.Close()
		},
	}

	flags.addConfigFlags(cmd)
	return cmd
}
