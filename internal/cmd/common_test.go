// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/solar/internal/config"
)

func TestCompletion(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		flags              *flags
		args               []string
		toComplete         string
		expectedCompletion []string
	}{
		"no args, complete every dataset": {
			flags: &flags{},
			expectedCompletion: []string{
				"dmsp\tproduct master reference",
				"whs\twarehouse master reference",
				"outbound\toutbound transactions",
			},
		},
		"some args, complete the remaining datasets": {
			flags: &flags{},
			args:  []string{config.DatasetProduct},
			expectedCompletion: []string{
				"whs\twarehouse master reference",
				"outbound\toutbound transactions",
			},
		},
		"partial string, return filtered datasets": {
			flags:      &flags{},
			toComplete: "w",
			expectedCompletion: []string{
				"whs\twarehouse master reference",
			},
		},
		"partial wrong string, return no dataset": {
			flags:      &flags{},
			toComplete: "x",
		},
		"datasets of the configuration file": {
			flags:      &flags{configPath: filepath.Join("testdata", "extra.yaml")},
			toComplete: "b",
			expectedCompletion: []string{
				"brands\tconfigured dataset",
			},
		},
		"invalid configuration file falls back to the built-in datasets": {
			flags:      &flags{configPath: filepath.Join("testdata", "invalid.yaml")},
			toComplete: "o",
			expectedCompletion: []string{
				"outbound\toutbound transactions",
			},
		},
	}

	for testName, test := range testCases {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			args, directive := validArgsFunc(test.flags)(nil, test.args, test.toComplete)
			assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
			assert.Equal(t, test.expectedCompletion, args)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		path          string
		dataDir       string
		expectedPath  string
		expectedError error
	}{
		"built-in configuration": {
			dataDir:      "/srv/data",
			expectedPath: filepath.Join("/srv/data", "nebula", "outbound"),
		},
		"built-in configuration without data directory": {
			expectedPath: filepath.Join("nebula", "outbound"),
		},
		"configuration file": {
			path:         filepath.Join("testdata", "extra.yaml"),
			dataDir:      "data",
			expectedPath: filepath.Join("data", "nebula", "outbound"),
		},
		"missing configuration file": {
			path:          filepath.Join("testdata", "missing.yaml"),
			expectedError: os.ErrNotExist,
		},
		"invalid configuration file": {
			path:          filepath.Join("testdata", "invalid.yaml"),
			expectedError: config.ErrInvalidConfig,
		},
	}

	for testName, test := range testCases {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			cfg, err := loadConfig(test.path, test.dataDir)
			if test.expectedError != nil {
				assert.ErrorIs(t, err, test.expectedError)
				assert.Nil(t, cfg)
				return
			}

			require.NoError(t, err)
			outbound, ok := cfg.Dataset(config.DatasetOutbound)
			require.True(t, ok)
			assert.Equal(t, test.expectedPath, outbound.Path)
			assert.Equal(t, config.SourceDirectory, outbound.Kind)
		})
	}
}
