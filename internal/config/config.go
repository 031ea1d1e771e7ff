// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package config holds the static configuration of the ETL: the column rename table, the
// typed column lists and the per dataset source settings. A Config is built once at startup,
// either from Default or from a YAML file, and is never modified afterwards.
package config

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DatasetProduct is the product master reference dataset.
	DatasetProduct = "dmsp"
	// DatasetWarehouse is the warehouse master reference dataset.
	DatasetWarehouse = "whs"
	// DatasetOutbound is the outbound transactions dataset.
	DatasetOutbound = "outbound"
)

var (
	// ErrParsing reports failures that occur while decoding configuration files.
	ErrParsing = errors.New("error parsing")
	// ErrInvalidConfig reports a configuration that decodes but cannot be used.
	ErrInvalidConfig = errors.New("invalid configuration")

	// RequiredDatasets lists the datasets every configuration must declare, in processing order.
	RequiredDatasets = []string{DatasetProduct, DatasetWarehouse, DatasetOutbound}
)

// SourceKind tells whether a dataset is read from one file or from a directory of files.
type SourceKind string

const (
	SourceFile      SourceKind = "file"
	SourceDirectory SourceKind = "directory"

	// sourceFolder is accepted as an alias of SourceDirectory.
	sourceFolder = "folder"
)

// UnmarshalYAML decodes a source kind accepting the folder alias.
func (k *SourceKind) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}

	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(SourceFile):
		*k = SourceFile
	case string(SourceDirectory), sourceFolder:
		*k = SourceDirectory
	default:
		return fmt.Errorf("unknown source type %q: must be %q or %q", raw, SourceFile, SourceDirectory)
	}
	return nil
}

// DatasetConfig describes where a dataset comes from and which canonical columns it keeps.
type DatasetConfig struct {
	Kind SourceKind `json:"type" yaml:"type"`
	Path string     `json:"path" yaml:"path"`
	// HeaderRow is the number of records preceding the header record.
	HeaderRow   int      `json:"headerRow" yaml:"headerRow"`
	KeepColumns []string `json:"keepColumns" yaml:"keepColumns"`
}

// ColumnsConfig is shared by every dataset.
type ColumnsConfig struct {
	Rename   map[string]string `json:"rename" yaml:"rename"`
	Numeric  []string          `json:"numeric" yaml:"numeric"`
	Temporal []string          `json:"temporal" yaml:"temporal"`
}

// Config is the whole static configuration.
type Config struct {
	Columns  ColumnsConfig            `json:"columns" yaml:"columns"`
	Datasets map[string]DatasetConfig `json:"datasets" yaml:"datasets"`
}

// Dataset returns the configuration of the named dataset.
func (c *Config) Dataset(name string) (DatasetConfig, bool) {
	dataset, ok := c.Datasets[name]
	if !ok {
		return DatasetConfig{}, false
	}
	dataset.KeepColumns = slices.Clone(dataset.KeepColumns)
	return dataset, true
}

// DatasetNames returns the configured dataset names, required ones first in processing order.
func (c *Config) DatasetNames() []string {
	names := slices.Clone(RequiredDatasets)
	for _, name := range slices.Sorted(maps.Keys(c.Datasets)) {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

// WithBaseDir returns a copy of the configuration whose relative dataset paths are resolved
// against dir. An empty dir returns an unchanged copy.
func (c *Config) WithBaseDir(dir string) *Config {
	out := &Config{
		Columns: ColumnsConfig{
			Rename:   maps.Clone(c.Columns.Rename),
			Numeric:  slices.Clone(c.Columns.Numeric),
			Temporal: slices.Clone(c.Columns.Temporal),
		},
		Datasets: make(map[string]DatasetConfig, len(c.Datasets)),
	}

	for name, dataset := range c.Datasets {
		dataset.KeepColumns = slices.Clone(dataset.KeepColumns)
		if dir != "" && dataset.Path != "" && !filepath.IsAbs(dataset.Path) {
			dataset.Path = filepath.Join(dir, dataset.Path)
		}
		out.Datasets[name] = dataset
	}

	return out
}

// Validate collects every problem of the configuration and returns them joined.
func (c *Config) Validate() error {
	errorsList := []string{}

	if len(c.Columns.Rename) == 0 {
		errorsList = append(errorsList, "columns.rename must not be empty")
	}
	for raw, canonical := range c.Columns.Rename {
		if strings.TrimSpace(canonical) == "" {
			errorsList = append(errorsList, fmt.Sprintf("columns.rename entry %q has an empty canonical name", raw))
		}
	}

	for _, name := range RequiredDatasets {
		if _, ok := c.Datasets[name]; !ok {
			errorsList = append(errorsList, fmt.Sprintf("missing dataset %q", name))
		}
	}

	for _, name := range slices.Sorted(maps.Keys(c.Datasets)) {
		errorsList = append(errorsList, validateDataset(name, c.Datasets[name])...)
	}

	if len(errorsList) > 0 {
		slices.Sort(errorsList)
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errorsList, "; "))
	}
	return nil
}

// validateDataset returns the problems of a single dataset configuration.
func validateDataset(name string, dataset DatasetConfig) []string {
	errorsList := []string{}

	// names are used as export file names
	if strings.TrimSpace(name) == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		errorsList = append(errorsList, fmt.Sprintf("dataset %q: name must be usable as a file name", name))
	}
	if dataset.Kind != SourceFile && dataset.Kind != SourceDirectory {
		errorsList = append(errorsList, fmt.Sprintf("dataset %q: missing or unknown type", name))
	}
	if strings.TrimSpace(dataset.Path) == "" {
		errorsList = append(errorsList, fmt.Sprintf("dataset %q: missing path", name))
	}
	if dataset.HeaderRow < 0 {
		errorsList = append(errorsList, fmt.Sprintf("dataset %q: headerRow must not be negative", name))
	}

	return errorsList
}

// NewConfigFromPath decodes and validates the YAML configuration file at path.
func NewConfigFromPath(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return NewConfigFromReader(path, file)
}

// NewConfigFromReader decodes and validates a YAML configuration; name is used in errors.
func NewConfigFromReader(name string, reader io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	cfg := new(Config)
	if err := decoder.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w %q: empty configuration", ErrParsing, name)
		}
		return nil, fmt.Errorf("%w %q: %w", ErrParsing, name, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%q: %w", name, err)
	}

	return cfg, nil
}
