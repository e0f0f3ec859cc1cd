// Package config handles application configuration and setup
package config

import (
	"fmt"
	"os"

	"github.com/flarespire359/kujata-sub000/internal/options"
	"github.com/retroenv/retrogolib/log"
	"gopkg.in/yaml.v3"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// File is the content of a YAML config file.
type File struct {
	Input   string `yaml:"input"`
	Output  string `yaml:"output"`
	Batch   string `yaml:"batch"`
	Kind    string `yaml:"kind"`
	Format  string `yaml:"format"`
	Workers int    `yaml:"workers"`
	NoSplit bool   `yaml:"nosplit"`
}

// Load reads a YAML config file.
func Load(path string) (File, error) {
	var file File
	data, err := os.ReadFile(path)
	if err != nil {
		return file, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return file, nil
}

// Apply sets all options of the config file that were not explicitly set
// on the command line. explicit contains the names of the set flags.
func (f File) Apply(opts *options.Program, explicit map[string]bool) {
	setString := func(flag, value string, target *string) {
		if value != "" && !explicit[flag] {
			*target = value
		}
	}
	setString("i", f.Input, &opts.Input)
	setString("o", f.Output, &opts.Output)
	setString("batch", f.Batch, &opts.Batch)
	setString("t", f.Kind, &opts.Kind)
	setString("format", f.Format, &opts.Format)

	if f.Workers > 0 && !explicit["j"] {
		opts.Workers = f.Workers
	}
	if f.NoSplit && !explicit["nosplit"] {
		opts.NoSplit = true
	}
}
