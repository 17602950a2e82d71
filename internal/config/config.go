// Package config loads the optional disksearch tuning file.
//
// The file may be YAML (.yaml, .yml) or TOML (.toml). Every field is
// optional; missing fields keep the values from Default. Command-line
// flags are applied on top by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/baxromumarov/disksearch"
)

// ErrUnsupportedFormat is returned by Load for unknown file extensions.
var ErrUnsupportedFormat = errors.New("config: unsupported file format")

// Queues holds the capacities of the two pipeline queues.
type Queues struct {
	// Directories is the capacity of the enumerator → matcher queue.
	Directories int `yaml:"directories" toml:"directories"`

	// Results is the capacity of the matcher → copier queue.
	Results int `yaml:"results" toml:"results"`
}

// Log configures the logger.
type Log struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" toml:"level"`

	// Format is console or json.
	Format string `yaml:"format" toml:"format"`
}

// Config represents the disksearch tuning file.
type Config struct {
	Queues Queues `yaml:"queues" toml:"queues"`

	// CopyErrors selects the copier failure policy:
	// stop-worker, skip-file or abort-run.
	CopyErrors string `yaml:"copy_errors" toml:"copy_errors"`

	// IncludeRoot also searches files placed directly in the root.
	IncludeRoot bool `yaml:"include_root" toml:"include_root"`

	Log Log `yaml:"log" toml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Queues: Queues{
			Directories: disksearch.DefaultDirQueueCapacity,
			Results:     disksearch.DefaultResultsQueueCapacity,
		},
		CopyErrors: disksearch.StopWorker.String(),
		Log: Log{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads and validates the file at path. An empty path returns Default.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and enum fields.
func (c *Config) Validate() error {
	if c.Queues.Directories <= 0 || c.Queues.Results <= 0 {
		return fmt.Errorf("config: queue capacities must be positive (directories=%d, results=%d)",
			c.Queues.Directories, c.Queues.Results)
	}
	if _, err := disksearch.ParseCopyErrorPolicy(c.CopyErrors); err != nil {
		return fmt.Errorf("config: copy_errors: %w", err)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("config: log.level: unsupported value %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("config: log.format: unsupported value %q", c.Log.Format)
	}
	return nil
}

// Apply copies the tuning values into a run configuration.
func (c *Config) Apply(run *disksearch.Config) error {
	policy, err := disksearch.ParseCopyErrorPolicy(c.CopyErrors)
	if err != nil {
		return err
	}
	run.DirQueueCapacity = c.Queues.Directories
	run.ResultsQueueCapacity = c.Queues.Results
	run.OnCopyError = policy
	run.IncludeRoot = c.IncludeRoot
	return nil
}
