// Package config loads runner settings from a YAML file with
// ASSERTCHAIN_* environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"digital.vasic.assertchain/pkg/logging"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Log formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
	FormatZap     = "zap"
)

// Report formats.
const (
	ReportTable = "table"
	ReportJSON  = "json"
)

// Environment variables that override file values.
const (
	EnvLogLevel     = "ASSERTCHAIN_LOG_LEVEL"
	EnvLogFormat    = "ASSERTCHAIN_LOG_FORMAT"
	EnvParallelism  = "ASSERTCHAIN_PARALLELISM"
	EnvReportPath   = "ASSERTCHAIN_REPORT_PATH"
	EnvReportFormat = "ASSERTCHAIN_REPORT_FORMAT"
)

// Config is the complete runner configuration.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Run    RunConfig    `yaml:"run"`
	Report ReportConfig `yaml:"report"`
}

// LogConfig selects the logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// Path, when set, sends JSON logs to a file instead of stderr.
	Path  string `yaml:"path"`
	Color bool   `yaml:"color"`
}

// RunConfig controls suite execution.
type RunConfig struct {
	// Parallelism bounds how many cases run at once.
	Parallelism int `yaml:"parallelism"`
	// Cases restricts the run to the named cases. Empty runs all.
	Cases []string `yaml:"cases"`
}

// ReportConfig controls result output.
type ReportConfig struct {
	Format string `yaml:"format"`
	// Path, when set, also writes a JSON report to this file.
	Path   string `yaml:"path"`
	Pretty bool   `yaml:"pretty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: FormatConsole,
		},
		Run: RunConfig{
			Parallelism: 4,
		},
		Report: ReportConfig{
			Format: ReportTable,
			Pretty: true,
		},
	}
}

// Load reads path (when non-empty) over the defaults, applies
// environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to read config %s: %w", path, err,
			)
		}
		if err := cfg.decode(data); err != nil {
			return nil, fmt.Errorf(
				"failed to parse config %s: %w", path, err,
			)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML bytes over the defaults and validates them.
// Environment overrides are not applied.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(data); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overrides fields from environment variables obtained
// through lookup.
func (c *Config) ApplyEnv(
	lookup func(string) (string, bool),
) error {
	if v, ok := lookup(EnvLogLevel); ok {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok {
		c.Log.Format = v
	}
	if v, ok := lookup(EnvParallelism); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf(
				"%w: %s=%q is not a number", ErrInvalid, EnvParallelism, v,
			)
		}
		c.Run.Parallelism = n
	}
	if v, ok := lookup(EnvReportPath); ok {
		c.Report.Path = v
	}
	if v, ok := lookup(EnvReportFormat); ok {
		c.Report.Format = v
	}
	return nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	switch c.Log.Format {
	case FormatConsole, FormatJSON, FormatZap:
	default:
		return fmt.Errorf(
			"%w: unknown log format %q", ErrInvalid, c.Log.Format,
		)
	}

	if c.Run.Parallelism < 1 {
		return fmt.Errorf(
			"%w: parallelism must be at least 1, got %d",
			ErrInvalid, c.Run.Parallelism,
		)
	}

	switch c.Report.Format {
	case ReportTable, ReportJSON:
	default:
		return fmt.Errorf(
			"%w: unknown report format %q", ErrInvalid, c.Report.Format,
		)
	}
	return nil
}

// NewLogger builds the logger described by the log section.
// Console output goes to w.
func (c LogConfig) NewLogger(w io.Writer) (logging.Logger, error) {
	level, err := logging.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	switch c.Format {
	case FormatJSON:
		l, err := logging.NewJSONLogger(logging.LoggerConfig{
			Output:     pathlessWriter(c.Path, w),
			OutputPath: c.Path,
			Level:      level,
		})
		if err != nil {
			return nil, err
		}
		return l, nil
	case FormatZap:
		l, err := logging.NewProductionZapLogger(level)
		if err != nil {
			return nil, err
		}
		return l, nil
	default:
		return logging.NewConsoleLogger(w, level, c.Color), nil
	}
}

// pathlessWriter returns w only when no log file was requested.
func pathlessWriter(path string, w io.Writer) io.Writer {
	if path != "" {
		return nil
	}
	return w
}
