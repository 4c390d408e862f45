// Package config defines the tool configuration and how it is loaded.
//
// Conventions:
// - Defaults reproduce the fixed file names the tool has always used.
// - Load layers defaults, an optional YAML file and IPL_* env vars.
// - Errors wrap ErrLoadConfig or ErrInvalidConfig.
package config

import (
	"fmt"
	"regexp"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// DataPath is the CSV file of match records.
	DataPath string `koanf:"data_path"`

	// DateColumn names the column holding the match date.
	DateColumn string `koanf:"date_column"`

	// DBPath is the SQLite database file the table is persisted into.
	DBPath string `koanf:"db_path"`

	// TableName is the table the matches are stored under.
	TableName string `koanf:"table_name"`

	// Persist turns the SQLite write at startup on or off.
	Persist bool `koanf:"persist"`

	// OutputDir receives the chart images.
	OutputDir string `koanf:"output_dir"`

	// ChartWidth and ChartHeight size the chart canvas in pixels.
	ChartWidth  int `koanf:"chart_width"`
	ChartHeight int `koanf:"chart_height"`

	// Console also prints each report as a table.
	Console bool `koanf:"console"`

	// MetricsFile, when set, receives a Prometheus textfile dump at exit.
	MetricsFile string `koanf:"metrics_file"`
}

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		DataPath:    "ipl_2008_to_2025.csv",
		DateColumn:  "Date",
		DBPath:      "ipl_analysis.db",
		TableName:   "matches",
		Persist:     true,
		OutputDir:   ".",
		ChartWidth:  1200,
		ChartHeight: 700,
		Console:     true,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	if strings.TrimSpace(c.DataPath) == "" {
		return fmt.Errorf("%w: data_path must not be empty", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.DateColumn) == "" {
		return fmt.Errorf("%w: date_column must not be empty", ErrInvalidConfig)
	}
	if c.Persist && strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("%w: db_path must not be empty when persist is on", ErrInvalidConfig)
	}
	if !tableNamePattern.MatchString(c.TableName) {
		return fmt.Errorf("%w: table_name %q is not a plain identifier", ErrInvalidConfig, c.TableName)
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("%w: output_dir must not be empty", ErrInvalidConfig)
	}
	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		return fmt.Errorf("%w: chart size must be positive, got %dx%d", ErrInvalidConfig, c.ChartWidth, c.ChartHeight)
	}
	return nil
}
