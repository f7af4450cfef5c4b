// =============================================================================
// rtsort - Configuration Module
// =============================================================================
//
// This module is responsible for loading the sorter configuration. A YAML
// file is optional: every setting has a default matching an RT Systems
// channel export, and command-line flags override whatever the file sets.
//
// CONFIGURATION FILE (rtsort.yaml):
//   sort_field_index: -1
//   name_field_index: -1
//   sort_field_names: ["Receive Frequency"]
//   name_field_names: ["Name"]
//   service_names: ["FRS/GMRS"]
//   csv_settings:
//     delimiter: ","
//     use_crlf: true
//   xlsx_settings:
//     sheet_name: ""
//   output_name_format: "{original}_sorted"
//   overwrite: false
//   log_level: info
//   log_format: text
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/ginjaninja78/rtsort/internal/channelsort"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file looked up when none is given.
const DefaultConfigFile = "rtsort.yaml"

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// =========================================================================
	// FIELD RESOLUTION
	// =========================================================================

	// SortFieldIndex is an explicit 0-based sort column. A negative value
	// means the column is detected from SortFieldNames.
	// Default: -1
	SortFieldIndex *int `yaml:"sort_field_index"`

	// NameFieldIndex is an explicit 0-based name column. A negative value
	// means the column is detected from NameFieldNames.
	// Default: -1
	NameFieldIndex *int `yaml:"name_field_index"`

	// SortFieldNames are the header names that identify the sort column.
	// An explicitly empty list disables detection; column 1 is used.
	// Default: ["Receive Frequency"]
	SortFieldNames []string `yaml:"sort_field_names"`

	// NameFieldNames are the header names that identify the name column.
	// An explicitly empty list disables detection; column 7 is used.
	// Default: ["Name"]
	NameFieldNames []string `yaml:"name_field_names"`

	// ServiceNames are the channel name prefixes grouped into trailing
	// blocks, e.g. "FRS/GMRS" for names like "FRS/GMRS 12".
	// Default: ["FRS/GMRS"]
	ServiceNames []string `yaml:"service_names"`

	// =========================================================================
	// FILE FORMAT SETTINGS
	// =========================================================================

	// CSVSettings contains settings for reading and writing CSV exports.
	CSVSettings CSVSettings `yaml:"csv_settings"`

	// XLSXSettings contains settings for reading and writing xlsx exports.
	XLSXSettings XLSXSettings `yaml:"xlsx_settings"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputNameFormat names the output file when none is given.
	// Placeholders: {original}, {date}, {timestamp}, {uuid}.
	// The input extension is appended.
	// Default: "{original}_sorted"
	OutputNameFormat string `yaml:"output_name_format"`

	// Overwrite allows replacing an existing output file.
	// Default: false
	Overwrite bool `yaml:"overwrite"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat selects the log encoding: "text" or "json".
	// Default: "text"
	LogFormat string `yaml:"log_format"`
}

// CSVSettings contains settings for CSV files.
type CSVSettings struct {
	// Delimiter separates fields. Accepts a single character or one of
	// "tab", "pipe", "semicolon".
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// UseCRLF terminates written records with \r\n, as the radio
	// programming software does.
	// Default: true
	UseCRLF *bool `yaml:"use_crlf"`

	// LazyQuotes tolerates stray quotes in unquoted fields.
	// Default: true
	LazyQuotes *bool `yaml:"lazy_quotes"`
}

// XLSXSettings contains settings for xlsx workbooks.
type XLSXSettings struct {
	// SheetName is the worksheet to read. Empty means the first sheet.
	SheetName string `yaml:"sheet_name"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load loads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file. An empty path yields
//     the defaults.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be read, parsed or validated.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// LoadOptional behaves like Load but returns the defaults when configPath
// does not exist.
func LoadOptional(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(configPath)
}

// Parse decodes, defaults and validates YAML configuration data.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
// Lists are only defaulted when absent (nil); an explicit empty list in the
// file is kept.
func applyDefaults(cfg *Config) {
	defaults := channelsort.DefaultOptions()

	if cfg.SortFieldIndex == nil {
		cfg.SortFieldIndex = intPtr(defaults.SortFieldIndex)
	}
	if cfg.NameFieldIndex == nil {
		cfg.NameFieldIndex = intPtr(defaults.NameFieldIndex)
	}
	if cfg.SortFieldNames == nil {
		cfg.SortFieldNames = defaults.SortFieldNames
	}
	if cfg.NameFieldNames == nil {
		cfg.NameFieldNames = defaults.NameFieldNames
	}
	if cfg.ServiceNames == nil {
		cfg.ServiceNames = defaults.ServiceNames
	}

	if cfg.CSVSettings.Delimiter == "" {
		cfg.CSVSettings.Delimiter = ","
	}
	if cfg.CSVSettings.UseCRLF == nil {
		cfg.CSVSettings.UseCRLF = boolPtr(true)
	}
	if cfg.CSVSettings.LazyQuotes == nil {
		cfg.CSVSettings.LazyQuotes = boolPtr(true)
	}

	if cfg.OutputNameFormat == "" {
		cfg.OutputNameFormat = "{original}_sorted"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.LogLevel) {
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	if !slices.Contains([]string{"text", "json"}, c.LogFormat) {
		return fmt.Errorf("unknown log_format %q", c.LogFormat)
	}
	if _, err := c.CSVSettings.Comma(); err != nil {
		return err
	}
	for _, name := range c.ServiceNames {
		if name == "" || strings.Contains(name, " ") {
			return fmt.Errorf("service name %q must be a single non-empty word", name)
		}
	}
	return nil
}

// SortOptions converts the configuration into pipeline options.
func (c *Config) SortOptions() channelsort.Options {
	return channelsort.Options{
		SortFieldIndex: derefInt(c.SortFieldIndex, -1),
		NameFieldIndex: derefInt(c.NameFieldIndex, -1),
		SortFieldNames: slices.Clone(c.SortFieldNames),
		NameFieldNames: slices.Clone(c.NameFieldNames),
		ServiceNames:   slices.Clone(c.ServiceNames),
	}
}

// Comma returns the delimiter rune for the configured delimiter.
func (s CSVSettings) Comma() (rune, error) {
	switch s.Delimiter {
	case "", ",", "comma":
		return ',', nil
	case "\\t", "\t", "tab", "TAB":
		return '\t', nil
	case "|", "pipe", "PIPE":
		return '|', nil
	case ";", "semicolon":
		return ';', nil
	}

	r := []rune(s.Delimiter)
	if len(r) != 1 || r[0] == '"' || r[0] == '\r' || r[0] == '\n' {
		return 0, fmt.Errorf("invalid csv delimiter %q", s.Delimiter)
	}
	return r[0], nil
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func derefInt(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}
