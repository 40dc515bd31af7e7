// Package config loads tsfreq settings from defaults, a YAML file and the
// environment.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/sartorproj/tsfreq/freq"
	"github.com/sartorproj/tsfreq/ingest"
	"github.com/sartorproj/tsfreq/missing"
	"github.com/sartorproj/tsfreq/resample"
)

// EnvPrefix prefixes every environment variable, e.g. TSFREQ_LOG_LEVEL.
const EnvPrefix = "TSFREQ"

// Config holds all configuration for the application
type Config struct {
	Log     LogConfig     `yaml:"log" envconfig:"LOG"`
	Convert ConvertConfig `yaml:"convert" envconfig:"CONVERT"`
	Missing MissingConfig `yaml:"missing" envconfig:"MISSING"`
	Ingest  IngestConfig  `yaml:"ingest" envconfig:"INGEST"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=trace debug info warn error disabled"`
	Pretty bool   `yaml:"pretty" envconfig:"PRETTY"`
}

// ConvertConfig holds frequency conversion settings
type ConvertConfig struct {
	Broadcast   bool `yaml:"broadcast" envconfig:"BROADCAST"`
	EndOfPeriod bool `yaml:"end_of_period" envconfig:"END_OF_PERIOD"`
}

// MissingConfig holds the missing-value threshold
type MissingConfig struct {
	Limit     float64 `yaml:"threshold" envconfig:"THRESHOLD" validate:"gte=0"`
	Fraction  bool    `yaml:"fraction" envconfig:"FRACTION"`
	Inclusive bool    `yaml:"inclusive" envconfig:"INCLUSIVE"`
}

// IngestConfig holds tabular input settings
type IngestConfig struct {
	Delimiter      string   `yaml:"delimiter" envconfig:"DELIMITER" validate:"len=1"`
	Comment        string   `yaml:"comment" envconfig:"COMMENT" validate:"max=1"`
	SkipRows       int      `yaml:"skip_rows" envconfig:"SKIP_ROWS" validate:"gte=0"`
	HasHeader      bool     `yaml:"has_header" envconfig:"HAS_HEADER"`
	DateCols       []int    `yaml:"date_cols" envconfig:"DATE_COLS" validate:"min=1,max=6"`
	Frequency      string   `yaml:"frequency" envconfig:"FREQUENCY" validate:"omitempty,freqcode"`
	MissingValues  []string `yaml:"missing_values" envconfig:"MISSING_VALUES"`
	KeepDuplicates bool     `yaml:"keep_duplicates" envconfig:"KEEP_DUPLICATES"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Convert: ConvertConfig{
			Broadcast: true,
		},
		Ingest: IngestConfig{
			Delimiter:     ",",
			Comment:       "#",
			HasHeader:     true,
			DateCols:      []int{0},
			MissingValues: ingest.DefaultOptions().MissingValues,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (when
// path is not empty) and TSFREQ_* environment variables, in that order.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("freqcode", func(fl validator.FieldLevel) bool {
		_, err := freq.Parse(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate checks field constraints and the threshold.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	return c.Missing.Threshold().Validate()
}

// Options returns the conversion options.
func (c ConvertConfig) Options() *resample.Options {
	return &resample.Options{
		Broadcast:   c.Broadcast,
		EndOfPeriod: c.EndOfPeriod,
	}
}

// Threshold returns the missing-value threshold.
func (c MissingConfig) Threshold() missing.Threshold {
	return missing.Threshold{
		Limit:     c.Limit,
		Fraction:  c.Fraction,
		Inclusive: c.Inclusive,
	}
}

// Freq returns the configured frequency, or freq.Undefined when it should
// be guessed.
func (c IngestConfig) Freq() (freq.Frequency, error) {
	if c.Frequency == "" {
		return freq.Undefined, nil
	}
	return freq.Parse(c.Frequency)
}

// CSVOptions returns the CSV reader options.
func (c IngestConfig) CSVOptions() *ingest.CSVOptions {
	opts := &ingest.CSVOptions{
		HasHeader: c.HasHeader,
		SkipRows:  c.SkipRows,
	}
	if r := []rune(c.Delimiter); len(r) > 0 {
		opts.Delimiter = r[0]
	}
	if r := []rune(c.Comment); len(r) > 0 {
		opts.Comment = r[0]
	}
	return opts
}

// Options returns the reconstruction options.
func (c IngestConfig) Options() (*ingest.Options, error) {
	f, err := c.Freq()
	if err != nil {
		return nil, err
	}
	opts := ingest.DefaultOptions()
	opts.DateCols = append([]int(nil), c.DateCols...)
	opts.Freq = f
	opts.MissingValues = append([]string(nil), c.MissingValues...)
	opts.KeepDuplicates = c.KeepDuplicates
	return opts, nil
}
