package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sartorproj/tsfreq/config"
	"github.com/sartorproj/tsfreq/freq"
	"github.com/sartorproj/tsfreq/ingest"
	"github.com/sartorproj/tsfreq/internal/logging"
)

// app carries state shared by the sub-commands.
type app struct {
	configPath string
	logLevel   string
	cfg        *config.Config

	// ingest overrides
	freqCode       string
	dateCols       []int
	delimiter      string
	noHeader       bool
	keepDuplicates bool
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "tsfreq",
		Short: "Frequency-aware date indexing and resampling",
		Long: `tsfreq reads date-indexed CSV data, rebuilds a sorted date index from one or
more date columns and converts the values between frequencies.

Frequencies: A (annual), Q (quarterly), M (monthly), W or W-MON..W-SUN
(weekly), B (business days), D (daily), H (hourly), T (minutes), S (seconds).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if a.logLevel != "" {
				cfg.Log.Level = a.logLevel
			}
			if err := logging.Setup(cfg.Log); err != nil {
				return err
			}
			a.cfg = cfg
			log.Debug().Str("config", a.configPath).Msg("configuration loaded")
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")

	root.AddCommand(
		newGuessCmd(a),
		newRangeCmd(a),
		newConvertCmd(a),
		newAnnualCmd(a),
		newMissingCmd(a),
		newSortCmd(a),
	)
	return root
}

// addIngestFlags registers the flags that override the ingest configuration.
func (a *app) addIngestFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&a.freqCode, "freq", "", "Frequency of the input dates (default: guessed)")
	cmd.Flags().IntSliceVar(&a.dateCols, "date-cols", nil, "Date column indices, negative from the end")
	cmd.Flags().StringVar(&a.delimiter, "delimiter", "", "Field delimiter")
	cmd.Flags().BoolVar(&a.noHeader, "no-header", false, "Input has no header row")
	cmd.Flags().BoolVar(&a.keepDuplicates, "keep-duplicates", false, "Keep rows sharing a date")
}

// load reads a CSV file and rebuilds its date index.
func (a *app) load(cmd *cobra.Command, filename string) (*ingest.Result, error) {
	ic := a.cfg.Ingest
	if a.freqCode != "" {
		ic.Frequency = a.freqCode
	}
	if cmd.Flags().Changed("date-cols") {
		ic.DateCols = a.dateCols
	}
	if a.delimiter != "" {
		ic.Delimiter = a.delimiter
	}
	if a.noHeader {
		ic.HasHeader = false
	}
	if a.keepDuplicates {
		ic.KeepDuplicates = true
	}

	opts, err := ic.Options()
	if err != nil {
		return nil, err
	}
	table, err := ingest.ReadCSVFile(filename, ic.CSVOptions())
	if err != nil {
		return nil, err
	}
	res, err := ingest.Reconstruct(table, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return res, nil
}

// target parses a frequency flag.
func target(code string) (freq.Frequency, error) {
	if code == "" {
		return freq.Undefined, fmt.Errorf("a target frequency is required")
	}
	return freq.Parse(code)
}
