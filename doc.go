// Package tsfreq provides frequency-aware calendar dates, date arrays and
// resampling of date-indexed series.
//
// A date is an integer ordinal tied to a reporting frequency: annual,
// quarterly, monthly, weekly on a given weekday, business daily, daily,
// hourly, by the minute or by the second. Dates convert between
// frequencies with calendar rules that account for leap years, weekends,
// quarter boundaries and week anchors.
//
// # Quick Start
//
// Build a monthly series and aggregate it by quarter:
//
//	start := dates.MustParse(freq.Month, "2004-01")
//	series, _ := timeseries.FromStart(start, values)
//	quarterly, _ := resample.Convert(series, freq.Quarter, nil)
//
// Guess the frequency of raw dates:
//
//	f, _ := guess.Guess([]string{"2004-01-01", "2004-04-01", "2005-01-01"}) // freq.Quarter
//
// Reject months with more than 10% missing days:
//
//	t := missing.Threshold{Limit: 0.1, Fraction: true}
//	cleaned, _ := missing.AcceptAtMostMissing(daily, freq.Month, t)
//
// # Packages
//
// The library is organized into the following packages:
//
//   - freq: Frequency codes and their calendar properties
//   - dates: Dates, date arrays and calendar conversion
//   - timeseries: Value columns with a validity mask, and date-indexed series
//   - resample: Frequency conversion and per-year layout
//   - guess: Frequency inference from raw dates
//   - missing: Missing-value counts and thresholds
//   - ingest: Date reconstruction from CSV and XLSX tables
//   - config: YAML and environment configuration
//
// The tsfreq command in cmd/tsfreq exposes these operations on CSV files.
package tsfreq
