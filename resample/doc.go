// Package resample converts date-indexed series between frequencies.
//
// Converting to a coarser frequency groups the entries by the period that
// contains them and keeps, per period, the last valid value by position:
//
//	daily, _ := timeseries.FromStart(dates.MustParse(freq.Day, "2004-01-01"), values)
//	monthly, err := resample.Convert(daily, freq.Month, nil)
//
// Missing entries never win: a period whose last entry is missing takes the
// latest valid value before it, and stays missing only when none of its
// entries is valid.
//
// Converting to a finer frequency expands each entry into every period it
// covers. By default the value is broadcast; with Broadcast disabled only the
// first period (or the last, with EndOfPeriod) keeps it:
//
//	opts := resample.DefaultOptions()
//	opts.Broadcast = false
//	hourly, err := resample.Up(daily, freq.Hour, opts)
//
// Group exposes the bucketing itself, with the calendar size of each bucket,
// for callers that aggregate on their own. A bucket's size counts every
// source period up to the next bucket, so a business day holds the weekend
// days that fold into it.
//
// # Annual Layout
//
// AnnualMatrix reshapes a daily or intraday series into one row per year.
// Columns follow the leap-year calendar, so February 29 has a column of its
// own that stays empty in common years and March 1 is always column 60 for
// daily data.
package resample
