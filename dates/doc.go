// Package dates provides frequency-aware calendar dates and date arrays.
//
// A Date is an integer ordinal paired with a freq.Frequency: the number of
// periods since a fixed epoch at that frequency. Annual ordinals are the year,
// monthly and quarterly ordinals count from year 1, daily ordinals count days
// from 0001-01-01 (day 1), business ordinals count weekdays from that Monday,
// and intraday ordinals count from 1970-01-01 00:00:00.
//
// # Creating Dates
//
//	d, err := dates.FromString(freq.Month, "2004-02")
//	d, err := dates.FromFields(freq.Day, dates.Fields{Year: 2004, Period: 2, Day: 29})
//	d, err := dates.FromString(freq.Undefined, "2004-02-29 13:45") // minute frequency
//
// Fields finer than the frequency and out-of-range fields fail with
// ErrInvalidField; malformed text fails with ErrParse.
//
// # Converting
//
// Convert projects a date onto another frequency. Going coarser returns the
// containing period; going finer returns the first (or, with endOfPeriod,
// the last) period inside:
//
//	m := dates.MustParse(freq.Month, "2004-02")
//	first, _ := m.Convert(freq.Day, false) // 2004-02-01
//	last, _ := m.Convert(freq.Day, true)   // 2004-02-29
//
// Business days skip weekends: a weekend day maps back to the Friday when
// going coarser, and a period starting on a weekend opens on the Monday.
//
// # Arrays
//
//	start := dates.MustParse(freq.Day, "2004-01-01")
//	end := dates.MustParse(freq.Day, "2004-12-31")
//	days, _ := dates.Range(start, end) // 366 dates
//	months, _ := days.Convert(freq.Month, false)
//	months.HasDuplicates() // true
package dates
