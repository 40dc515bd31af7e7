package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sartorproj/tsfreq/freq"
)

// Date is a single period at a given frequency.
// Two Dates are equal iff they share frequency and ordinal.
type Date struct {
	freq freq.Frequency
	ord  int64
}

// Fields holds calendar components for FromFields. Period is the quarter
// for quarterly dates and the month otherwise. Zero Period or Day default to 1.
type Fields struct {
	Year   int
	Period int
	Day    int
	Hour   int
	Minute int
	Second int
}

// New wraps an ordinal at frequency f.
func New(f freq.Frequency, ordinal int64) (Date, error) {
	if !f.Valid() {
		return Date{}, mismatchf("frequency %s cannot index dates", f)
	}
	return Date{freq: f, ord: ordinal}, nil
}

// FromFields builds a Date from calendar fields, rejecting out-of-range
// values and components finer than f.
func FromFields(f freq.Frequency, fl Fields) (Date, error) {
	if !f.Valid() {
		return Date{}, mismatchf("frequency %s cannot index dates", f)
	}

	period, day := fl.Period, fl.Day
	switch f {
	case freq.Annual:
		if period != 0 {
			return Date{}, fieldf("period %d is finer than %s", period, f)
		}
		period = 1
	case freq.Quarter:
		if period == 0 {
			period = 1
		}
		if period < 1 || period > 4 {
			return Date{}, fieldf("quarter %d", period)
		}
	}
	if f.Group() <= freq.Month && day != 0 {
		return Date{}, fieldf("day %d is finer than %s", day, f)
	}
	if f.Group() <= freq.Day && fl.Hour != 0 {
		return Date{}, fieldf("hour %d is finer than %s", fl.Hour, f)
	}
	if f.Group() <= freq.Hour && fl.Minute != 0 {
		return Date{}, fieldf("minute %d is finer than %s", fl.Minute, f)
	}
	if f.Group() <= freq.Minute && fl.Second != 0 {
		return Date{}, fieldf("second %d is finer than %s", fl.Second, f)
	}

	if f == freq.Quarter {
		return Date{freq: f, ord: int64(fl.Year-1)*4 + int64(period)}, nil
	}

	if period == 0 {
		period = 1
	}
	if day == 0 {
		day = 1
	}
	if period < 1 || period > 12 {
		return Date{}, fieldf("month %d", period)
	}
	month := time.Month(period)
	if day < 1 || day > daysIn(fl.Year, month) {
		return Date{}, fieldf("day %d of %04d-%02d", day, fl.Year, period)
	}
	if fl.Hour < 0 || fl.Hour > 23 {
		return Date{}, fieldf("hour %d", fl.Hour)
	}
	if fl.Minute < 0 || fl.Minute > 59 {
		return Date{}, fieldf("minute %d", fl.Minute)
	}
	if fl.Second < 0 || fl.Second > 59 {
		return Date{}, fieldf("second %d", fl.Second)
	}

	at := instant{
		day: absDay(fl.Year, month, day),
		sec: int64(fl.Hour*3600 + fl.Minute*60 + fl.Second),
	}
	return Date{freq: f, ord: locate(f, at)}, nil
}

var layouts = []struct {
	layout string
	freq   freq.Frequency
}{
	{"2006-01-02 15:04:05", freq.Second},
	{"2006-01-02T15:04:05", freq.Second},
	{"2006-01-02 15:04", freq.Minute},
	{"2006-01-02T15:04", freq.Minute},
	{"2006-01-02 15", freq.Hour},
	{"2006-01-02", freq.Day},
	{"2006/01/02", freq.Day},
	{"2006-01", freq.Month},
	{"2006", freq.Annual},
}

// FromString parses text of the form YYYY[-MM[-DD[ hh:mm[:ss]]]] or
// YYYYQn. When f is freq.Undefined the frequency follows the shape of the
// text; otherwise f wins and the parsed instant is projected onto it.
func FromString(f freq.Frequency, text string) (Date, error) {
	at, shape, err := parseInstant(text)
	if err != nil {
		return Date{}, err
	}
	if f == freq.Undefined {
		f = shape
	}
	if !f.Valid() {
		return Date{}, mismatchf("frequency %s cannot index dates", f)
	}
	return Date{freq: f, ord: locate(f, at)}, nil
}

// MustParse is like FromString but panics on error. It is meant for tests
// and package-level fixtures.
func MustParse(f freq.Frequency, text string) Date {
	d, err := FromString(f, text)
	if err != nil {
		panic(err)
	}
	return d
}

func parseInstant(text string) (instant, freq.Frequency, error) {
	s := strings.TrimSpace(text)
	if year, q, ok := strings.Cut(strings.ToUpper(s), "Q"); ok {
		y, yerr := strconv.Atoi(strings.TrimSuffix(year, "-"))
		n, qerr := strconv.Atoi(q)
		if yerr != nil || qerr != nil || n < 1 || n > 4 {
			return instant{}, freq.Undefined, parsef("%q", text)
		}
		return instant{day: absDay(y, time.Month(3*n-2), 1)}, freq.Quarter, nil
	}
	for _, l := range layouts {
		t, err := time.Parse(l.layout, s)
		if err != nil {
			continue
		}
		y, m, d := t.Date()
		return instant{
			day: absDay(y, m, d),
			sec: int64(t.Hour()*3600 + t.Minute()*60 + t.Second()),
		}, l.freq, nil
	}
	return instant{}, freq.Undefined, parsef("%q", text)
}

// Freq returns the frequency of d.
func (d Date) Freq() freq.Frequency { return d.freq }

// Ordinal returns the period count of d since the frequency epoch.
func (d Date) Ordinal() int64 { return d.ord }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d.freq == 0 && d.ord == 0 }

// Convert projects d onto target. Moving to a coarser frequency returns
// the period containing the start of d (or its end, when endOfPeriod is
// set); a week is read at its closing day. Moving to a finer frequency
// returns the first period inside d (or the last).
func (d Date) Convert(target freq.Frequency, endOfPeriod bool) (Date, error) {
	if !target.Valid() {
		return Date{}, mismatchf("cannot convert %s to %s", d.freq, target)
	}
	if target == d.freq {
		return d, nil
	}
	start, end := bounds(d.freq, d.ord)
	at := start
	if endOfPeriod {
		at = end
	}
	if target.Coarser(d.freq) {
		if d.freq.IsWeekly() {
			at = end
		}
		return Date{freq: target, ord: locate(target, at)}, nil
	}
	return Date{freq: target, ord: project(target, at, !endOfPeriod)}, nil
}

// Span returns the first and last ordinals at f covered by d.
func (d Date) Span(f freq.Frequency) (lo, hi int64, err error) {
	first, err := d.Convert(f, false)
	if err != nil {
		return 0, 0, err
	}
	last, err := d.Convert(f, true)
	if err != nil {
		return 0, 0, err
	}
	return first.ord, last.ord, nil
}

// Add returns the date n periods after d.
func (d Date) Add(n int64) Date {
	return Date{freq: d.freq, ord: d.ord + n}
}

// Sub returns the number of periods from other to d.
func (d Date) Sub(other Date) (int64, error) {
	if d.freq != other.freq {
		return 0, mismatchf("%s and %s", d.freq, other.freq)
	}
	return d.ord - other.ord, nil
}

// Before reports whether d precedes other. Both must share a frequency.
func (d Date) Before(other Date) bool {
	return d.freq == other.freq && d.ord < other.ord
}

// After reports whether d follows other. Both must share a frequency.
func (d Date) After(other Date) bool {
	return d.freq == other.freq && d.ord > other.ord
}

// label is the instant fields are read from: the closing day for weeks,
// the opening instant for everything else.
func (d Date) label() instant {
	start, end := bounds(d.freq, d.ord)
	if d.freq.IsWeekly() {
		return instant{day: end.day}
	}
	return start
}

// Time returns the first instant of d in UTC.
func (d Date) Time() time.Time {
	start, _ := bounds(d.freq, d.ord)
	return time.Unix((start.day-epochDay)*secondsPerDay+start.sec, 0).UTC()
}

// EndTime returns the last second of d in UTC.
func (d Date) EndTime() time.Time {
	_, end := bounds(d.freq, d.ord)
	return time.Unix((end.day-epochDay)*secondsPerDay+end.sec, 0).UTC()
}

// Year returns the calendar year of the day labelling d.
func (d Date) Year() int {
	y, _, _ := civil(d.label().day)
	return y
}

// Month returns the month of d, from 1 to 12.
func (d Date) Month() int {
	_, m, _ := civil(d.label().day)
	return int(m)
}

// Quarter returns the quarter of d, from 1 to 4.
func (d Date) Quarter() int {
	return (d.Month()-1)/3 + 1
}

// Day returns the day of the month of d.
func (d Date) Day() int {
	_, _, day := civil(d.label().day)
	return day
}

// DayOfYear returns the 1-based day within the year.
func (d Date) DayOfYear() int {
	at := d.label()
	y, _, _ := civil(at.day)
	return int(at.day-absDay(y, time.January, 1)) + 1
}

// Weekday returns the day of the week of the day labelling d.
func (d Date) Weekday() time.Weekday {
	return weekday(d.label().day)
}

// Hour returns the hour of d, zero for daily and coarser frequencies.
func (d Date) Hour() int { return int(d.label().sec / 3600) }

// Minute returns the minute of d.
func (d Date) Minute() int { return int(d.label().sec % 3600 / 60) }

// Second returns the second of d.
func (d Date) Second() int { return int(d.label().sec % 60) }

// IsLeapYear reports whether the year of d is a leap year.
func (d Date) IsLeapYear() bool { return IsLeapYear(d.Year()) }

// String formats d at the precision of its frequency.
func (d Date) String() string {
	if !d.freq.Valid() {
		return "invalid"
	}
	at := d.label()
	y, m, day := civil(at.day)
	switch g := d.freq.Group(); {
	case g == freq.Annual:
		return fmt.Sprintf("%04d", y)
	case g == freq.Quarter:
		return fmt.Sprintf("%04dQ%d", y, d.Quarter())
	case g == freq.Month:
		return fmt.Sprintf("%04d-%02d", y, m)
	case g <= freq.Day:
		return fmt.Sprintf("%04d-%02d-%02d", y, m, day)
	case g == freq.Hour:
		return fmt.Sprintf("%04d-%02d-%02d %02d:00", y, m, day, d.Hour())
	case g == freq.Minute:
		return fmt.Sprintf("%04d-%02d-%02d %02d:%02d", y, m, day, d.Hour(), d.Minute())
	default:
		return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", y, m, day, d.Hour(), d.Minute(), d.Second())
	}
}
