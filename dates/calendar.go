package dates

import (
	"time"

	"github.com/sartorproj/tsfreq/freq"
)

// Days are counted on the proleptic Gregorian calendar with 0001-01-01 as
// day 1. Intraday ordinals count from 1970-01-01 00:00:00.
const (
	epochDay      = 719163
	secondsPerDay = 86400
)

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}

// IsLeapYear reports whether year has a February 29.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysIn(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

func absDay(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix()/secondsPerDay + epochDay
}

func civil(day int64) (int, time.Month, int) {
	return time.Unix((day-epochDay)*secondsPerDay, 0).UTC().Date()
}

func weekday(day int64) time.Weekday {
	return time.Weekday(floorMod(day, 7))
}

// instant is a point on the calendar: an absolute day and a second of that day.
type instant struct {
	day int64
	sec int64
}

// bounds returns the first and last instant of period ord at frequency f.
func bounds(f freq.Frequency, ord int64) (start, end instant) {
	switch {
	case f == freq.Annual:
		y := int(ord)
		return instant{absDay(y, time.January, 1), 0}, instant{absDay(y, time.December, 31), secondsPerDay - 1}
	case f == freq.Quarter:
		y := int(floorDiv(ord-1, 4)) + 1
		q := int(floorMod(ord-1, 4)) + 1
		last := time.Month(3 * q)
		return instant{absDay(y, last-2, 1), 0}, instant{absDay(y, last, daysIn(y, last)), secondsPerDay - 1}
	case f == freq.Month:
		y := int(floorDiv(ord-1, 12)) + 1
		m := time.Month(floorMod(ord-1, 12) + 1)
		return instant{absDay(y, m, 1), 0}, instant{absDay(y, m, daysIn(y, m)), secondsPerDay - 1}
	case f.IsWeekly():
		last := 7*(ord-1) + int64(f.Anchor())
		return instant{last - 6, 0}, instant{last, secondsPerDay - 1}
	case f == freq.Business:
		d := 7*floorDiv(ord-1, 5) + floorMod(ord-1, 5) + 1
		return instant{d, 0}, instant{d, secondsPerDay - 1}
	case f == freq.Day:
		return instant{ord, 0}, instant{ord, secondsPerDay - 1}
	default:
		step := f.Seconds()
		abs := ord * step
		day := floorDiv(abs, secondsPerDay)
		sec := floorMod(abs, secondsPerDay)
		return instant{epochDay + day, sec}, instant{epochDay + day, sec + step - 1}
	}
}

// project returns the ordinal at f of the period holding at. Business days
// and weeks behave as points on the calendar (a week sits on its closing
// day): forward picks the first point at or after at, otherwise the last
// point at or before it.
func project(f freq.Frequency, at instant, forward bool) int64 {
	switch {
	case f == freq.Annual:
		y, _, _ := civil(at.day)
		return int64(y)
	case f == freq.Quarter:
		y, m, _ := civil(at.day)
		return int64(y-1)*4 + int64(m-1)/3 + 1
	case f == freq.Month:
		y, m, _ := civil(at.day)
		return int64(y-1)*12 + int64(m)
	case f.IsWeekly():
		a := int64(f.Anchor())
		last := at.day + floorMod(a-int64(weekday(at.day)), 7)
		if !forward && last != at.day {
			last -= 7
		}
		return floorDiv(last-a, 7) + 1
	case f == freq.Business:
		d := at.day
		switch weekday(d) {
		case time.Saturday:
			if forward {
				d += 2
			} else {
				d--
			}
		case time.Sunday:
			if forward {
				d++
			} else {
				d -= 2
			}
		}
		return 5*floorDiv(d-1, 7) + floorMod(d-1, 7) + 1
	case f == freq.Day:
		return at.day
	default:
		return floorDiv((at.day-epochDay)*secondsPerDay+at.sec, f.Seconds())
	}
}

// locate returns the ordinal at f of the period containing at.
func locate(f freq.Frequency, at instant) int64 {
	return project(f, at, f.IsWeekly())
}
