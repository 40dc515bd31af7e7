package freq

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownFrequency is returned by Parse for codes outside the registry.
var ErrUnknownFrequency = errors.New("unknown frequency")

// Frequency is a reporting frequency code.
type Frequency int

const (
	Undefined Frequency = -10000

	Annual  Frequency = 1000
	Quarter Frequency = 2000
	Month   Frequency = 3000

	WeekSun Frequency = 4000 + Frequency(time.Sunday)
	WeekMon Frequency = 4000 + Frequency(time.Monday)
	WeekTue Frequency = 4000 + Frequency(time.Tuesday)
	WeekWed Frequency = 4000 + Frequency(time.Wednesday)
	WeekThu Frequency = 4000 + Frequency(time.Thursday)
	WeekFri Frequency = 4000 + Frequency(time.Friday)
	WeekSat Frequency = 4000 + Frequency(time.Saturday)
	// Week is the default weekly frequency, ending on Sunday.
	Week = WeekSun

	Business Frequency = 5000
	Day      Frequency = 6000
	Hour     Frequency = 7000
	Minute   Frequency = 8000
	Second   Frequency = 9000
)

const (
	secondsPerDay = 86400

	// DaysPerLeapYear is the widest year, used to size per-year layouts.
	DaysPerLeapYear = 366
)

var weekdayCodes = [7]string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}

// All lists every defined frequency from coarsest to finest.
var All = []Frequency{
	Annual, Quarter, Month,
	WeekSun, WeekMon, WeekTue, WeekWed, WeekThu, WeekFri, WeekSat,
	Business, Day, Hour, Minute, Second,
}

// WeekOn returns the weekly frequency whose periods end on the given weekday.
func WeekOn(anchor time.Weekday) Frequency {
	return 4000 + Frequency(anchor%7)
}

// Group returns the frequency with any week anchor removed.
func (f Frequency) Group() Frequency {
	if f == Undefined {
		return Undefined
	}
	return f / 1000 * 1000
}

// Valid reports whether f is one of the registered frequencies.
func (f Frequency) Valid() bool {
	switch f.Group() {
	case Annual, Quarter, Month, Business, Day, Hour, Minute, Second:
		return f == f.Group()
	case 4000:
		return f >= WeekSun && f <= WeekSat
	default:
		return false
	}
}

// IsWeekly reports whether f is one of the anchored weekly frequencies.
func (f Frequency) IsWeekly() bool {
	return f >= WeekSun && f <= WeekSat
}

// Anchor returns the weekday a weekly period ends on.
// It is only meaningful when IsWeekly is true.
func (f Frequency) Anchor() time.Weekday {
	if !f.IsWeekly() {
		return time.Sunday
	}
	return time.Weekday(f - WeekSun)
}

// Coarser reports whether f has longer periods than other.
// Weekly frequencies with different anchors are not ordered.
func (f Frequency) Coarser(other Frequency) bool {
	return f.Group() < other.Group()
}

// Finer reports whether f has shorter periods than other.
func (f Frequency) Finer(other Frequency) bool {
	return other.Coarser(f)
}

// IsFixed reports whether every period of f spans the same number of seconds.
func (f Frequency) IsFixed() bool {
	return f.Seconds() > 0
}

// Seconds returns the length of one period for fixed frequencies, 0 otherwise.
func (f Frequency) Seconds() int64 {
	switch f {
	case Day:
		return secondsPerDay
	case Hour:
		return 3600
	case Minute:
		return 60
	case Second:
		return 1
	default:
		return 0
	}
}

// PeriodsPerDay returns how many periods of a fixed frequency fit in a day.
func (f Frequency) PeriodsPerDay() int64 {
	s := f.Seconds()
	if s == 0 {
		return 0
	}
	return secondsPerDay / s
}

// PeriodsPerYear returns the nominal number of periods in a year.
// Fixed frequencies report the leap-year maximum.
func (f Frequency) PeriodsPerYear() int64 {
	switch {
	case f == Annual:
		return 1
	case f == Quarter:
		return 4
	case f == Month:
		return 12
	case f.IsWeekly():
		return 53
	case f == Business:
		return 262
	case f.IsFixed():
		return DaysPerLeapYear * f.PeriodsPerDay()
	default:
		return 0
	}
}

// Code returns the external code of f.
func (f Frequency) Code() string {
	switch {
	case f == Annual:
		return "A"
	case f == Quarter:
		return "Q"
	case f == Month:
		return "M"
	case f.IsWeekly():
		return "W-" + weekdayCodes[f.Anchor()]
	case f == Business:
		return "B"
	case f == Day:
		return "D"
	case f == Hour:
		return "H"
	case f == Minute:
		return "T"
	case f == Second:
		return "S"
	default:
		return "U"
	}
}

func (f Frequency) String() string {
	return f.Code()
}

var aliases = map[string]Frequency{
	"A": Annual, "Y": Annual, "ANNUAL": Annual, "YEAR": Annual, "YEARLY": Annual,
	"Q": Quarter, "QUARTER": Quarter, "QUARTERLY": Quarter,
	"M": Month, "MONTH": Month, "MONTHLY": Month,
	"W": Week, "WEEK": Week, "WEEKLY": Week,
	"B": Business, "BUSINESS": Business,
	"D": Day, "DAY": Day, "DAILY": Day,
	"H": Hour, "HOUR": Hour, "HOURLY": Hour,
	"T": Minute, "MIN": Minute, "MINUTE": Minute, "MINUTELY": Minute,
	"S": Second, "SECOND": Second, "SECONDLY": Second,
	"U": Undefined, "UNDEFINED": Undefined,
}

// Parse resolves a frequency code or name, case-insensitively.
// Weekly codes take an optional anchor suffix such as "W-THU".
func Parse(code string) (Frequency, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if f, ok := aliases[c]; ok {
		return f, nil
	}
	if head, anchor, ok := strings.Cut(c, "-"); ok {
		if aliases[head] == Week {
			for d, name := range weekdayCodes {
				if anchor == name {
					return WeekOn(time.Weekday(d)), nil
				}
			}
		}
	}
	return Undefined, fmt.Errorf("%w: %q", ErrUnknownFrequency, code)
}

// MustParse is like Parse but panics on unknown codes.
func MustParse(code string) Frequency {
	f, err := Parse(code)
	if err != nil {
		panic(err)
	}
	return f
}
